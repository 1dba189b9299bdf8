// Package toolset loads the tool palette from a YAML preset file.
//
// A preset looks like:
//
//	version: 1
//	lines:
//	  - name: thin
//	    width: 3
//	stickers:
//	  - name: star
//	    glyph: "🌟"
//
// Files are checked against an embedded JSON schema before use.
package toolset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/example/quaintpaint/internal/command"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed default.yaml
var defaultYAML []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalid wraps schema violations.
var ErrInvalid = errors.New("invalid tool preset")

// LineSpec describes a pen.
type LineSpec struct {
	Name  string  `yaml:"name"`
	Width float64 `yaml:"width"`
}

// StickerSpec describes a stamp.
type StickerSpec struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
}

// Preset is a decoded preset file.
type Preset struct {
	Version  int           `yaml:"version"`
	Lines    []LineSpec    `yaml:"lines,omitempty"`
	Stickers []StickerSpec `yaml:"stickers,omitempty"`
}

// Parse validates and decodes preset YAML.
func Parse(data []byte) (*Preset, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate preset: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	return &p, nil
}

// Default returns the built-in preset.
func Default() *Preset {
	p, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded preset: %v", err))
	}
	return p
}

// Load reads the preset at path. An empty path returns Default.
func Load(path string) (*Preset, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Tools returns the palette: pens first, then stickers, in file order.
func (p *Preset) Tools() []command.Tool {
	tools := make([]command.Tool, 0, len(p.Lines)+len(p.Stickers))
	for _, l := range p.Lines {
		tools = append(tools, command.LineTool(l.Name, l.Width))
	}
	for _, s := range p.Stickers {
		tools = append(tools, command.StickerTool(s.Name, s.Glyph))
	}
	return tools
}

// Marshal encodes the preset back to YAML.
func (p *Preset) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
