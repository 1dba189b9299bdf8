// Package config reads and writes the rc-style configuration file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/quaintpaint/internal/theme"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Log holds logging settings. Empty values defer to the environment.
type Log struct {
	Level  string
	Format string
	File   string
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	Toolset     string  // tool preset file; empty means the built-in palette
	StickerFont string  // font file for sticker glyphs; empty means Go Regular
	StickerSize float64 // glyph size in points
	Width       int
	Height      int
	Log         Log
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Themes: make(map[string]*theme.Theme),
	}
}

// String renders the configuration in rc format. Parse(String()) yields an
// equal Config.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, val string }{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"toolset", c.Toolset},
		{"sticker_font", c.StickerFont},
	}
	for _, kv := range root {
		if kv.val != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.val)
		}
	}
	if c.StickerSize > 0 {
		fmt.Fprintf(&sb, "sticker_size = %g\n", c.StickerSize)
	}
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	sb.WriteString("\n")

	if c.Log != (Log{}) {
		sb.WriteString("[log]\n")
		if c.Log.Level != "" {
			fmt.Fprintf(&sb, "level = %s\n", c.Log.Level)
		}
		if c.Log.Format != "" {
			fmt.Fprintf(&sb, "format = %s\n", c.Log.Format)
		}
		if c.Log.File != "" {
			fmt.Fprintf(&sb, "file = %s\n", c.Log.File)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Format(&sb)
		sb.WriteString("\n")
	}
	return sb.String()
}
