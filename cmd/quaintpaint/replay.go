package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"gopkg.in/yaml.v3"

	"github.com/example/quaintpaint/internal/clipboard"
	"github.com/example/quaintpaint/internal/command"
	qlog "github.com/example/quaintpaint/internal/log"
	"github.com/example/quaintpaint/internal/redraw"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/session"
	"github.com/example/quaintpaint/internal/theme"
)

// Script is a recorded sequence of input events. JSON scripts decode too,
// since JSON is valid YAML.
type Script struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Events []Event `yaml:"events"`
}

// Event is one input. Which fields matter depends on Type.
type Event struct {
	Type  string  `yaml:"type"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Tool  string  `yaml:"tool"`
	Width float64 `yaml:"width"`
	Glyph string  `yaml:"glyph"`
}

// parseScript decodes a YAML or JSON replay script.
func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// apply feeds one event into the session.
func apply(sess *session.Session, ev Event) error {
	switch strings.ToLower(ev.Type) {
	case "down":
		sess.PointerDown(ev.X, ev.Y)
	case "move":
		sess.PointerMove(ev.X, ev.Y)
	case "up":
		sess.PointerUp()
	case "leave":
		sess.PointerLeave()
	case "undo":
		sess.Undo()
	case "redo":
		sess.Redo()
	case "clear":
		sess.Clear()
	case "select":
		switch {
		case ev.Tool != "":
			if !sess.SelectName(ev.Tool) {
				return fmt.Errorf("no tool named %q", ev.Tool)
			}
		case ev.Glyph != "":
			sess.SelectTool(command.StickerTool(ev.Glyph, ev.Glyph))
		case ev.Width > 0:
			sess.SelectTool(command.LineTool(fmt.Sprintf("%gpx", ev.Width), ev.Width))
		default:
			return fmt.Errorf("select needs tool, glyph or width")
		}
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

// replay runs the script through a fresh session and returns the drawing
// without any hover preview.
func replay(s *Script, tools []command.Tool, w, h int, face font.Face) (*image.RGBA, error) {
	if s.Width > 0 && w <= 0 {
		w = s.Width
	}
	if s.Height > 0 && h <= 0 {
		h = s.Height
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d", w, h)
	}
	sess := session.New(tools)
	coord := redraw.Attach(render.NewSurface(w, h, face), sess, nil)
	for i, ev := range s.Events {
		if err := apply(sess, ev); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	sess.PointerUp()
	return coord.Snapshot().Image(), nil
}

// parseColor accepts a colour name or #RRGGBB[AA].
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	c, err := theme.ParseColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

type replayCmd struct {
	*root
	fs          *flag.FlagSet
	input       string
	output      string
	width       int
	height      int
	background  string
	shadow      string
	toClipboard bool
}

func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *replayCmd) Program() string        { return c.root.program + " replay" }

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.input, "input", "", "event script (YAML or JSON)")
	fs.StringVar(&c.output, "output", "", "output PNG file")
	fs.IntVar(&c.width, "width", 0, "canvas width (overrides the script)")
	fs.IntVar(&c.height, "height", 0, "canvas height (overrides the script)")
	fs.StringVar(&c.background, "background", "", "paper colour name or hex value (defaults to the theme paper)")
	fs.StringVar(&c.shadow, "shadow", "", "add a drop shadow: radius,dx,dy,opacity (empty fields keep defaults, use \"default\" for all)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.input == "" || (c.output == "" && !c.toClipboard) || fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	logger := qlog.WithOperation(qlog.WithComponent("cli"), "replay")
	data, err := os.ReadFile(c.input)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := parseScript(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.input, err)
	}

	w, h := c.width, c.height
	if w <= 0 && script.Width <= 0 {
		w = c.config.Width
	}
	if h <= 0 && script.Height <= 0 {
		h = c.config.Height
	}
	drawing, err := replay(script, c.tools, w, h, c.face)
	if err != nil {
		return fmt.Errorf("%s: %w", c.input, err)
	}

	var bg color.Color = c.activeTheme.Paper
	if c.background != "" {
		col, err := parseColor(c.background)
		if err != nil {
			return err
		}
		bg = col
	}
	out := render.Flatten(drawing, bg)
	if c.shadow != "" {
		spec := c.shadow
		if spec == "default" {
			spec = ""
		}
		opts, err := render.ParseShadowOptions(spec)
		if err != nil {
			return err
		}
		out = render.ApplyShadow(out, opts).Image
	}

	if c.output != "" {
		if err := render.WritePNG(c.output, out); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		logger.Info("saved", "path", c.output, "events", len(script.Events))
		c.notifier.Save(c.output)
	}
	if c.toClipboard {
		if err := clipboard.WriteImage(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifier.Copy(c.input, out)
	}
	return nil
}
