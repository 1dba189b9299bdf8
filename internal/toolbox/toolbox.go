// Package toolbox tracks the tool palette and the active tool.
package toolbox

import (
	"github.com/example/quaintpaint/internal/command"
)

// Defaults is the palette used when no preset supplies one.
func Defaults() []command.Tool {
	return []command.Tool{
		command.LineTool("thin", 3),
		command.LineTool("thick", 8),
		command.StickerTool("palette", "🎨"),
		command.StickerTool("sparkles", "✨"),
		command.StickerTool("star", "🌟"),
	}
}

// Toolbox holds the palette and exactly one active tool.
type Toolbox struct {
	tools   []command.Tool
	current command.Tool
}

// New returns a toolbox over tools with the first entry active. An empty
// palette falls back to Defaults.
func New(tools []command.Tool) *Toolbox {
	tb := &Toolbox{}
	tb.Replace(tools)
	tb.current = tb.tools[0]
	return tb
}

// Current returns the active tool.
func (tb *Toolbox) Current() command.Tool { return tb.current }

// Tools returns a copy of the palette.
func (tb *Toolbox) Tools() []command.Tool {
	return append([]command.Tool(nil), tb.tools...)
}

// Select makes t the active tool. t does not need to be in the palette.
func (tb *Toolbox) Select(t command.Tool) {
	tb.current = t
}

// SelectIndex activates palette entry i and reports whether i was valid.
func (tb *Toolbox) SelectIndex(i int) bool {
	if i < 0 || i >= len(tb.tools) {
		return false
	}
	tb.current = tb.tools[i]
	return true
}

// SelectName activates the palette entry with the given name.
func (tb *Toolbox) SelectName(name string) bool {
	for _, t := range tb.tools {
		if t.Name == name {
			tb.current = t
			return true
		}
	}
	return false
}

// Index returns the palette position of the active tool, or -1.
func (tb *Toolbox) Index() int {
	for i, t := range tb.tools {
		if t == tb.current {
			return i
		}
	}
	return -1
}

// Replace swaps the palette. The active tool stays as it was.
func (tb *Toolbox) Replace(tools []command.Tool) {
	if len(tools) == 0 {
		tools = Defaults()
	}
	tb.tools = append([]command.Tool(nil), tools...)
}
