// Package command defines the drawing commands that make up a picture.
//
// A picture is an ordered list of commands. Each command knows how to paint
// itself onto a render.Surface and, while it is being drawn, how to follow
// the pointer.
package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/quaintpaint/internal/geom"
	"github.com/example/quaintpaint/internal/render"
)

// Renderer paints onto a surface. Render must not change the receiver, so
// painting the same renderer twice gives the same pixels.
type Renderer interface {
	Render(s *render.Surface)
}

// Command is a Renderer that can still be reshaped by pointer drags.
type Command interface {
	Renderer
	// Extend moves the command towards the pointer at (x, y).
	Extend(x, y float64)
	// ID identifies the command in logs.
	ID() uuid.UUID
}

// New creates the command drawn by tool when the pointer goes down at p.
func New(tool Tool, p geom.Point) Command {
	switch tool.Kind {
	case KindLine:
		return NewLine(p, tool.Width)
	case KindSticker:
		return NewSticker(p, tool.Glyph)
	default:
		panic(fmt.Sprintf("command: unknown tool kind %d", tool.Kind))
	}
}
