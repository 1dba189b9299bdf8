// Package redraw repaints a surface from a picture's current state.
package redraw

import (
	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/session"
)

// Source is what gets painted: the display list plus an optional preview.
type Source interface {
	Renderers() []command.Renderer
	Preview() (command.Preview, bool)
}

// Coordinator is the only code that paints the surface. Every redraw starts
// from a cleared surface, so the pixels depend only on the source state.
type Coordinator struct {
	surface *render.Surface
	src     Source
	frames  int
	after   func()
}

// New returns a coordinator painting src onto surface.
func New(surface *render.Surface, src Source) *Coordinator {
	return &Coordinator{surface: surface, src: src}
}

// Attach wires c to s so every change signal repaints. after, if not nil,
// runs after each repaint, typically to present the frame.
func Attach(surface *render.Surface, s *session.Session, after func()) *Coordinator {
	c := New(surface, s)
	c.after = after
	s.Subscribe(func(session.Signal) { c.Redraw() })
	return c
}

// Redraw clears the surface, paints the display list in order and the
// preview last.
func (c *Coordinator) Redraw() {
	c.surface.Clear()
	for _, r := range c.src.Renderers() {
		r.Render(c.surface)
	}
	if p, ok := c.src.Preview(); ok {
		p.Render(c.surface)
	}
	c.frames++
	if c.after != nil {
		c.after()
	}
}

// Snapshot paints the display list alone onto a fresh surface of the same
// size and face. Used for export so the preview never leaks into files.
func (c *Coordinator) Snapshot() *render.Surface {
	b := c.surface.Bounds()
	out := render.NewSurface(b.Dx(), b.Dy(), c.surface.Face())
	for _, r := range c.src.Renderers() {
		r.Render(out)
	}
	return out
}

// Surface returns the painted surface.
func (c *Coordinator) Surface() *render.Surface { return c.surface }

// Frames counts redraws so far.
func (c *Coordinator) Frames() int { return c.frames }
