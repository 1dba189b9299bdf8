package command

import (
	"github.com/google/uuid"

	"github.com/example/quaintpaint/internal/geom"
	"github.com/example/quaintpaint/internal/render"
)

// Sticker stamps a glyph. Dragging moves it; the glyph never changes.
type Sticker struct {
	id    uuid.UUID
	pos   geom.Point
	glyph string
}

var _ Command = (*Sticker)(nil)

// NewSticker places glyph centred on p.
func NewSticker(p geom.Point, glyph string) *Sticker {
	return &Sticker{id: uuid.New(), pos: p, glyph: glyph}
}

// ID identifies the sticker for logging.
func (s *Sticker) ID() uuid.UUID { return s.id }

// Position returns where the glyph is centred.
func (s *Sticker) Position() geom.Point { return s.pos }

// Glyph returns the stamped text.
func (s *Sticker) Glyph() string { return s.glyph }

// Extend moves the sticker to (x, y).
func (s *Sticker) Extend(x, y float64) {
	s.pos = geom.Pt(x, y)
}

// Render draws the glyph fully opaque, centred on its position.
func (s *Sticker) Render(dst *render.Surface) {
	dst.DrawGlyph(s.glyph, s.pos, 1)
}
