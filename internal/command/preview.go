package command

import (
	"image/color"

	"github.com/example/quaintpaint/internal/geom"
	"github.com/example/quaintpaint/internal/render"
)

// PreviewRingColor outlines the pen footprint under an idle pointer.
var PreviewRingColor color.Color = color.RGBA{128, 128, 128, 255}

// PreviewOpacity is applied to sticker glyphs under an idle pointer.
const PreviewOpacity = 0.5

// Preview shows what the active tool would draw at the pointer. It is never
// part of the picture and cannot be extended.
type Preview struct {
	Pos  geom.Point
	Tool Tool
}

var _ Renderer = Preview{}

// Render draws a ring the size of the pen for line tools and a faded glyph
// for sticker tools.
func (p Preview) Render(s *render.Surface) {
	switch p.Tool.Kind {
	case KindLine:
		s.StrokeCircle(p.Pos, p.Tool.Width/2, PreviewRingColor)
	case KindSticker:
		s.DrawGlyph(p.Tool.Glyph, p.Pos, PreviewOpacity)
	}
}
