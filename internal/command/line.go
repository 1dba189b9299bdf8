package command

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/example/quaintpaint/internal/geom"
	"github.com/example/quaintpaint/internal/render"
)

// LineColor is the ink used for every stroke.
var LineColor color.Color = color.Black

// Line is a freehand stroke: the pointer path sampled while dragging.
type Line struct {
	id     uuid.UUID
	points []geom.Point
	width  float64
}

var _ Command = (*Line)(nil)

// NewLine starts a stroke at p. The width is fixed for the stroke's lifetime.
func NewLine(p geom.Point, width float64) *Line {
	return &Line{id: uuid.New(), points: []geom.Point{p}, width: width}
}

// ID identifies the stroke for logging.
func (l *Line) ID() uuid.UUID { return l.id }

// Width returns the stroke width.
func (l *Line) Width() float64 { return l.width }

// Points returns a copy of the sampled path.
func (l *Line) Points() []geom.Point {
	return append([]geom.Point(nil), l.points...)
}

// Extend appends the pointer position to the path.
func (l *Line) Extend(x, y float64) {
	l.points = append(l.points, geom.Pt(x, y))
}

// Render strokes the path with round caps and joins. A single point paints
// nothing.
func (l *Line) Render(s *render.Surface) {
	if len(l.points) < 2 {
		return
	}
	s.StrokePolyline(l.points, l.width, LineColor)
}
