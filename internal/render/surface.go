package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/example/quaintpaint/internal/geom"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Surface is the raster every drawing command paints onto. It starts
// transparent; the background is only applied when the surface is shown or
// exported.
type Surface struct {
	img  *image.RGBA
	face font.Face
	z    vector.Rasterizer
}

// NewSurface allocates a w by h surface. face is used for sticker glyphs and
// may be nil, in which case DefaultFace is used.
func NewSurface(w, h int, face font.Face) *Surface {
	if face == nil {
		face = DefaultFace()
	}
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: face,
	}
}

// Image exposes the backing pixels. Callers must not keep it across a redraw.
func (s *Surface) Image() *image.RGBA { return s.img }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Face returns the font face used for glyphs.
func (s *Surface) Face() font.Face { return s.face }

// SetFace replaces the glyph face. A nil face restores the default.
func (s *Surface) SetFace(face font.Face) {
	if face == nil {
		face = DefaultFace()
	}
	s.face = face
}

// Clear wipes every pixel back to transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// StrokePolyline draws the connected path through pts with round caps and
// joins. Fewer than two points draw nothing.
func (s *Surface) StrokePolyline(pts []geom.Point, width float64, col color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	r := width / 2
	box := pathBounds(pts, r)
	mask, z := s.maskFor(box)
	off := geom.FromImage(box.Min)
	for i := 1; i < len(pts); i++ {
		addSegment(z, pts[i-1].Sub(off), pts[i].Sub(off), r)
	}
	for _, p := range pts {
		addCircle(z, p.Sub(off), r, false)
	}
	s.fill(z, mask, box, col)
}

// StrokeCircle draws a one pixel ring of radius r centred on c.
func (s *Surface) StrokeCircle(c geom.Point, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	outer := r + 0.5
	box := pathBounds([]geom.Point{c}, outer)
	mask, z := s.maskFor(box)
	local := c.Sub(geom.FromImage(box.Min))
	addCircle(z, local, outer, false)
	if inner := r - 0.5; inner > 0 {
		addCircle(z, local, inner, true)
	}
	s.fill(z, mask, box, col)
}

// DrawGlyph draws text centred on at in black with the given opacity in [0,1].
func (s *Surface) DrawGlyph(text string, at geom.Point, opacity float64) {
	if text == "" || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.NRGBA{A: uint8(opacity*255 + 0.5)}),
		Face: s.face,
	}
	adv := d.MeasureString(text)
	m := s.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: toFixed(at.X) - adv/2,
		Y: toFixed(at.Y) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

func (s *Surface) maskFor(box image.Rectangle) (*image.Alpha, *vector.Rasterizer) {
	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Src
	return image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy())), &s.z
}

// fill rasterises the accumulated path into mask and composites col through
// it. The mask is local to box so paths may extend past the surface edge.
func (s *Surface) fill(z *vector.Rasterizer, mask *image.Alpha, box image.Rectangle, col color.Color) {
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(s.img, box, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

func pathBounds(pts []geom.Point, r float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	pad := r + 1
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

// addSegment adds the rectangle covering the segment a-b at half width r.
// Its winding matches the forward circles so overlaps accumulate.
func addSegment(z *vector.Rasterizer, a, b geom.Point, r float64) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return
	}
	n := geom.Pt(-d.Y, d.X).Mul(r / l)
	moveTo(z, a.Sub(n))
	lineTo(z, b.Sub(n))
	lineTo(z, b.Add(n))
	lineTo(z, a.Add(n))
	z.ClosePath()
}

func addCircle(z *vector.Rasterizer, c geom.Point, r float64, reverse bool) {
	dirs := [4]geom.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}
	if reverse {
		dirs = [4]geom.Point{{X: 1}, {Y: -1}, {X: -1}, {Y: 1}}
	}
	moveTo(z, c.Add(dirs[0].Mul(r)))
	for i := range dirs {
		u, v := dirs[i], dirs[(i+1)%len(dirs)]
		c1 := c.Add(u.Mul(r)).Add(v.Mul(kappa * r))
		c2 := c.Add(v.Mul(r)).Add(u.Mul(kappa * r))
		end := c.Add(v.Mul(r))
		z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(end.X), float32(end.Y))
	}
	z.ClosePath()
}

func moveTo(z *vector.Rasterizer, p geom.Point) { z.MoveTo(float32(p.X), float32(p.Y)) }
func lineTo(z *vector.Rasterizer, p geom.Point) { z.LineTo(float32(p.X), float32(p.Y)) }

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
