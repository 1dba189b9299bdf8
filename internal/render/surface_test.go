package render

import (
	"image/color"
	"testing"

	"github.com/example/quaintpaint/internal/geom"
)

func alphaAt(s *Surface, p geom.Point) uint8 {
	ip := p.Image()
	return s.Image().RGBAAt(ip.X, ip.Y).A
}

func TestStrokePolylineCoversPoints(t *testing.T) {
	s := NewSurface(64, 64, nil)
	pts := []geom.Point{geom.Pt(10, 10), geom.Pt(40, 10), geom.Pt(40, 50)}
	s.StrokePolyline(pts, 4, color.Black)
	for _, p := range pts {
		if a := alphaAt(s, p); a != 0xff {
			t.Fatalf("alpha at %v = %d, want opaque", p, a)
		}
	}
	if a := alphaAt(s, geom.Pt(25, 10)); a != 0xff {
		t.Fatalf("segment midpoint alpha = %d", a)
	}
	if a := alphaAt(s, geom.Pt(25, 30)); a != 0 {
		t.Fatalf("pixel away from the path painted: alpha %d", a)
	}
}

func TestStrokePolylineSinglePointDrawsNothing(t *testing.T) {
	s := NewSurface(16, 16, nil)
	s.StrokePolyline([]geom.Point{geom.Pt(8, 8)}, 6, color.Black)
	for i, v := range s.Image().Pix {
		if v != 0 {
			t.Fatalf("pix[%d] = %d, want untouched surface", i, v)
		}
	}
}

func TestStrokePolylineClipsAtEdges(t *testing.T) {
	s := NewSurface(20, 20, nil)
	s.StrokePolyline([]geom.Point{geom.Pt(-30, -30), geom.Pt(50, 50)}, 8, color.Black)
	if a := alphaAt(s, geom.Pt(10, 10)); a != 0xff {
		t.Fatalf("diagonal alpha = %d", a)
	}
}

func TestStrokeCircleIsHollow(t *testing.T) {
	s := NewSurface(40, 40, nil)
	// Pixel centres sit on half coordinates, so (30,20) lies on the ring.
	s.StrokeCircle(geom.Pt(20.5, 20.5), 10, color.Black)
	if a := s.Image().RGBAAt(20, 20).A; a != 0 {
		t.Fatalf("ring centre painted: alpha %d", a)
	}
	if a := s.Image().RGBAAt(30, 20).A; a < 0xc0 {
		t.Fatalf("ring edge alpha = %d", a)
	}
}

func TestDrawGlyphOpacity(t *testing.T) {
	maxAlpha := func(opacity float64) uint8 {
		s := NewSurface(64, 64, nil)
		s.DrawGlyph("H", geom.Pt(32, 32), opacity)
		var m uint8
		pix := s.Image().Pix
		for i := 3; i < len(pix); i += 4 {
			if pix[i] > m {
				m = pix[i]
			}
		}
		return m
	}
	if got := maxAlpha(1); got < 250 {
		t.Fatalf("opaque glyph max alpha = %d", got)
	}
	if got := maxAlpha(0.5); got < 100 || got > 130 {
		t.Fatalf("half opacity glyph max alpha = %d", got)
	}
}

func TestDrawGlyphCentred(t *testing.T) {
	s := NewSurface(64, 64, nil)
	s.DrawGlyph("H", geom.Pt(32, 32), 1)
	b := s.Image().Bounds()
	minX, maxX := b.Max.X, b.Min.X
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if s.Image().RGBAAt(x, y).A == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
		}
	}
	if minX > 32 || maxX < 32 {
		t.Fatalf("glyph spans x %d..%d, want it around 32", minX, maxX)
	}
}

func TestClear(t *testing.T) {
	s := NewSurface(16, 16, nil)
	s.StrokePolyline([]geom.Point{geom.Pt(0, 0), geom.Pt(15, 15)}, 3, color.Black)
	s.Clear()
	for i, v := range s.Image().Pix {
		if v != 0 {
			t.Fatalf("pix[%d] = %d after Clear", i, v)
		}
	}
}

func TestFlattenFillsBackground(t *testing.T) {
	s := NewSurface(4, 4, nil)
	out := Flatten(s.Image(), color.White)
	if got := out.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("flattened pixel = %+v", got)
	}
}
