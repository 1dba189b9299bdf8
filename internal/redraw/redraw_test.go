package redraw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/render"
	"github.com/example/quaintpaint/internal/session"
)

func snapshot(s *render.Surface) []byte {
	return bytes.Clone(s.Image().Pix)
}

func draw(s *session.Session) {
	s.PointerDown(4, 4)
	s.PointerMove(40, 30)
	s.PointerMove(60, 60)
	s.PointerUp()
	s.SelectIndex(1)
	s.PointerDown(20, 50)
	s.PointerUp()
	s.PointerMove(50, 20)
}

func tools() []command.Tool {
	return []command.Tool{command.LineTool("thin", 4), command.StickerTool("h", "H")}
}

func TestRedrawIsIdempotent(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New(tools())
	c := New(surf, s)
	draw(s)

	c.Redraw()
	first := snapshot(surf)
	c.Redraw()
	assert.Equal(t, first, snapshot(surf))
}

func TestAttachRedrawsOncePerSignal(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New(tools())
	presented := 0
	c := Attach(surf, s, func() { presented++ })

	s.PointerMove(10, 10)
	assert.Equal(t, 1, c.Frames())
	s.PointerDown(10, 10)
	s.PointerMove(30, 30)
	s.PointerUp()
	assert.Equal(t, 3, c.Frames())
	assert.Equal(t, c.Frames(), presented)
}

func TestUndoRestoresPixels(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New(tools())
	Attach(surf, s, nil)

	s.PointerDown(4, 4)
	s.PointerMove(60, 4)
	s.PointerUp()
	one := snapshot(surf)

	s.PointerDown(4, 40)
	s.PointerMove(60, 40)
	s.PointerUp()
	require.NotEqual(t, one, snapshot(surf))

	s.Undo()
	assert.Equal(t, one, snapshot(surf))
	s.Redo()
	s.Clear()
	assert.Equal(t, make([]byte, len(one)), snapshot(surf))
}

func TestPreviewPaintedLast(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New([]command.Tool{command.StickerTool("h", "H")})
	Attach(surf, s, nil)

	s.PointerDown(32, 32)
	s.PointerUp()
	stamped := snapshot(surf)

	s.PointerMove(32, 32)
	// The faded preview over the stamped glyph can only add coverage.
	got := surf.Image().Pix
	for i := 3; i < len(got); i += 4 {
		require.GreaterOrEqual(t, got[i], stamped[i])
	}

	s.PointerLeave()
	assert.Equal(t, stamped, snapshot(surf))
}

func TestPreviewIsTranslucentComparedToCommitted(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New([]command.Tool{command.StickerTool("h", "H")})
	Attach(surf, s, nil)

	maxAlpha := func() uint8 {
		var m uint8
		pix := surf.Image().Pix
		for i := 3; i < len(pix); i += 4 {
			m = max(m, pix[i])
		}
		return m
	}
	s.PointerMove(32, 32)
	assert.LessOrEqual(t, maxAlpha(), uint8(130))
	s.PointerDown(32, 32)
	assert.GreaterOrEqual(t, maxAlpha(), uint8(250))
}

func TestSnapshotExcludesPreview(t *testing.T) {
	surf := render.NewSurface(64, 64, nil)
	s := session.New([]command.Tool{command.LineTool("thin", 4)})
	c := Attach(surf, s, nil)

	s.PointerDown(4, 4)
	s.PointerMove(60, 4)
	s.PointerUp()
	committed := snapshot(surf)
	s.PointerMove(32, 40)
	require.NotEqual(t, committed, snapshot(surf))

	assert.Equal(t, committed, c.Snapshot().Image().Pix)
	assert.Equal(t, 3, c.Frames(), "snapshot does not count as a redraw")
}
