package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/geom"
)

type recorder struct{ got []Signal }

func (r *recorder) take() []Signal {
	out := r.got
	r.got = nil
	return out
}

func newSession(t *testing.T, tools ...command.Tool) (*Session, *recorder) {
	t.Helper()
	s := New(tools)
	rec := &recorder{}
	s.Subscribe(func(sig Signal) { rec.got = append(rec.got, sig) })
	return s, rec
}

func TestStickerPreviewThenStamp(t *testing.T) {
	s, rec := newSession(t, command.StickerTool("sparkles", "✨"))

	s.PointerMove(50, 50)
	p, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, geom.Pt(50, 50), p.Pos)
	assert.Equal(t, "✨", p.Tool.Glyph)
	assert.Equal(t, []Signal{PreviewMoved}, rec.take())

	s.PointerDown(50, 50)
	_, ok = s.Preview()
	assert.False(t, ok, "preview hidden while drawing")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []Signal{ContentChanged}, rec.take())

	s.PointerUp()
	_, ok = s.Preview()
	assert.False(t, ok, "preview stays hidden until the next idle move")
	assert.Empty(t, rec.take())

	s.PointerMove(60, 60)
	_, ok = s.Preview()
	assert.True(t, ok)
}

func TestDragExtendsLine(t *testing.T) {
	s, rec := newSession(t, command.LineTool("thin", 3))
	s.PointerDown(0, 0)
	s.PointerMove(5, 5)
	s.PointerMove(10, 10)
	s.PointerUp()
	s.PointerMove(20, 20)

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Drawing())
	assert.Equal(t, []Signal{ContentChanged, ContentChanged, ContentChanged, PreviewMoved}, rec.take())
}

func TestEachInputSignalsAtMostOnce(t *testing.T) {
	s, rec := newSession(t)
	inputs := []func(){
		func() { s.PointerMove(1, 1) },
		func() { s.PointerDown(1, 1) },
		func() { s.PointerMove(2, 2) },
		func() { s.PointerLeave() },
		func() { s.PointerMove(3, 3) },
		func() { s.SelectIndex(2) },
		func() { s.Undo() },
		func() { s.Redo() },
		func() { s.Clear() },
		func() { s.Undo() },
	}
	for i, in := range inputs {
		in()
		assert.LessOrEqual(t, len(rec.take()), 1, "input %d", i)
	}
}

func TestUndoRedoNoopsDoNotSignal(t *testing.T) {
	s, rec := newSession(t)
	s.Undo()
	s.Redo()
	assert.Empty(t, rec.take())
	s.Clear()
	assert.Equal(t, []Signal{ContentChanged}, rec.take())
}

func TestPointerLeaveEndsDragAndHidesPreview(t *testing.T) {
	s, rec := newSession(t, command.LineTool("thin", 3))
	s.PointerDown(0, 0)
	s.PointerMove(4, 4)
	rec.take()

	s.PointerLeave()
	assert.False(t, s.Drawing())
	assert.Empty(t, rec.take(), "nothing visible changed")

	s.PointerMove(8, 8)
	assert.Equal(t, []Signal{PreviewMoved}, rec.take())
	s.PointerLeave()
	_, ok := s.Preview()
	assert.False(t, ok)
	assert.Equal(t, []Signal{PreviewMoved}, rec.take())
}

func TestUndoDuringDrag(t *testing.T) {
	s, _ := newSession(t, command.LineTool("thin", 3))
	s.PointerDown(0, 0)
	s.PointerMove(1, 1)
	s.PointerUp()
	first := s.IDs()

	s.PointerDown(10, 10)
	s.PointerMove(11, 11)
	s.Undo()
	assert.Equal(t, first, s.IDs())
	assert.False(t, s.Drawing())

	// The rest of the gesture only moves the preview.
	s.PointerMove(12, 12)
	assert.Equal(t, first, s.IDs())
	_, ok := s.Preview()
	assert.True(t, ok)
}

func TestSelectToolRebuildsPreview(t *testing.T) {
	s, rec := newSession(t, command.LineTool("thin", 3), command.StickerTool("h", "H"))
	s.SelectIndex(1)
	assert.Empty(t, rec.take(), "no preview to refresh yet")

	s.PointerMove(5, 5)
	rec.take()
	s.SelectTool(command.LineTool("wide", 30))
	p, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, 30.0, p.Tool.Width)
	assert.Equal(t, geom.Pt(5, 5), p.Pos)
	assert.Equal(t, []Signal{PreviewMoved}, rec.take())
}

func TestToolChangeDuringDragKeepsCommand(t *testing.T) {
	s, _ := newSession(t, command.LineTool("thin", 3), command.StickerTool("h", "H"))
	s.PointerDown(0, 0)
	s.SelectIndex(1)
	s.PointerMove(5, 5)
	s.PointerUp()
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "h", s.Tool().Name)
	assert.True(t, s.SelectName("thin"))
	assert.Equal(t, 0, s.ToolIndex())
}

func TestReplaceToolsKeepsActive(t *testing.T) {
	s, _ := newSession(t)
	s.SelectIndex(1)
	s.ReplaceTools([]command.Tool{command.StickerTool("h", "H")})
	assert.Equal(t, "thick", s.Tool().Name)
	assert.Len(t, s.Tools(), 1)
	assert.Equal(t, -1, s.ToolIndex())
}
