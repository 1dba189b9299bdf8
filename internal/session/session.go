// Package session turns pointer and toolbar input into changes to a picture.
//
// A Session owns the history, the toolbox and the idle-pointer preview. It is
// not safe for concurrent use; the window event loop drives it from a single
// goroutine.
package session

import (
	"log/slog"

	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/geom"
	"github.com/example/quaintpaint/internal/history"
	qlog "github.com/example/quaintpaint/internal/log"
	"github.com/example/quaintpaint/internal/toolbox"
)

// Signal says what kind of repaint an input caused.
type Signal int

const (
	// ContentChanged means the display list changed.
	ContentChanged Signal = iota + 1
	// PreviewMoved means only the preview changed.
	PreviewMoved
)

func (s Signal) String() string {
	switch s {
	case ContentChanged:
		return "content"
	case PreviewMoved:
		return "preview"
	}
	return "none"
}

// Session is the drawing state of one picture.
type Session struct {
	hist    *history.History
	tools   *toolbox.Toolbox
	preview *command.Preview

	pending   Signal
	listeners []func(Signal)
	log       *slog.Logger
}

// New returns an empty picture with tools as the palette.
func New(tools []command.Tool) *Session {
	s := &Session{
		tools: toolbox.New(tools),
		log:   qlog.WithComponent("session"),
	}
	s.hist = history.New(func() { s.raise(ContentChanged) })
	return s
}

// Subscribe registers fn to run once after every input that changed
// something.
func (s *Session) Subscribe(fn func(Signal)) {
	s.listeners = append(s.listeners, fn)
}

// raise records sig. ContentChanged wins since a full repaint also covers the
// preview.
func (s *Session) raise(sig Signal) {
	if s.pending != ContentChanged {
		s.pending = sig
	}
}

// flush delivers the pending signal, if any. Every exported mutator ends with
// it so one input yields at most one notification.
func (s *Session) flush() {
	sig := s.pending
	s.pending = 0
	if sig == 0 {
		return
	}
	for _, fn := range s.listeners {
		fn(sig)
	}
}

// PointerDown starts a new stroke or sticker with the active tool.
func (s *Session) PointerDown(x, y float64) {
	defer s.flush()
	s.hist.Finish()
	s.preview = nil
	c := command.New(s.tools.Current(), geom.Pt(x, y))
	s.hist.Begin(c)
	s.log.Debug("begin", "id", c.ID(), "tool", s.tools.Current().Name, "x", x, "y", y)
}

// PointerMove extends the command being drawn, or moves the preview when the
// pointer is idle.
func (s *Session) PointerMove(x, y float64) {
	defer s.flush()
	if s.hist.Drawing() {
		s.hist.Extend(x, y)
		return
	}
	s.preview = &command.Preview{Pos: geom.Pt(x, y), Tool: s.tools.Current()}
	s.raise(PreviewMoved)
}

// PointerUp finishes the command being drawn.
func (s *Session) PointerUp() {
	if s.hist.Finish() {
		s.log.Debug("commit", "len", s.hist.Len())
	}
}

// PointerLeave finishes any drag and hides the preview.
func (s *Session) PointerLeave() {
	defer s.flush()
	s.PointerUp()
	if s.preview != nil {
		s.preview = nil
		s.raise(PreviewMoved)
	}
}

// SelectTool makes t the active tool. A command being drawn keeps its tool.
func (s *Session) SelectTool(t command.Tool) {
	defer s.flush()
	s.tools.Select(t)
	s.refreshPreview()
	s.log.Debug("tool", "name", t.Name, "kind", t.Kind.String())
}

// SelectIndex activates palette entry i.
func (s *Session) SelectIndex(i int) bool {
	defer s.flush()
	if !s.tools.SelectIndex(i) {
		return false
	}
	s.refreshPreview()
	return true
}

// SelectName activates the palette entry called name.
func (s *Session) SelectName(name string) bool {
	defer s.flush()
	if !s.tools.SelectName(name) {
		return false
	}
	s.refreshPreview()
	return true
}

// ReplaceTools swaps the palette, keeping the active tool.
func (s *Session) ReplaceTools(tools []command.Tool) {
	s.tools.Replace(tools)
}

func (s *Session) refreshPreview() {
	if s.preview == nil {
		return
	}
	s.preview = &command.Preview{Pos: s.preview.Pos, Tool: s.tools.Current()}
	s.raise(PreviewMoved)
}

// Undo removes the most recent command. Undoing during a drag removes the
// command being drawn and ends the drag.
func (s *Session) Undo() {
	defer s.flush()
	s.hist.Undo()
	s.log.Debug("undo", "len", s.hist.Len(), "redo", s.hist.RedoLen())
}

// Redo restores the most recently undone command.
func (s *Session) Redo() {
	defer s.flush()
	s.hist.Redo()
	s.log.Debug("redo", "len", s.hist.Len(), "redo", s.hist.RedoLen())
}

// Clear empties the picture and the redo stack.
func (s *Session) Clear() {
	defer s.flush()
	s.hist.Clear()
	s.log.Debug("clear")
}

// Renderers returns the display list in paint order.
func (s *Session) Renderers() []command.Renderer { return s.hist.Renderers() }

// Preview returns the idle-pointer preview, if one is shown.
func (s *Session) Preview() (command.Preview, bool) {
	if s.preview == nil {
		return command.Preview{}, false
	}
	return *s.preview, true
}

// Tool returns the active tool.
func (s *Session) Tool() command.Tool { return s.tools.Current() }

// ToolIndex returns the palette index of the active tool, or -1.
func (s *Session) ToolIndex() int { return s.tools.Index() }

// Tools returns the palette.
func (s *Session) Tools() []command.Tool { return s.tools.Tools() }

func (s *Session) Drawing() bool { return s.hist.Drawing() }
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }
func (s *Session) Len() int      { return s.hist.Len() }
func (s *Session) RedoLen() int  { return s.hist.RedoLen() }

// IDs lists the display list command ids in paint order.
func (s *Session) IDs() []string { return s.hist.IDs() }
