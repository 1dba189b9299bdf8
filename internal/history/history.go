// Package history keeps the picture's display list and its redo stack.
package history

import (
	"github.com/example/quaintpaint/internal/command"
	"github.com/example/quaintpaint/internal/render"
)

// History owns every committed command. A command is either on the display
// list, on the redo stack, or gone; never in two places at once.
//
// While a command is open (between Begin and Finish) it is the last entry of
// the display list and the only command Extend reaches.
type History struct {
	list     []command.Command
	redo     []command.Command
	open     bool
	onChange func()
}

// New returns an empty history. onChange, if not nil, runs after every
// mutation.
func New(onChange func()) *History {
	return &History{onChange: onChange}
}

func (h *History) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}

// Commit appends c to the display list and drops the redo stack.
func (h *History) Commit(c command.Command) {
	h.open = false
	h.list = append(h.list, c)
	clear(h.redo)
	h.redo = h.redo[:0]
	h.changed()
}

// Begin commits c and keeps it open for Extend.
func (h *History) Begin(c command.Command) {
	h.Commit(c)
	h.open = true
}

// Extend forwards the pointer to the open command. It does nothing when no
// command is open.
func (h *History) Extend(x, y float64) {
	if !h.open {
		return
	}
	h.list[len(h.list)-1].Extend(x, y)
	h.changed()
}

// Finish closes the open command and reports whether there was one.
func (h *History) Finish() bool {
	was := h.open
	h.open = false
	return was
}

// Drawing reports whether a command is open.
func (h *History) Drawing() bool { return h.open }

// Undo moves the last command onto the redo stack. Undoing the open command
// closes it.
func (h *History) Undo() {
	if len(h.list) == 0 {
		return
	}
	last := len(h.list) - 1
	c := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	h.redo = append(h.redo, c)
	h.open = false
	h.changed()
}

// Redo moves the most recently undone command back onto the display list.
func (h *History) Redo() {
	if len(h.redo) == 0 {
		return
	}
	last := len(h.redo) - 1
	c := h.redo[last]
	h.redo[last] = nil
	h.redo = h.redo[:last]
	h.list = append(h.list, c)
	h.changed()
}

// Clear empties the display list and the redo stack.
func (h *History) Clear() {
	clear(h.list)
	clear(h.redo)
	h.list = h.list[:0]
	h.redo = h.redo[:0]
	h.open = false
	h.changed()
}

// Len returns the number of commands on the display list.
func (h *History) Len() int { return len(h.list) }

// RedoLen returns the number of commands that Redo can restore.
func (h *History) RedoLen() int { return len(h.redo) }

// CanUndo reports whether the display list has a command to undo.
func (h *History) CanUndo() bool { return len(h.list) > 0 }

// CanRedo reports whether an undone command can be restored.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// renderOnly hides Extend from readers of the display list.
type renderOnly struct{ r command.Renderer }

func (v renderOnly) Render(s *render.Surface) { v.r.Render(s) }

// Renderers returns the display list in paint order. The slice is a copy and
// its entries cannot be extended through it.
func (h *History) Renderers() []command.Renderer {
	out := make([]command.Renderer, len(h.list))
	for i, c := range h.list {
		out[i] = renderOnly{c}
	}
	return out
}

// IDs lists the display list command ids in order.
func (h *History) IDs() []string {
	out := make([]string, len(h.list))
	for i, c := range h.list {
		out[i] = c.ID().String()
	}
	return out
}

// RedoIDs lists the redo stack ids from bottom to top.
func (h *History) RedoIDs() []string {
	out := make([]string, len(h.redo))
	for i, c := range h.redo {
		out[i] = c.ID().String()
	}
	return out
}
