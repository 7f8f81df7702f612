package brush

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// History is a linear undo/redo manager over full-canvas snapshots.
//
// A snapshot of the canvas is taken at the start of every stroke, before
// its first stamp. Undo and Redo swap the canvas with the top of the
// respective stack, saving the current pixels onto the other stack.
type History struct {
	storage Storage
	log     *slog.Logger

	undo, redo []string
	inStroke   bool
}

// NewHistory returns a manager storing snapshots in s.
// A nil s uses a MemoryStorage.
func NewHistory(s Storage) *History {
	if s == nil {
		s = NewMemoryStorage()
	}
	return &History{storage: s, log: Logger()}
}

// SetLogger sets the logger used for non-fatal storage warnings.
func (h *History) SetLogger(l *slog.Logger) {
	if l != nil {
		h.log = l
	}
}

// BeginStroke snapshots c if the current stroke has no history entry yet
// and discards the redo stack. Calling it again within the same stroke is a
// no-op.
func (h *History) BeginStroke(c *Canvas) error {
	if h.inStroke {
		return nil
	}
	id, err := h.storage.Save(c.RGBA())
	if err != nil {
		return fmt.Errorf("brush: begin stroke: %w", err)
	}
	h.inStroke = true
	h.undo = append(h.undo, id)
	h.dropAll(&h.redo)
	return nil
}

// EndStroke closes the current stroke.
func (h *History) EndStroke() {
	h.inStroke = false
}

// InStroke reports whether a stroke has an open history entry.
func (h *History) InStroke() bool {
	return h.inStroke
}

// CanUndo reports whether Undo has an entry to restore.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has an entry to restore.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo restores the canvas to the state before the last stroke.
// It reports false when there is nothing to undo.
func (h *History) Undo(c *Canvas) (bool, error) {
	return h.swap(c, &h.undo, &h.redo, "undo")
}

// Redo reapplies the last undone stroke.
// It reports false when there is nothing to redo.
func (h *History) Redo(c *Canvas) (bool, error) {
	return h.swap(c, &h.redo, &h.undo, "redo")
}

// swap pops from, restores the canvas from it and pushes the previous
// canvas onto to. On failure the stacks are unchanged, except that an entry
// whose snapshot is missing is dropped.
func (h *History) swap(c *Canvas, from, to *[]string, op string) (bool, error) {
	h.inStroke = false
	if len(*from) == 0 {
		return false, nil
	}
	top := len(*from) - 1
	id := (*from)[top]

	tmp := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	if err := h.storage.Load(id, tmp); err != nil {
		if errors.Is(err, ErrSnapshotMissing) {
			*from = (*from)[:top]
		}
		return false, fmt.Errorf("brush: %s: %w", op, err)
	}
	cur, err := h.storage.Save(c.RGBA())
	if err != nil {
		return false, fmt.Errorf("brush: %s: %w", op, err)
	}

	*from = (*from)[:top]
	*to = append(*to, cur)
	h.delete(id)
	if err := c.CopyFrom(tmp); err != nil {
		return false, fmt.Errorf("brush: %s: %w", op, err)
	}
	return true, nil
}

// Clear drops both stacks and deletes their snapshots.
func (h *History) Clear() {
	h.inStroke = false
	h.dropAll(&h.undo)
	h.dropAll(&h.redo)
}

// Close clears the history and closes the storage.
func (h *History) Close() error {
	h.Clear()
	return h.storage.Close()
}

func (h *History) dropAll(stack *[]string) {
	for _, id := range *stack {
		h.delete(id)
	}
	*stack = (*stack)[:0]
}

func (h *History) delete(id string) {
	if err := h.storage.Delete(id); err != nil {
		h.log.Warn("brush: delete snapshot", "id", id, "err", err)
	}
}
