// Package undo provides a checkpoint history for undoable and redoable
// document edits.
//
// The history holds whole-document snapshots taken just before each
// change. It works with actions the way a text buffer's undo does: the
// actions before head can be undone, the ones from head on redone, and
// recording a new action discards whatever could have been redone.
//
// Undoing swaps the current state into the slot of the snapshot it
// restores, so the same stack serves both directions.
package undo

import (
	"errors"

	"github.com/rjkroege/mdgrid/dumpfile"
)

// ErrNothing is returned by Undo and Redo when there is nothing to undo
// or redo.
var ErrNothing = errors.New("nothing to undo or redo")

// DefaultLimit is the number of checkpoints a History keeps unless told
// otherwise.
const DefaultLimit = 100

// History is a bounded stack of document snapshots.
type History struct {
	actions []*dumpfile.Content // snapshot stack
	head    int                 // index for the next action to add
	saved   int                 // head when the document was last saved; -1 if unreachable
	limit   int
}

// New returns an empty history keeping at most limit checkpoints. A
// limit of zero or less means DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Checkpoint records s as the state before the next change. Anything
// that could have been redone is lost.
func (h *History) Checkpoint(s *dumpfile.Content) {
	if h.saved > h.head {
		h.saved = -1
	}
	h.actions = append(h.actions[:h.head], s)
	h.head++
	if len(h.actions) > h.limit {
		n := len(h.actions) - h.limit
		h.actions = append(h.actions[:0], h.actions[n:]...)
		h.head -= n
		if h.saved >= 0 {
			h.saved = max(h.saved-n, -1)
		}
	}
}

// Undo returns the state before the most recent change and keeps cur,
// the state being undone, for Redo.
func (h *History) Undo(cur *dumpfile.Content) (*dumpfile.Content, error) {
	if h.head == 0 {
		return nil, ErrNothing
	}
	h.head--
	s := h.actions[h.head]
	h.actions[h.head] = cur
	return s, nil
}

// Redo returns the state that the most recent Undo replaced and keeps
// cur for a following Undo.
func (h *History) Redo(cur *dumpfile.Content) (*dumpfile.Content, error) {
	if h.head == len(h.actions) {
		return nil, ErrNothing
	}
	s := h.actions[h.head]
	h.actions[h.head] = cur
	h.head++
	return s, nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.head > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.head < len(h.actions) }

// Len returns the number of checkpoints held in both directions.
func (h *History) Len() int { return len(h.actions) }

// MarkSaved records that the current state is the one on disk.
func (h *History) MarkSaved() { h.saved = h.head }

// Dirty reports whether the current state differs from the last saved
// one.
func (h *History) Dirty() bool { return h.saved != h.head }

// Clear forgets every checkpoint. The current state counts as saved.
func (h *History) Clear() {
	h.actions = h.actions[:0]
	h.head = 0
	h.saved = 0
}
