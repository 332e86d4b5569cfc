package gridtest

import (
	"github.com/rjkroege/mdgrid/document"
)

// Host records the engine's calls into its host and the document
// mutations between them, so tests can check the order
// checkpoint, mutate, notify.
type Host struct {
	Events []string

	// MoveByLine, if set, answers MoveCaretByLine.
	MoveByLine func(down bool) bool

	cancel func()
}

// NewHost returns a Host that also records doc's content changes as
// "mutate" events. Consecutive mutations are folded into one event.
func NewHost(doc *document.Document) *Host {
	h := &Host{}
	h.cancel = doc.Observe(document.ObserverFunc(func(document.Change) {
		if n := len(h.Events); n > 0 && h.Events[n-1] == "mutate" {
			return
		}
		h.Events = append(h.Events, "mutate")
	}))
	return h
}

func (h *Host) SaveState() { h.Events = append(h.Events, "save") }
func (h *Host) Changed()   { h.Events = append(h.Events, "changed") }
func (h *Host) Focus()     { h.Events = append(h.Events, "focus") }

// MoveCaretByLine implements the engine's native line movement fallback.
func (h *Host) MoveCaretByLine(down bool) bool {
	if h.MoveByLine == nil {
		return false
	}
	h.Events = append(h.Events, "movebyline")
	return h.MoveByLine(down)
}

// Reset forgets the recorded events.
func (h *Host) Reset() { h.Events = nil }

// Close stops observing the document.
func (h *Host) Close() { h.cancel() }
