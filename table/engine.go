// Package table is the table interaction engine of the editor. It
// turns the rows and cells of a document table into a spreadsheet-like
// editing surface: cell range and whole row or column selection, drag
// to reorder, keyboard navigation across cells, visual lines and table
// boundaries, rectangular copy and paste and structural edits that keep
// the grid well formed.
//
// The engine owns no document state. It reads and edits a
// document.Document, asks a Geometry where things are drawn and tells
// its Host when to checkpoint undo state and when content changed. Every
// event handler returns whether the engine handled the event, so the
// host knows whether to suppress its default behaviour.
//
// The engine serves one event at a time and is not safe for concurrent
// use.
package table

import (
	"image"
	"log"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/layout"
)

// Host is the engine's view of the editor that embeds it.
type Host interface {
	// SaveState checkpoints undo state. The engine calls it exactly once
	// before each mutating operation.
	SaveState()

	// Changed reports that document content changed. It is called after
	// the mutation completes and never for pure selection changes.
	Changed()
}

// Focuser is implemented by hosts that want input focus returned to the
// document after a structural command. The engine calls Focus when the
// handler that issued the command returns.
type Focuser interface {
	Focus()
}

// LineMover is implemented by hosts that can move the caret one visual
// line natively. It is the last resort when the engine cannot place the
// caret on a neighbouring line itself.
type LineMover interface {
	MoveCaretByLine(down bool) bool
}

// Geometry answers where the document is drawn. All rectangles are in
// viewport coordinates. *layout.Layout implements it.
type Geometry interface {
	Bounds(n *document.Node) (image.Rectangle, bool)
	Lines(n *document.Node) []layout.Line
	CaretRect(p document.Point) (image.Rectangle, bool)
	LocateCaretNear(ln layout.Line, x int) (document.Point, bool)
	Scroll() image.Point
}

var _ Geometry = (*layout.Layout)(nil)

// Engine is the table interaction engine for one document.
type Engine struct {
	doc  *document.Document
	geom Geometry
	host Host
	cfg  Config
	log  *log.Logger

	clip     Clipboard
	fallback [][]string

	rng       *cellRange
	str       *structural
	drag      *dragSession
	selecting *selecting
	hover     hoverState

	focusPending bool
	sources      []Source
	subs         []Subscription
}

// New returns an engine editing the tables of doc.
func New(doc *document.Document, geom Geometry, host Host, opts ...Option) *Engine {
	e := &Engine{
		doc:  doc,
		geom: geom,
		host: host,
		cfg:  DefaultConfig(),
		log:  discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, src := range e.sources {
		e.subs = append(e.subs, src.Subscribe(e.signal))
	}
	return e
}

// Close ends the engine's subscriptions and drops its transient state.
func (e *Engine) Close() {
	for _, s := range e.subs {
		s.Unsubscribe()
	}
	e.subs = nil
	e.drag = nil
	e.selecting = nil
	e.clearHover()
}

// Config returns the engine's tuning constants.
func (e *Engine) Config() Config { return e.cfg }

// mutate runs fn between the host's checkpoint and change hooks and
// schedules a focus return.
func (e *Engine) mutate(fn func()) {
	e.host.SaveState()
	fn()
	e.host.Changed()
	e.focusPending = true
}

// flushFocus hands focus back to the document if a structural command
// asked for it. Every exported entry point defers it.
func (e *Engine) flushFocus() {
	if !e.focusPending {
		return
	}
	e.focusPending = false
	if f, ok := e.host.(Focuser); ok {
		f.Focus()
	}
}

// lookup re-resolves a stored node.
func (e *Engine) lookup(id document.ID) *document.Node {
	return e.doc.Lookup(id)
}

// attachedTable reports whether t is a table still in e's document.
func (e *Engine) attachedTable(t *document.Node) bool {
	return t != nil && t.Kind() == document.KindTable && t.Document() == e.doc && t.Attached()
}

// reconcile drops transient gesture state that refers to nodes which
// are gone. Each handler starts with it.
func (e *Engine) reconcile() {
	if d := e.drag; d != nil && e.lookup(d.table) == nil {
		e.log.Printf("table: drag table %d detached", d.table)
		e.drag = nil
	}
	if s := e.selecting; s != nil && e.lookup(s.anchor) == nil {
		e.log.Printf("table: range anchor %d detached", s.anchor)
		e.selecting = nil
	}
	if h := e.hover; h.table != 0 && e.lookup(h.table) == nil {
		e.clearHover()
	}
}
