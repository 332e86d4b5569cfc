package table

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
)

// Pointer is a pointer event: the 9fans mouse state plus the keyboard
// modifiers held at the time.
type Pointer struct {
	draw.Mouse
	Mod Mod
}

// handle identifies one structural handle.
type handle struct {
	axis  Axis
	table document.ID
	index int
}

// insertPoint is a pending "insert here" affordance.
type insertPoint struct {
	axis  Axis
	table document.ID
	index int
}

// dragSession is a press on a structural handle.
type dragSession struct {
	axis     Axis
	table    document.ID
	source   int
	insert   int
	start    image.Point
	dragging bool
}

// selecting is a press that started on a cell.
type selecting struct {
	anchor   document.ID
	focus    document.ID
	dragging bool
}

// hoverState is what the pointer is over while no button is held.
type hoverState struct {
	table  document.ID
	cell   document.ID
	handle *handle
	insert *insertPoint
	active *handle // handle of the structural selection
}

// PointerDown handles a button press. A press on the primary button
// over an insert affordance in a handle strip inserts a row or column;
// over the rest of a structural
// handle it selects the row or column and arms a drag; over a cell it
// starts a range selection but leaves caret placement to the host; in
// a table's margin it moves the caret next to the table. Anywhere else
// it drops the selection.
func (e *Engine) PointerDown(p Pointer) bool {
	defer e.flushFocus()
	e.reconcile()
	if p.Buttons&draw.Button1 == 0 {
		return false
	}
	e.drag = nil
	e.selecting = nil

	if ip, ok := e.insertAt(p.Point); ok {
		t := e.lookup(ip.table)
		e.clearSelections()
		e.mutate(func() {
			if ip.axis == AxisRow {
				e.insertRow(t, ip.index, 0)
			} else {
				e.insertColumn(t, ip.index, 0)
			}
		})
		e.clearHover()
		return true
	}
	if h, ok := e.handleAt(p.Point); ok {
		t := e.lookup(h.table)
		e.SetStructuralSelection(h.axis, t, h.index)
		e.drag = &dragSession{
			axis:   h.axis,
			table:  h.table,
			source: h.index,
			insert: h.index,
			start:  p.Point,
		}
		return true
	}
	if c := e.CellAt(p.Point); c != nil {
		e.selecting = &selecting{anchor: c.ID(), focus: c.ID()}
		e.SelectCellRange(c, c)
		return false
	}
	if t, side, ok := e.marginAt(p.Point); ok {
		e.Clear()
		if side == document.SideLeft {
			e.doc.SetCaret(t.Edge(side), 0)
		} else {
			e.doc.SetCaret(t.Edge(side), 1)
		}
		return true
	}
	if e.rng != nil || e.str != nil {
		e.Clear()
	}
	return false
}

// PointerMove handles pointer motion, with or without a button held.
func (e *Engine) PointerMove(p Pointer) bool {
	defer e.flushFocus()
	e.reconcile()

	if d := e.drag; d != nil {
		t := e.lookup(d.table)
		if !d.dragging && exceeds(p.Point.Sub(d.start), e.cfg.DragThreshold) {
			d.dragging = true
		}
		if d.dragging {
			d.insert = e.insertionIndex(t, d.axis, p.Point)
		}
		return true
	}

	if s := e.selecting; s != nil && p.Buttons&draw.Button1 != 0 {
		anchor := e.lookup(s.anchor)
		c := e.CellAt(p.Point)
		if c != nil && TableOf(c) == TableOf(anchor) && c.ID() != s.focus {
			s.focus = c.ID()
			s.dragging = true
			e.SelectCellRange(anchor, c)
		}
		if s.dragging {
			e.doc.ClearSelection()
			return true
		}
		return false
	}

	e.updateHover(p.Point)
	return false
}

// PointerUp ends a press. A handle press that never moved far enough
// is a click that keeps the row or column selected; a real drag
// reorders and drops the selection. A range drag leaves the caret at
// the start of the focus cell, while a plain click in a cell keeps
// whatever caret the host placed.
func (e *Engine) PointerUp(p Pointer) bool {
	defer e.flushFocus()
	e.reconcile()

	if d := e.drag; d != nil {
		e.drag = nil
		t := e.lookup(d.table)
		if !d.dragging {
			e.SetStructuralSelection(d.axis, t, d.source)
			return true
		}
		target, ok := moveTarget(count(t, d.axis), d.source, d.insert)
		if !ok || target == d.source {
			return true
		}
		e.mutate(func() { e.move(d.axis, t, d.source, target) })
		e.clearStructural()
		return true
	}

	if s := e.selecting; s != nil {
		e.selecting = nil
		r, ok := e.CellRange()
		if !ok {
			return false
		}
		if r.Len() > 1 {
			if f := e.lookup(s.focus); f != nil {
				e.doc.SetCaret(f, 0)
			}
			return true
		}
		e.clearCellRange()
		c := e.lookup(s.anchor)
		if pt, ok := e.doc.Caret(); !ok || CellOf(pt.Node) != c {
			e.doc.SetCaret(c, 0)
		}
		return false
	}
	return false
}

// MouseLeave forgets the hover state when the pointer leaves the
// document view.
func (e *Engine) MouseLeave() bool {
	e.clearHover()
	return false
}

func exceeds(d image.Point, threshold int) bool {
	return d.X*d.X+d.Y*d.Y >= threshold*threshold
}

// insertionIndex returns the slot in front of which a dragged row or
// column would land: the number of rows (columns) whose centre lies at
// or above (left of) pt.
func (e *Engine) insertionIndex(t *document.Node, a Axis, pt image.Point) int {
	spans, ok := e.spans(t, a)
	if !ok {
		return 0
	}
	v := pt.Y
	if a == AxisColumn {
		v = pt.X
	}
	idx := 0
	for _, s := range spans {
		if v >= (s[0]+s[1])/2 {
			idx++
		}
	}
	return idx
}

// strips returns the row handle strip left of t and the column handle
// strip above it.
func (e *Engine) strips(t *document.Node) (rows, cols image.Rectangle, ok bool) {
	tb, ok := e.geom.Bounds(t)
	if !ok {
		return image.Rectangle{}, image.Rectangle{}, false
	}
	hs := e.cfg.HandleSize
	rows = image.Rect(tb.Min.X-hs, tb.Min.Y, tb.Min.X, tb.Max.Y)
	cols = image.Rect(tb.Min.X, tb.Min.Y-hs, tb.Max.X, tb.Min.Y)
	return rows, cols, true
}

// stripHit reports which strip of which table pt is over, and the
// coordinate along that strip.
func (e *Engine) stripHit(pt image.Point) (t *document.Node, a Axis, v int, ok bool) {
	for _, t := range e.doc.Tables() {
		rs, cs, ok := e.strips(t)
		if !ok {
			continue
		}
		switch {
		case pt.In(rs):
			return t, AxisRow, pt.Y, true
		case pt.In(cs):
			return t, AxisColumn, pt.X, true
		}
	}
	return nil, 0, 0, false
}

// edgeBand is how far inside a row or column of the given size the
// insert affordance reaches from either end. It never takes more than a
// fifth of the span, so the middle of a handle or a cell stays free.
func (e *Engine) edgeBand(size int) int {
	return min(e.cfg.EdgeHoverSnap, size/5)
}

// insertAt returns the insert affordance under pt in a handle strip:
// the rule between two handles, or a point within edgeBand of either
// end of a handle. Presses there insert a row or column.
func (e *Engine) insertAt(pt image.Point) (insertPoint, bool) {
	t, a, v, ok := e.stripHit(pt)
	if !ok {
		return insertPoint{}, false
	}
	spans, ok := e.spans(t, a)
	if !ok || len(spans) == 0 {
		return insertPoint{}, false
	}
	for i, s := range spans {
		switch band := e.edgeBand(s[1] - s[0]); {
		case v < s[0]:
			return insertPoint{axis: a, table: t.ID(), index: i}, true
		case v >= s[1]:
			continue
		case v-s[0] < band:
			return insertPoint{axis: a, table: t.ID(), index: i}, true
		case s[1]-1-v < band:
			return insertPoint{axis: a, table: t.ID(), index: i + 1}, true
		default:
			return insertPoint{}, false
		}
	}
	return insertPoint{axis: a, table: t.ID(), index: len(spans)}, true
}

// edgeAt returns the boundary nearest pt when pt lies in a cell within
// edgeBand of one of its edges. It only drives the hover guide; a press
// in a cell is always a cell press.
func (e *Engine) edgeAt(pt image.Point) (insertPoint, bool) {
	c := e.CellAt(pt)
	if c == nil {
		return insertPoint{}, false
	}
	r, ok := e.geom.Bounds(c)
	if !ok {
		return insertPoint{}, false
	}
	row, col, _ := Position(c)
	t := TableOf(c)
	rb, cb := e.edgeBand(r.Dy()), e.edgeBand(r.Dx())
	best, bestd := insertPoint{}, -1
	try := func(a Axis, index, d, band int) {
		if d < band && (bestd < 0 || d < bestd) {
			best, bestd = insertPoint{axis: a, table: t.ID(), index: index}, d
		}
	}
	try(AxisRow, row, pt.Y-r.Min.Y, rb)
	try(AxisRow, row+1, r.Max.Y-1-pt.Y, rb)
	try(AxisColumn, col, pt.X-r.Min.X, cb)
	try(AxisColumn, col+1, r.Max.X-1-pt.X, cb)
	return best, bestd >= 0
}

// handleAt returns the structural handle under pt.
func (e *Engine) handleAt(pt image.Point) (handle, bool) {
	t, a, v, ok := e.stripHit(pt)
	if !ok {
		return handle{}, false
	}
	spans, ok := e.spans(t, a)
	if !ok || len(spans) == 0 {
		return handle{}, false
	}
	idx := 0
	for i, s := range spans {
		if v >= s[0] {
			idx = i
		}
	}
	return handle{axis: a, table: t.ID(), index: idx}, true
}

// marginAt reports a click just outside a table's cells: within its
// horizontal extent and no further than OutsideClickSnap above or below
// it. The upper half of the table maps to the left boundary marker, the
// lower half to the right one.
func (e *Engine) marginAt(pt image.Point) (*document.Node, document.Side, bool) {
	for _, t := range e.doc.Tables() {
		tb, ok := e.geom.Bounds(t)
		if !ok || pt.X < tb.Min.X || pt.X >= tb.Max.X {
			continue
		}
		snap := e.cfg.OutsideClickSnap
		if pt.Y < tb.Min.Y-snap || pt.Y >= tb.Max.Y+snap {
			continue
		}
		if pt.Y*2 < tb.Min.Y+tb.Max.Y {
			return t, document.SideLeft, true
		}
		return t, document.SideRight, true
	}
	return nil, 0, false
}

// updateHover recomputes what is under a pointer with no button held
// and refreshes the HandleHover markers.
func (e *Engine) updateHover(pt image.Point) {
	active := e.hover.active
	h := hoverState{active: active}
	if c := e.CellAt(pt); c != nil {
		h.cell = c.ID()
		h.table = TableOf(c).ID()
	}
	if ip, ok := e.insertAt(pt); ok {
		h.insert = &ip
		h.table = ip.table
	} else if ip, ok := e.edgeAt(pt); ok {
		h.insert = &ip
	} else if hd, ok := e.handleAt(pt); ok {
		h.handle = &hd
		h.table = hd.table
	}
	if h.table == 0 {
		for _, t := range e.doc.Tables() {
			if tb, ok := e.geom.Bounds(t); ok && pt.In(tb) {
				h.table = t.ID()
				break
			}
		}
	}
	e.hover = h
	e.paintHover()
}

// clearHover drops the hover state. The active handle of a structural
// selection survives.
func (e *Engine) clearHover() {
	e.hover = hoverState{active: e.hover.active}
	e.paintHover()
}

func (e *Engine) paintHover() {
	e.stripMarks(document.MarkHandleHover)
	h := e.hover.handle
	if h == nil {
		return
	}
	t := e.lookup(h.table)
	if t == nil {
		return
	}
	s := Structural{Axis: h.axis, Table: t, Index: h.index}
	cells(t, func(i, j int, c *document.Node) {
		c.SetMark(document.MarkHandleHover, s.covers(i, j))
	})
}
