package table

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
)

// Handle is a structural handle the renderer should draw.
type Handle struct {
	Axis   Axis
	Index  int
	Rect   image.Rectangle // viewport coordinates
	Hover  bool
	Active bool
}

// Overlay is what the renderer draws on top of the document for the
// engine's state. Empty rectangles are absent.
type Overlay struct {
	// Table is the table the overlay belongs to, nil if none.
	Table *document.Node

	// Outline bounds the selected cells or the selected row or column.
	Outline image.Rectangle

	// Guide is the insert affordance line, in document coordinates.
	Guide image.Rectangle

	// Indicator marks where a dragged row or column would land.
	Indicator image.Rectangle

	Handles []Handle
}

// Overlay returns the current overlay. Handles are shown for the table
// under the pointer, or else for the table holding a selection.
func (e *Engine) Overlay() Overlay {
	e.reconcile()
	var o Overlay

	if r, ok := e.CellRange(); ok {
		o.Table = r.Table
		o.Outline = e.union(r.Table, func(i, j int) bool { return r.Contains(i, j) })
	} else if s, ok := e.StructuralSelection(); ok {
		o.Table = s.Table
		o.Outline = e.union(s.Table, s.covers)
	}

	if d := e.drag; d != nil && d.dragging {
		t := e.lookup(d.table)
		o.Table = t
		o.Indicator = e.boundaryLine(t, d.axis, d.insert)
	}

	if ip := e.hover.insert; ip != nil {
		if t := e.lookup(ip.table); t != nil {
			o.Guide = e.boundaryLine(t, ip.axis, ip.index).Add(e.geom.Scroll())
		}
	}

	ht := o.Table
	if e.hover.table != 0 {
		ht = e.lookup(e.hover.table)
	}
	if ht != nil {
		o.Handles = e.handles(ht)
		if o.Table == nil {
			o.Table = ht
		}
	}
	return o
}

// union returns the bounding box of the cells of t selected by in.
func (e *Engine) union(t *document.Node, in func(i, j int) bool) image.Rectangle {
	var u image.Rectangle
	cells(t, func(i, j int, c *document.Node) {
		if !in(i, j) {
			return
		}
		if b, ok := e.geom.Bounds(c); ok {
			u = u.Union(b)
		}
	})
	return u
}

// boundaryLine returns a one unit thick line across t along boundary
// index of axis a, in viewport coordinates.
func (e *Engine) boundaryLine(t *document.Node, a Axis, index int) image.Rectangle {
	tb, ok := e.geom.Bounds(t)
	if !ok {
		return image.Rectangle{}
	}
	spans, ok := e.spans(t, a)
	bs := boundaries(spans)
	if !ok || index < 0 || index >= len(bs) {
		return image.Rectangle{}
	}
	v := bs[index]
	if a == AxisRow {
		return image.Rect(tb.Min.X, v, tb.Max.X, v+1)
	}
	return image.Rect(v, tb.Min.Y, v+1, tb.Max.Y)
}

// handles returns the row and column handles of t.
func (e *Engine) handles(t *document.Node) []Handle {
	rs, cs, ok := e.strips(t)
	if !ok {
		return nil
	}
	var hs []Handle
	mark := func(a Axis, i int, r image.Rectangle) {
		h := Handle{Axis: a, Index: i, Rect: r}
		if hv := e.hover.handle; hv != nil && hv.table == t.ID() && hv.axis == a && hv.index == i {
			h.Hover = true
		}
		if ac := e.hover.active; ac != nil && ac.table == t.ID() && ac.axis == a && ac.index == i {
			h.Active = true
		}
		hs = append(hs, h)
	}
	if spans, ok := e.rowSpans(t); ok {
		for i, s := range spans {
			mark(AxisRow, i, image.Rect(rs.Min.X, s[0], rs.Max.X, s[1]))
		}
	}
	if spans, ok := e.columnSpans(t); ok {
		for j, s := range spans {
			mark(AxisColumn, j, image.Rect(s[0], cs.Min.Y, s[1], cs.Max.Y))
		}
	}
	return hs
}
