package table

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
)

// Axis distinguishes rows from columns.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisColumn:
		return "column"
	}
	return "axis?"
}

func (a Axis) valid() bool { return a == AxisRow || a == AxisColumn }

// Rows returns the number of rows of t.
func Rows(t *document.Node) int {
	if t == nil || t.Kind() != document.KindTable {
		return 0
	}
	return t.NumChildren()
}

// Columns returns the column count of t: the largest cell count over
// its rows, zero if it has none.
func Columns(t *document.Node) int {
	if t == nil || t.Kind() != document.KindTable {
		return 0
	}
	n := 0
	for _, r := range t.Children() {
		if r.NumChildren() > n {
			n = r.NumChildren()
		}
	}
	return n
}

// count returns the number of rows or columns of t.
func count(t *document.Node, a Axis) int {
	if a == AxisRow {
		return Rows(t)
	}
	return Columns(t)
}

// Cell returns the cell at (row, col) of t, or nil.
func Cell(t *document.Node, row, col int) *document.Node {
	if t == nil || t.Kind() != document.KindTable {
		return nil
	}
	r := t.Child(row)
	if r == nil {
		return nil
	}
	return r.Child(col)
}

// CellOf returns the cell that contains n, or nil.
func CellOf(n *document.Node) *document.Node {
	if n == nil {
		return nil
	}
	return n.Ancestor(document.KindCell)
}

// TableOf returns the table that contains n, or nil. A boundary marker
// belongs to its table.
func TableOf(n *document.Node) *document.Node {
	if n == nil {
		return nil
	}
	return n.Ancestor(document.KindTable)
}

// Position returns the row and column of cell.
func Position(cell *document.Node) (row, col int, ok bool) {
	if cell == nil || cell.Kind() != document.KindCell || cell.Parent() == nil {
		return 0, 0, false
	}
	return cell.Parent().Index(), cell.Index(), true
}

// FirstCell returns the top-left cell of t.
func FirstCell(t *document.Node) *document.Node {
	return Cell(t, 0, 0)
}

// LastCell returns the last cell of the bottom row of t.
func LastCell(t *document.Node) *document.Node {
	r := t.Child(t.NumChildren() - 1)
	if r == nil {
		return nil
	}
	return r.Child(r.NumChildren() - 1)
}

// nextCell returns the cell following c in row-major order, or nil.
func nextCell(c *document.Node) *document.Node {
	row, col, ok := Position(c)
	if !ok {
		return nil
	}
	t := TableOf(c)
	if n := Cell(t, row, col+1); n != nil {
		return n
	}
	for r := row + 1; r < Rows(t); r++ {
		if n := Cell(t, r, 0); n != nil {
			return n
		}
	}
	return nil
}

// prevCell returns the cell preceding c in row-major order, or nil.
func prevCell(c *document.Node) *document.Node {
	row, col, ok := Position(c)
	if !ok {
		return nil
	}
	t := TableOf(c)
	if col > 0 {
		return Cell(t, row, col-1)
	}
	for r := row - 1; r >= 0; r-- {
		if rr := t.Child(r); rr.NumChildren() > 0 {
			return rr.Child(rr.NumChildren() - 1)
		}
	}
	return nil
}

// cells calls fn for every cell of t.
func cells(t *document.Node, fn func(row, col int, c *document.Node)) {
	for i, r := range t.Children() {
		for j, c := range r.Children() {
			fn(i, j, c)
		}
	}
}

// CellAt returns the cell drawn under viewport point pt, or nil.
func (e *Engine) CellAt(pt image.Point) *document.Node {
	for _, t := range e.doc.Tables() {
		if tb, ok := e.geom.Bounds(t); !ok || !pt.In(tb) {
			continue
		}
		var hit *document.Node
		cells(t, func(_, _ int, c *document.Node) {
			if hit != nil {
				return
			}
			if b, ok := e.geom.Bounds(c); ok && pt.In(b) {
				hit = c
			}
		})
		if hit != nil {
			return hit
		}
	}
	return nil
}

// rowSpans returns the vertical extent of each row of t.
func (e *Engine) rowSpans(t *document.Node) ([][2]int, bool) {
	spans := make([][2]int, 0, t.NumChildren())
	for _, r := range t.Children() {
		b, ok := e.geom.Bounds(r)
		if !ok {
			return nil, false
		}
		spans = append(spans, [2]int{b.Min.Y, b.Max.Y})
	}
	return spans, true
}

// columnSpans returns the horizontal extent of each column of t,
// measured on the first row long enough to have it.
func (e *Engine) columnSpans(t *document.Node) ([][2]int, bool) {
	n := Columns(t)
	spans := make([][2]int, 0, n)
	for j := 0; j < n; j++ {
		found := false
		for i := 0; i < Rows(t) && !found; i++ {
			c := Cell(t, i, j)
			if c == nil {
				continue
			}
			b, ok := e.geom.Bounds(c)
			if !ok {
				return nil, false
			}
			spans = append(spans, [2]int{b.Min.X, b.Max.X})
			found = true
		}
	}
	return spans, len(spans) == n
}

// spans returns the row or column extents of t.
func (e *Engine) spans(t *document.Node, a Axis) ([][2]int, bool) {
	if a == AxisRow {
		return e.rowSpans(t)
	}
	return e.columnSpans(t)
}

// boundaries returns the positions of the count+1 boundaries between
// the rows or columns described by spans.
func boundaries(spans [][2]int) []int {
	if len(spans) == 0 {
		return nil
	}
	bs := make([]int, 0, len(spans)+1)
	for _, s := range spans {
		bs = append(bs, s[0])
	}
	return append(bs, spans[len(spans)-1][1])
}
