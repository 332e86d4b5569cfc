package table

import (
	"github.com/rjkroege/mdgrid/document"
)

// cellRange is a stored rectangle of cells. Indices are inclusive and
// already ordered; they are intersected with the table on every read.
type cellRange struct {
	table          document.ID
	r0, r1, c0, c1 int
}

// structural is a stored whole row or column selection.
type structural struct {
	axis  Axis
	table document.ID
	index int
}

// Range is a rectangular cell selection with inclusive bounds.
type Range struct {
	Table          *document.Node
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Contains reports whether the cell at (row, col) is in r.
func (r Range) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow && col >= r.MinCol && col <= r.MaxCol
}

// Len returns the number of cells in r.
func (r Range) Len() int {
	return (r.MaxRow - r.MinRow + 1) * (r.MaxCol - r.MinCol + 1)
}

// Structural is a whole row or column selection.
type Structural struct {
	Axis  Axis
	Table *document.Node
	Index int
}

// SelectCellRange selects the rectangle spanned by the cells containing
// anchor and focus, in either order. Both must lie in the same table.
// Any structural selection is dropped first.
func (e *Engine) SelectCellRange(anchor, focus *document.Node) bool {
	a, f := CellOf(anchor), CellOf(focus)
	t := TableOf(a)
	if a == nil || f == nil || t != TableOf(f) || !e.attachedTable(t) {
		return false
	}
	ar, ac, _ := Position(a)
	fr, fc, _ := Position(f)
	e.clearStructural()
	e.rng = &cellRange{
		table: t.ID(),
		r0:    min(ar, fr),
		r1:    max(ar, fr),
		c0:    min(ac, fc),
		c1:    max(ac, fc),
	}
	e.paintRange()
	return true
}

// resolveRange returns the stored range intersected with the current
// shape of its table. A range that no longer overlaps anything is gone.
func (e *Engine) resolveRange() (Range, bool) {
	if e.rng == nil {
		return Range{}, false
	}
	t := e.lookup(e.rng.table)
	if t == nil {
		e.log.Printf("table: range table %d detached", e.rng.table)
		e.clearCellRange()
		return Range{}, false
	}
	r := Range{
		Table:  t,
		MinRow: e.rng.r0,
		MaxRow: min(e.rng.r1, Rows(t)-1),
		MinCol: e.rng.c0,
		MaxCol: min(e.rng.c1, Columns(t)-1),
	}
	if r.MinRow > r.MaxRow || r.MinCol > r.MaxCol {
		e.clearCellRange()
		return Range{}, false
	}
	if r.MaxRow != e.rng.r1 || r.MaxCol != e.rng.c1 {
		e.rng.r1, e.rng.c1 = r.MaxRow, r.MaxCol
		e.paintRange()
	}
	return r, true
}

// CellRange returns the current cell range selection.
func (e *Engine) CellRange() (Range, bool) {
	if !e.HasCellRange() {
		return Range{}, false
	}
	return e.resolveRange()
}

// HasCellRange reports whether a cell range is selected. It reconciles
// the stored range with the Selected markers on the cells: a range
// whose markers were all removed by the renderer is dropped, one whose
// markers diverged is repainted.
func (e *Engine) HasCellRange() bool {
	r, ok := e.resolveRange()
	if !ok {
		e.stripMarks(document.MarkSelected)
		return false
	}
	marked, stray := 0, false
	cells(r.Table, func(i, j int, c *document.Node) {
		in := r.Contains(i, j)
		switch {
		case in && c.HasMark(document.MarkSelected):
			marked++
		case !in && c.HasMark(document.MarkSelected):
			stray = true
		}
	})
	if marked == 0 {
		e.log.Printf("table: range markers cleared externally")
		e.clearCellRange()
		return false
	}
	if marked != r.Len() || stray {
		e.log.Printf("table: range markers diverged, repainting")
		e.paintRange()
	}
	return true
}

// SetStructuralSelection selects the whole row or column index of t.
// The cell range is dropped first.
func (e *Engine) SetStructuralSelection(a Axis, t *document.Node, index int) bool {
	if !a.valid() || !e.attachedTable(t) || count(t, a) == 0 {
		return false
	}
	e.clearCellRange()
	e.str = &structural{axis: a, table: t.ID(), index: index}
	e.paintStructural()
	return true
}

// resolveStructural returns the stored structural selection with its
// index clamped into the current table.
func (e *Engine) resolveStructural() (Structural, bool) {
	if e.str == nil {
		return Structural{}, false
	}
	t := e.lookup(e.str.table)
	if t == nil {
		e.log.Printf("table: structural table %d detached", e.str.table)
		e.clearStructural()
		return Structural{}, false
	}
	n := count(t, e.str.axis)
	if n == 0 {
		e.clearStructural()
		return Structural{}, false
	}
	if i := clamp(e.str.index, 0, n-1); i != e.str.index {
		e.str.index = i
		e.paintStructural()
	}
	return Structural{Axis: e.str.axis, Table: t, Index: e.str.index}, true
}

// StructuralSelection returns the current whole row or column
// selection.
func (e *Engine) StructuralSelection() (Structural, bool) {
	if !e.HasStructural() {
		return Structural{}, false
	}
	return e.resolveStructural()
}

// HasStructural reports whether a row or column is selected,
// reconciling with the Structural markers like HasCellRange.
func (e *Engine) HasStructural() bool {
	s, ok := e.resolveStructural()
	if !ok {
		e.stripMarks(document.MarkStructural)
		return false
	}
	want, marked, stray := 0, 0, false
	cells(s.Table, func(i, j int, c *document.Node) {
		in := s.covers(i, j)
		if in {
			want++
		}
		switch {
		case in && c.HasMark(document.MarkStructural):
			marked++
		case !in && c.HasMark(document.MarkStructural):
			stray = true
		}
	})
	if marked == 0 {
		e.log.Printf("table: structural markers cleared externally")
		e.clearStructural()
		return false
	}
	if marked != want || stray {
		e.log.Printf("table: structural markers diverged, repainting")
		e.paintStructural()
	}
	return true
}

func (s Structural) covers(row, col int) bool {
	if s.Axis == AxisRow {
		return row == s.Index
	}
	return col == s.Index
}

// anchorCell is where the caret goes when a structural selection is
// abandoned for text input: the first cell of a row, the header cell
// of a column.
func (s Structural) anchorCell() *document.Node {
	if s.Axis == AxisRow {
		return Cell(s.Table, s.Index, 0)
	}
	return Cell(s.Table, 0, s.Index)
}

// Clear drops both selection kinds and the hovered handle.
func (e *Engine) Clear() {
	e.clearSelections()
	e.clearHover()
}

func (e *Engine) clearSelections() {
	e.clearCellRange()
	e.clearStructural()
}

func (e *Engine) clearCellRange() {
	e.rng = nil
	e.stripMarks(document.MarkSelected)
}

func (e *Engine) clearStructural() {
	e.str = nil
	e.stripMarks(document.MarkStructural)
	e.hover.active = nil
}

// paintRange sets the Selected marker exactly on the cells in range.
func (e *Engine) paintRange() {
	r, ok := e.resolveRange()
	e.stripMarks(document.MarkSelected)
	if !ok {
		return
	}
	cells(r.Table, func(i, j int, c *document.Node) {
		c.SetMark(document.MarkSelected, r.Contains(i, j))
	})
}

// paintStructural sets the Structural marker on the selected row or
// column and makes its handle the active one.
func (e *Engine) paintStructural() {
	s, ok := e.resolveStructural()
	e.stripMarks(document.MarkStructural)
	if !ok {
		return
	}
	cells(s.Table, func(i, j int, c *document.Node) {
		c.SetMark(document.MarkStructural, s.covers(i, j))
	})
	e.hover.active = &handle{axis: s.Axis, table: s.Table.ID(), index: s.Index}
}

// stripMarks clears m on every cell of every table.
func (e *Engine) stripMarks(m document.Mark) {
	for _, t := range e.doc.Tables() {
		cells(t, func(_, _ int, c *document.Node) { c.SetMark(m, false) })
	}
}
