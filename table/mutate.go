package table

import (
	"github.com/rjkroege/mdgrid/document"
)

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func kindFor(s document.Section) document.CellKind {
	if s == document.SectionHeader {
		return document.CellHeader
	}
	return document.CellData
}

// normalize restores the grid invariants of t: row 0 is the only header
// row, every cell's kind matches its row and ragged rows are padded out
// to the column count.
func (e *Engine) normalize(t *document.Node) {
	ncols := Columns(t)
	for i, r := range t.Children() {
		s := document.SectionBody
		if i == 0 {
			s = document.SectionHeader
		}
		e.doc.SetSection(r, s)
		for r.NumChildren() < ncols {
			e.doc.Insert(r, e.doc.NewCell(kindFor(s)), r.NumChildren())
		}
		for _, c := range r.Children() {
			e.doc.SetCellKind(c, kindFor(s))
		}
	}
}

// caretCell returns the row and column of the caret if it is in a cell
// of t.
func (e *Engine) caretCell(t *document.Node) (row, col int, ok bool) {
	p, ok := e.doc.Caret()
	if !ok {
		return 0, 0, false
	}
	c := CellOf(p.Node)
	if c == nil || TableOf(c) != t {
		return 0, 0, false
	}
	return Position(c)
}

// InsertTable inserts a rows×cols table after the caret's block, or at
// the end of the document, and places the caret in its first cell.
func (e *Engine) InsertTable(rows, cols int) *document.Node {
	defer e.flushFocus()
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	t := e.doc.NewTable(rows, cols)
	e.mutate(func() {
		var after *document.Node
		if p, ok := e.doc.Caret(); ok {
			after = e.doc.Block(p.Node)
		}
		if after != nil {
			e.doc.InsertAfter(after, t)
		} else {
			e.doc.Append(t)
		}
		e.clearSelections()
		e.doc.SetCaret(FirstCell(t), 0)
	})
	return t
}

// InsertRow inserts an empty body row into t at index i and places the
// caret at the start of its cell in column preferCol. An index that
// targets the header is redirected to the top of the body.
func (e *Engine) InsertRow(t *document.Node, i, preferCol int) *document.Node {
	defer e.flushFocus()
	if !e.attachedTable(t) {
		return nil
	}
	var r *document.Node
	e.mutate(func() { r = e.insertRow(t, i, preferCol) })
	return r
}

func (e *Engine) insertRow(t *document.Node, i, preferCol int) *document.Node {
	ncols := Columns(t)
	if ncols == 0 {
		ncols = 1
	}
	lo := 1
	if Rows(t) == 0 {
		lo = 0
	}
	i = clamp(i, lo, Rows(t))
	r := e.doc.NewRow(document.SectionBody, ncols)
	e.doc.Insert(t, r, i)
	e.normalize(t)
	e.doc.SetCaret(r.Child(clamp(preferCol, 0, ncols-1)), 0)
	return r
}

// InsertColumn inserts an empty column into t at index i and places the
// caret in its cell on row preferRow.
func (e *Engine) InsertColumn(t *document.Node, i, preferRow int) {
	defer e.flushFocus()
	if !e.attachedTable(t) || Rows(t) == 0 {
		return
	}
	e.mutate(func() { e.insertColumn(t, i, preferRow) })
}

func (e *Engine) insertColumn(t *document.Node, i, preferRow int) {
	e.normalize(t)
	i = clamp(i, 0, Columns(t))
	for _, r := range t.Children() {
		e.doc.Insert(r, e.doc.NewCell(kindFor(r.Section())), i)
	}
	e.normalize(t)
	e.doc.SetCaret(Cell(t, clamp(preferRow, 0, Rows(t)-1), i), 0)
}

// DeleteRow removes row i of t. Removing the last row deletes the table.
func (e *Engine) DeleteRow(t *document.Node, i int) {
	defer e.flushFocus()
	if !e.attachedTable(t) {
		return
	}
	e.mutate(func() { e.deleteRow(t, i) })
}

func (e *Engine) deleteRow(t *document.Node, i int) {
	rows := Rows(t)
	if rows <= 1 {
		e.deleteTable(t)
		return
	}
	i = clamp(i, 0, rows-1)
	_, col, _ := e.caretCell(t)
	e.doc.Remove(t.Child(i))
	e.normalize(t)
	row := clamp(i, 0, Rows(t)-1)
	e.doc.SetCaret(Cell(t, row, clamp(col, 0, t.Child(row).NumChildren()-1)), 0)
}

// DeleteColumn removes column i of t. Removing the last column deletes
// the table.
func (e *Engine) DeleteColumn(t *document.Node, i int) {
	defer e.flushFocus()
	if !e.attachedTable(t) {
		return
	}
	e.mutate(func() { e.deleteColumn(t, i) })
}

func (e *Engine) deleteColumn(t *document.Node, i int) {
	ncols := Columns(t)
	if ncols <= 1 || Rows(t) == 0 {
		e.deleteTable(t)
		return
	}
	i = clamp(i, 0, ncols-1)
	row, _, _ := e.caretCell(t)
	for _, r := range t.Children() {
		if c := r.Child(i); c != nil {
			e.doc.Remove(c)
		}
	}
	e.normalize(t)
	e.doc.SetCaret(Cell(t, row, clamp(i, 0, Columns(t)-1)), 0)
}

// MoveRow moves row from of t so that it lands in front of insertion
// slot insertAt, counted before the move. It returns the row's final
// index, which is from when the move changes nothing. ok is false when
// either index is out of range.
func (e *Engine) MoveRow(t *document.Node, from, insertAt int) (int, bool) {
	return e.moveCommand(AxisRow, t, from, insertAt)
}

// MoveColumn is MoveRow for columns.
func (e *Engine) MoveColumn(t *document.Node, from, insertAt int) (int, bool) {
	return e.moveCommand(AxisColumn, t, from, insertAt)
}

func (e *Engine) moveCommand(a Axis, t *document.Node, from, insertAt int) (int, bool) {
	defer e.flushFocus()
	if !e.attachedTable(t) {
		return 0, false
	}
	target, ok := moveTarget(count(t, a), from, insertAt)
	if !ok || target == from {
		return target, ok
	}
	e.mutate(func() { e.move(a, t, from, target) })
	return target, true
}

// moveTarget resolves an insertion slot into the index the moved item
// ends up at once it has been taken out of the sequence.
func moveTarget(n, from, insertAt int) (int, bool) {
	if from < 0 || from >= n || insertAt < 0 || insertAt > n {
		return 0, false
	}
	target := insertAt
	if insertAt > from {
		target--
	}
	return target, true
}

// move reorders the row or column from of t to index target.
func (e *Engine) move(a Axis, t *document.Node, from, target int) {
	if a == AxisRow {
		e.doc.Move(t.Child(from), target)
	} else {
		e.normalize(t)
		for _, r := range t.Children() {
			e.doc.Move(r.Child(from), target)
		}
	}
	e.normalize(t)
	e.clearHover()
}

// DeleteTable removes t and moves the caret next to where it was.
func (e *Engine) DeleteTable(t *document.Node) {
	defer e.flushFocus()
	if !e.attachedTable(t) {
		return
	}
	e.mutate(func() { e.deleteTable(t) })
}

// deleteTable removes t. The caret goes to the start of the next block,
// else the end of the previous one, else into a new empty paragraph.
func (e *Engine) deleteTable(t *document.Node) {
	next := e.doc.NextBlock(t)
	prev := e.doc.PrevBlock(t)
	e.forget(t)
	e.doc.Remove(t)
	switch {
	case next != nil:
		e.enterStart(next)
	case prev != nil:
		e.enterEnd(prev)
	default:
		p := e.doc.NewParagraph("")
		e.doc.Append(p)
		e.doc.SetCaret(p, 0)
	}
}

// enterStart places the caret at the start of block b. A table is
// entered through its left boundary marker.
func (e *Engine) enterStart(b *document.Node) {
	if b.Kind() == document.KindTable {
		e.doc.SetCaret(b.Edge(document.SideLeft), 0)
		return
	}
	e.doc.SetCaret(b, 0)
}

// enterEnd places the caret at the end of block b. A table is entered
// through its right boundary marker.
func (e *Engine) enterEnd(b *document.Node) {
	if b.Kind() == document.KindTable {
		e.doc.SetCaret(b.Edge(document.SideRight), 1)
		return
	}
	e.doc.SetCaret(b, b.Len())
}

// forget drops every piece of engine state that refers to t.
func (e *Engine) forget(t *document.Node) {
	id := t.ID()
	if e.rng != nil && e.rng.table == id {
		e.clearCellRange()
	}
	if e.str != nil && e.str.table == id {
		e.clearStructural()
	}
	if e.drag != nil && e.drag.table == id {
		e.drag = nil
	}
	if s := e.selecting; s != nil {
		if a := e.lookup(s.anchor); a == nil || TableOf(a) == t {
			e.selecting = nil
		}
	}
	if e.hover.table == id {
		e.clearHover()
	}
}

// clearCells empties the text of the cells in the inclusive rectangle.
func (e *Engine) clearCells(t *document.Node, r0, r1, c0, c1 int) {
	for i := r0; i <= r1; i++ {
		for j := c0; j <= c1; j++ {
			if c := Cell(t, i, j); c != nil {
				e.doc.SetText(c, "")
			}
		}
	}
}
