package table

import (
	"testing"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/gridtest"
)

// TestMoveTarget covers the insertion slot adjustment.
func TestMoveTarget(t *testing.T) {
	tests := []struct {
		n, from, insertAt int
		want              int
		wantOK            bool
	}{
		{3, 1, 1, 1, true},
		{3, 1, 2, 1, true},
		{3, 0, 3, 2, true},
		{3, 2, 0, 0, true},
		{3, 2, 1, 1, true},
		{3, 0, 4, 0, false},
		{3, -1, 0, 0, false},
		{3, 3, 0, 0, false},
		{0, 0, 0, 0, false},
	}
	for _, tc := range tests {
		got, ok := moveTarget(tc.n, tc.from, tc.insertAt)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("moveTarget(%d, %d, %d) = %d, %v, want %d, %v", tc.n, tc.from, tc.insertAt, got, ok, tc.want, tc.wantOK)
		}
	}
}

// TestMoveRow checks no-op moves and a move of the header to the end.
func TestMoveRow(t *testing.T) {
	f := newFixture(t, [][]string{{"H"}, {"a"}, {"b"}})
	tbl := f.table(0)

	for _, insertAt := range []int{1, 2} {
		if got, ok := f.e.MoveRow(tbl, 1, insertAt); got != 1 || !ok {
			t.Errorf("MoveRow(1, %d) = %d, %v, want 1, true", insertAt, got, ok)
		}
	}
	f.wantEvents(t)

	if got, ok := f.e.MoveRow(tbl, 0, 3); got != 2 || !ok {
		t.Errorf("MoveRow(0, 3) = %d, %v, want 2, true", got, ok)
	}
	f.wantEvents(t, mutation...)
	f.wantTexts(t, [][]string{{"a"}, {"b"}, {"H"}})
	checkGrid(t, tbl)

	if _, ok := f.e.MoveRow(tbl, 0, 7); ok {
		t.Errorf("MoveRow out of range succeeded")
	}
	f.wantEvents(t)
}

// TestMoveColumn reorders columns and keeps the header tags.
func TestMoveColumn(t *testing.T) {
	f := newFixture(t, [][]string{{"A", "B", "C"}, {"1", "2", "3"}})
	tbl := f.table(0)

	if got, ok := f.e.MoveColumn(tbl, 2, 0); got != 0 || !ok {
		t.Errorf("MoveColumn(2, 0) = %d, %v, want 0, true", got, ok)
	}
	f.wantTexts(t, [][]string{{"C", "A", "B"}, {"3", "1", "2"}})
	checkGrid(t, tbl)
	f.wantEvents(t, mutation...)
}

// TestGridInvariant runs a sequence of structural edits and checks the
// grid after each.
func TestGridInvariant(t *testing.T) {
	f := newFixture(t, [][]string{{"A", "B", "C"}, {"1", "2", "3"}, {"4", "5", "6"}})
	tbl := f.table(0)

	steps := []struct {
		name string
		fn   func()
	}{
		{"insert row at header", func() { f.e.InsertRow(tbl, 0, 0) }},
		{"move last row to top", func() { f.e.MoveRow(tbl, 3, 0) }},
		{"insert column", func() { f.e.InsertColumn(tbl, 1, 2) }},
		{"move first column to end", func() { f.e.MoveColumn(tbl, 0, 4) }},
		{"delete header row", func() { f.e.DeleteRow(tbl, 0) }},
		{"delete column", func() { f.e.DeleteColumn(tbl, 1) }},
		{"move body row to top", func() { f.e.MoveRow(tbl, 2, 0) }},
		{"insert row at end", func() { f.e.InsertRow(tbl, 99, 0) }},
	}
	for _, s := range steps {
		s.fn()
		if !tbl.Attached() {
			t.Fatalf("%s: table detached", s.name)
		}
		checkGrid(t, tbl)
	}
	if got, want := Rows(tbl), 4; got != want {
		t.Errorf("rows = %d, want %d", got, want)
	}
	if got, want := Columns(tbl), 3; got != want {
		t.Errorf("columns = %d, want %d", got, want)
	}
}

// TestInsertRow checks header redirection, placeholders and caret
// placement.
func TestInsertRow(t *testing.T) {
	f := newFixture(t, grid2x2)
	tbl := f.table(0)

	r := f.e.InsertRow(tbl, 0, 1)
	if r == nil {
		t.Fatalf("InsertRow(0) = nil")
	}
	if r.Index() != 1 {
		t.Errorf("InsertRow(0) placed the row at %d, want 1", r.Index())
	}
	f.wantTexts(t, [][]string{{"A", "B"}, {"", ""}, {"1", "2"}})
	for _, c := range r.Children() {
		if !c.Placeholder() || c.CellKind() != document.CellData {
			t.Errorf("new cell %v placeholder=%v kind=%v", c, c.Placeholder(), c.CellKind())
		}
	}
	f.wantCaret(t, r.Child(1), 0)
	f.wantEvents(t, mutation...)
}

// TestInsertColumn checks tagging and caret placement of a new column,
// including repair of a ragged row.
func TestInsertColumn(t *testing.T) {
	f := newFixture(t, [][]string{{"A", "B"}, {"1"}})
	tbl := f.table(0)

	f.e.InsertColumn(tbl, 1, 1)
	f.wantTexts(t, [][]string{{"A", "", "B"}, {"1", "", ""}})
	checkGrid(t, tbl)
	if k := gridtest.Cell(tbl, 0, 1).CellKind(); k != document.CellHeader {
		t.Errorf("new header cell kind = %v, want header", k)
	}
	f.wantCaret(t, gridtest.Cell(tbl, 1, 1), 0)
	f.wantEvents(t, mutation...)
}

// TestDeleteRow moves the caret to the nearest row at the same column.
func TestDeleteRow(t *testing.T) {
	f := newFixture(t, [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}})
	tbl := f.table(0)
	f.doc.SetCaret(gridtest.Cell(tbl, 2, 1), 1)

	f.e.DeleteRow(tbl, 2)
	f.wantTexts(t, [][]string{{"A", "B"}, {"1", "2"}})
	f.wantCaret(t, gridtest.Cell(tbl, 1, 1), 0)

	f.e.DeleteRow(tbl, 0)
	f.wantTexts(t, [][]string{{"1", "2"}})
	checkGrid(t, tbl)
}

// TestDeleteColumn moves the caret to the nearest remaining column.
func TestDeleteColumn(t *testing.T) {
	f := newFixture(t, [][]string{{"A", "B", "C"}, {"1", "2", "3"}})
	tbl := f.table(0)
	f.doc.SetCaret(gridtest.Cell(tbl, 1, 2), 0)

	f.e.DeleteColumn(tbl, 2)
	f.wantTexts(t, [][]string{{"A", "B"}, {"1", "2"}})
	f.wantCaret(t, gridtest.Cell(tbl, 1, 1), 0)
	f.wantEvents(t, mutation...)
}

// TestDeleteLastRowOrColumn checks that the table goes away rather
// than becoming degenerate.
func TestDeleteLastRowOrColumn(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		del  func(e *Engine, tbl *document.Node)
	}{
		{"only column", [][]string{{"H"}, {"a"}, {"b"}}, func(e *Engine, tbl *document.Node) { e.DeleteColumn(tbl, 0) }},
		{"only row", [][]string{{"A", "B", "C"}}, func(e *Engine, tbl *document.Node) { e.DeleteRow(tbl, 0) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.rows)
			tbl := f.table(0)
			f.e.SelectCellRange(gridtest.Cell(tbl, 0, 0), gridtest.Cell(tbl, 0, 0))

			tc.del(f.e, tbl)
			if tbl.Attached() {
				t.Fatalf("table still attached")
			}
			if _, ok := f.e.CellRange(); ok {
				t.Errorf("range survived table deletion")
			}
			blocks := f.doc.Blocks()
			if len(blocks) != 1 || blocks[0].Kind() != document.KindParagraph {
				t.Fatalf("blocks = %v, want one paragraph", blocks)
			}
			f.wantCaret(t, blocks[0], 0)
			f.wantEvents(t, mutation...)
		})
	}
}

// TestDeleteTableCaret covers where the caret lands after a table is
// deleted.
func TestDeleteTableCaret(t *testing.T) {
	tests := []struct {
		name    string
		build   func(d *document.Document) (tbl, want *document.Node, off int)
		wantLen int
	}{
		{
			name: "next paragraph",
			build: func(d *document.Document) (*document.Node, *document.Node, int) {
				tbl := gridtest.Table(d, grid2x2)
				p := d.NewParagraph("after")
				d.Append(p)
				return tbl, p, 0
			},
			wantLen: 1,
		},
		{
			name: "previous paragraph",
			build: func(d *document.Document) (*document.Node, *document.Node, int) {
				p := d.NewParagraph("abc")
				d.Append(p)
				return gridtest.Table(d, grid2x2), p, 3
			},
			wantLen: 1,
		},
		{
			name: "next table",
			build: func(d *document.Document) (*document.Node, *document.Node, int) {
				tbl := gridtest.Table(d, grid2x2)
				next := gridtest.Table(d, grid2x2)
				return tbl, next.Edge(document.SideLeft), 0
			},
			wantLen: 1,
		},
		{
			name: "previous table",
			build: func(d *document.Document) (*document.Node, *document.Node, int) {
				prev := gridtest.Table(d, grid2x2)
				return gridtest.Table(d, grid2x2), prev.Edge(document.SideRight), 1
			},
			wantLen: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tbl, want *document.Node
			var off int
			f := newDocFixture(t, func(d *document.Document) { tbl, want, off = tc.build(d) }, nil)

			f.e.DeleteTable(tbl)
			if tbl.Attached() {
				t.Fatalf("table still attached")
			}
			if got := len(f.doc.Blocks()); got != tc.wantLen {
				t.Errorf("blocks = %d, want %d", got, tc.wantLen)
			}
			f.wantCaret(t, want, off)
			f.wantEvents(t, mutation...)
		})
	}
}

// TestDetachedTableNoop checks that commands on a removed table do
// nothing and do not checkpoint.
func TestDetachedTableNoop(t *testing.T) {
	f := newFixture(t, grid2x2)
	tbl := f.table(0)
	f.doc.Remove(tbl)
	f.host.Reset()

	if r := f.e.InsertRow(tbl, 1, 0); r != nil {
		t.Errorf("InsertRow on a detached table returned %v", r)
	}
	f.e.InsertColumn(tbl, 1, 0)
	f.e.DeleteRow(tbl, 0)
	f.e.DeleteColumn(tbl, 0)
	f.e.DeleteTable(tbl)
	if _, ok := f.e.MoveRow(tbl, 0, 2); ok {
		t.Errorf("MoveRow on a detached table succeeded")
	}
	f.wantEvents(t)
}

// TestInsertTable inserts after the caret's block and enters the new
// table.
func TestInsertTable(t *testing.T) {
	var first *document.Node
	f := newDocFixture(t, func(d *document.Document) {
		first = d.NewParagraph("one")
		d.Append(first)
		d.Append(d.NewParagraph("two"))
	}, nil)
	f.doc.SetCaret(first, 1)

	tbl := f.e.InsertTable(0, 3)
	if got := tbl.Index(); got != 1 {
		t.Errorf("table index = %d, want 1", got)
	}
	if Rows(tbl) != 1 || Columns(tbl) != 3 {
		t.Errorf("table is %dx%d, want 1x3", Rows(tbl), Columns(tbl))
	}
	checkGrid(t, tbl)
	f.wantCaret(t, FirstCell(tbl), 0)
	f.wantEvents(t, mutation...)
}
