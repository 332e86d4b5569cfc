package layout

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/gridtest"
)

type span struct{ Start, End int }

func spans(lines []Line) []span {
	var s []span
	for _, ln := range lines {
		s = append(s, span{ln.Start, ln.End})
	}
	return s
}

func newTestLayout(d *document.Document, opts ...Option) *Layout {
	base := []Option{
		WithWidth(400),
		WithPadding(2),
		WithBorder(1),
		WithGutter(12),
		WithSpacing(8),
		WithColumnWidth(40, 100),
	}
	return New(d, gridtest.NewFont(10, 10), append(base, opts...)...)
}

// TestWrapParagraph tests that words move to the next line as a whole
// and that trailing spaces stay on the line they end.
func TestWrapParagraph(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []span
	}{
		{"fits", "hello", 100, []span{{0, 5}}},
		{"words", "hello world foo", 60, []span{{0, 6}, {6, 12}, {12, 15}}},
		{"long word", "abcdefghij", 40, []span{{0, 4}, {4, 8}, {8, 10}}},
		{"hard break", "ab\ncd", 100, []span{{0, 3}, {3, 5}}},
		{"trailing newline", "ab\n", 100, []span{{0, 3}, {3, 3}}},
		{"empty", "", 100, []span{{0, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := document.New()
			p := d.NewParagraph(tc.text)
			d.Append(p)
			l := newTestLayout(d, WithWidth(tc.width))

			if diff := cmp.Diff(tc.want, spans(l.Lines(p))); diff != "" {
				t.Errorf("Lines(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
			r, _ := l.Bounds(p)
			if got, want := r.Dy(), 10*len(tc.want); got != want {
				t.Errorf("paragraph height = %d, want %d", got, want)
			}
		})
	}
}

// TestTableGeometry checks cell, table and boundary marker rectangles
// of a small grid.
func TestTableGeometry(t *testing.T) {
	d := document.New()
	tbl := gridtest.Table(d, [][]string{{"A", "B"}, {"1", "2"}})
	l := newTestLayout(d)

	tests := []struct {
		name string
		n    *document.Node
		want image.Rectangle
	}{
		{"table", tbl, image.Rect(12, 12, 95, 43)},
		{"cell 0,0", gridtest.Cell(tbl, 0, 0), image.Rect(13, 13, 53, 27)},
		{"cell 0,1", gridtest.Cell(tbl, 0, 1), image.Rect(54, 13, 94, 27)},
		{"cell 1,1", gridtest.Cell(tbl, 1, 1), image.Rect(54, 28, 94, 42)},
		{"row 1", tbl.Child(1), image.Rect(13, 28, 94, 42)},
		{"left edge", tbl.Edge(document.SideLeft), image.Rect(12, 12, 12, 22)},
		{"right edge", tbl.Edge(document.SideRight), image.Rect(95, 33, 95, 43)},
	}
	for _, tc := range tests {
		got, ok := l.Bounds(tc.n)
		if !ok {
			t.Errorf("Bounds(%s) not found", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("Bounds(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
	if got, want := l.Height(), 43; got != want {
		t.Errorf("Height() = %d, want %d", got, want)
	}
}

// TestCellWrapGeometry covers caret rectangles and caret location in a
// cell whose text wraps onto two visual lines.
func TestCellWrapGeometry(t *testing.T) {
	d := document.New()
	tbl := gridtest.Table(d, [][]string{{"aaaa bbbb"}})
	cell := gridtest.Cell(tbl, 0, 0)
	l := newTestLayout(d, WithColumnWidth(40, 64))

	lines := l.Lines(cell)
	if diff := cmp.Diff([]span{{0, 5}, {5, 9}}, spans(lines)); diff != "" {
		t.Fatalf("Lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := lines[1].Rect, image.Rect(15, 25, 75, 35); got != want {
		t.Errorf("line 1 rect = %v, want %v", got, want)
	}

	caretTests := []struct {
		off  int
		want image.Rectangle
	}{
		{0, image.Rect(15, 15, 16, 25)},
		{4, image.Rect(55, 15, 56, 25)},
		{5, image.Rect(15, 25, 16, 35)}, // wrap boundary renders on the next line
		{9, image.Rect(55, 25, 56, 35)},
	}
	for _, tc := range caretTests {
		got, ok := l.CaretRect(document.Point{Node: cell, Offset: tc.off})
		if !ok || got != tc.want {
			t.Errorf("CaretRect(%d) = %v, %v, want %v", tc.off, got, ok, tc.want)
		}
	}

	locateTests := []struct {
		line   int
		x      int
		want   int
		wantOK bool
	}{
		{0, 15, 0, true},
		{0, 75, 5, true},
		{0, 76, 0, false},
		{1, 38, 7, true},
		{1, 41, 8, true},
		{1, 10, 0, false},
	}
	for _, tc := range locateTests {
		p, ok := l.LocateCaretNear(lines[tc.line], tc.x)
		if ok != tc.wantOK || (ok && (p.Offset != tc.want || p.Node != cell)) {
			t.Errorf("LocateCaretNear(line %d, %d) = %v, %v, want %d, %v", tc.line, tc.x, p, ok, tc.want, tc.wantOK)
		}
	}

	p, ok := l.PointAt(image.Pt(38, 30))
	if !ok || p.Node != cell || p.Offset != 7 {
		t.Errorf("PointAt(38,30) = %v, %v, want cell offset 7", p, ok)
	}
	if _, ok := l.PointAt(image.Pt(300, 300)); ok {
		t.Errorf("PointAt outside the document found a position")
	}
}

// TestScroll verifies that queries are answered in viewport coordinates.
func TestScroll(t *testing.T) {
	d := document.New()
	tbl := gridtest.Table(d, [][]string{{"A", "B"}, {"1", "2"}})
	cell := gridtest.Cell(tbl, 1, 0)
	l := newTestLayout(d)

	before, _ := l.Bounds(cell)
	l.SetScroll(image.Pt(0, 5))
	after, _ := l.Bounds(cell)
	if got, want := after, before.Sub(image.Pt(0, 5)); got != want {
		t.Errorf("scrolled Bounds = %v, want %v", got, want)
	}
	lines := l.Lines(cell)
	p, ok := l.LocateCaretNear(lines[0], lines[0].Rect.Max.X)
	if !ok || p.Offset != 1 {
		t.Errorf("LocateCaretNear after scroll = %v, %v, want offset 1", p, ok)
	}

	l.SetScroll(image.Pt(-3, 1000))
	if got, want := l.Scroll(), image.Pt(0, l.Height()); got != want {
		t.Errorf("Scroll() = %v, want %v", got, want)
	}
}

// TestLazyReflow checks that a content change is visible to the next
// query without an explicit reflow.
func TestLazyReflow(t *testing.T) {
	d := document.New()
	tbl := gridtest.Table(d, [][]string{{"A", "B"}, {"1", "2"}})
	l := newTestLayout(d)

	r, _ := l.Bounds(gridtest.Cell(tbl, 0, 1))
	if r.Min.X != 54 {
		t.Fatalf("cell 0,1 starts at %d, want 54", r.Min.X)
	}
	d.SetText(gridtest.Cell(tbl, 0, 0), "abcdefgh")
	r, _ = l.Bounds(gridtest.Cell(tbl, 0, 1))
	if r.Min.X != 98 {
		t.Errorf("after widening column 0, cell 0,1 starts at %d, want 98", r.Min.X)
	}

	d.Remove(tbl)
	if _, ok := l.Bounds(tbl); ok {
		t.Errorf("Bounds of a removed table still answered")
	}
}

// TestBlockStacking checks the vertical placement of mixed blocks.
func TestBlockStacking(t *testing.T) {
	d := document.New()
	p := d.NewParagraph("top")
	d.Append(p)
	tbl := gridtest.Table(d, [][]string{{"A"}})
	li := d.NewListItem("item")
	d.Append(li)
	l := newTestLayout(d)

	pr, _ := l.Bounds(p)
	tr, _ := l.Bounds(tbl)
	lr, _ := l.Bounds(li)
	if pr != image.Rect(0, 0, 400, 10) {
		t.Errorf("paragraph = %v", pr)
	}
	// 10 high paragraph, 8 spacing, 12 gutter.
	if tr.Min.Y != 30 {
		t.Errorf("table top = %d, want 30", tr.Min.Y)
	}
	if lr.Min.Y != tr.Max.Y+8 {
		t.Errorf("list item top = %d, want %d", lr.Min.Y, tr.Max.Y+8)
	}
	if lines := l.Lines(li); len(lines) != 1 || lines[0].Rect.Min.X != 20 {
		t.Errorf("list item lines = %v, want one line indented 20", lines)
	}
}

// TestLocateCaretNarrowFont checks that with one unit per rune the x of
// every caret position maps back to that position.
func TestLocateCaretNarrowFont(t *testing.T) {
	d := document.New()
	p := d.NewParagraph("hello")
	d.Append(p)
	l := New(d, gridtest.NewFont(1, 1), WithWidth(40), WithGutter(2), WithBorder(1), WithSpacing(1))

	lines := l.Lines(p)
	if len(lines) != 1 {
		t.Fatalf("Lines(%q) = %d lines, want 1", p.Text(), len(lines))
	}
	for off := 0; off <= p.Len(); off++ {
		cr, ok := l.CaretRect(document.Point{Node: p, Offset: off})
		if !ok {
			t.Fatalf("CaretRect(%d) not found", off)
		}
		got, ok := l.LocateCaretNear(lines[0], cr.Min.X)
		if !ok || got.Offset != off {
			t.Errorf("LocateCaretNear(%d) = %v, %v, want offset %d", cr.Min.X, got, ok, off)
		}
		got, ok = l.PointAt(cr.Min)
		if !ok || got.Node != p || got.Offset != off {
			t.Errorf("PointAt(%v) = %v, %v, want offset %d", cr.Min, got, ok, off)
		}
	}
}
