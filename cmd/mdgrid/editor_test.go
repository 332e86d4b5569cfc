package main

import (
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
	"github.com/rjkroege/mdgrid/gridtest"
	"github.com/rjkroege/mdgrid/table"
)

func newTestEditor(t *testing.T) (*editor, *gridtest.Clipboard) {
	t.Helper()
	clip := &gridtest.Clipboard{}
	ed := newEditor(defaultConfig(), clip, log.New(io.Discard, "", 0), 40, 20)
	t.Cleanup(ed.eng.Close)
	return ed, clip
}

func (ed *editor) typeText(s string) {
	for _, r := range s {
		ed.key(table.Key{Rune: r})
	}
}

func (ed *editor) press(r rune, mod table.Mod) {
	ed.key(table.Key{Rune: r, Mod: mod})
}

// texts returns the text of each block, with tables as rows of cells
// joined by "|".
func texts(d *document.Document) []string {
	var out []string
	for _, b := range d.Blocks() {
		if b.Kind() != document.KindTable {
			out = append(out, b.Text())
			continue
		}
		for _, row := range gridtest.Texts(b) {
			out = append(out, strings.Join(row, "|"))
		}
	}
	return out
}

func (ed *editor) wantCaret(t *testing.T, n *document.Node, off int) {
	t.Helper()
	p, ok := ed.doc.Caret()
	if !ok || p.Node != n || p.Offset != off {
		t.Errorf("caret = %v, %v; expected %v@%d", p.Node, p.Offset, n, off)
	}
}

func TestTypingAndUndo(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.typeText("hi")
	if diff := cmp.Diff([]string{"hi"}, texts(ed.doc)); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, ed.doc.Blocks()[0], 2)
	if !ed.hist.Dirty() {
		t.Errorf("typing did not dirty the history")
	}

	ed.press('z', table.ModCtrl)
	if diff := cmp.Diff([]string{"h"}, texts(ed.doc)); diff != "" {
		t.Errorf("after undo mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, ed.doc.Blocks()[0], 1)

	ed.press('y', table.ModCtrl)
	if diff := cmp.Diff([]string{"hi"}, texts(ed.doc)); diff != "" {
		t.Errorf("after redo mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitAndJoin(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.typeText("ab")
	ed.press(draw.KeyLeft, 0)
	ed.press('\n', 0)
	if diff := cmp.Diff([]string{"a", "b"}, texts(ed.doc)); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, ed.doc.Blocks()[1], 0)

	ed.press(draw.KeyBackspace, 0)
	if diff := cmp.Diff([]string{"ab"}, texts(ed.doc)); diff != "" {
		t.Errorf("join mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, ed.doc.Blocks()[0], 1)
}

func TestTableCommands(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.press('t', table.ModCtrl)
	tbl := ed.doc.Tables()[0]
	ed.wantCaret(t, gridtest.Cell(tbl, 0, 0), 0)

	ed.typeText("x")
	ed.press(draw.KeyTab, 0)
	ed.wantCaret(t, gridtest.Cell(tbl, 0, 1), 0)
	ed.typeText("y")

	ed.press('r', table.ModCtrl)
	if got := table.Rows(tbl); got != 4 {
		t.Errorf("rows after insert = %d, expected 4", got)
	}
	ed.wantCaret(t, gridtest.Cell(tbl, 1, 1), 0)

	ed.press('l', table.ModCtrl)
	if got := table.Columns(tbl); got != 4 {
		t.Errorf("columns after insert = %d, expected 4", got)
	}
	want := [][]string{{"x", "y", "", ""}, {"", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}}
	if diff := cmp.Diff(want, gridtest.Texts(tbl)); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	ed.press('d', table.ModCtrl)
	if n := len(ed.doc.Tables()); n != 0 {
		t.Errorf("%d tables after delete", n)
	}
}

func TestNoTableCommand(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.press('r', table.ModCtrl)
	if ed.message != "not in a table" {
		t.Errorf("message = %q", ed.message)
	}
}

func TestBackspaceIntoTable(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.doc.Reset()
	tbl := gridtest.Table(ed.doc, [][]string{{"a"}})
	p := ed.doc.NewParagraph("p")
	ed.doc.Append(p)
	ed.doc.SetCaret(p, 0)

	ed.press(draw.KeyBackspace, 0)
	ed.wantCaret(t, tbl.Edge(document.SideRight), 1)
	ed.press(draw.KeyBackspace, 0)
	if diff := cmp.Diff([]string{"p"}, texts(ed.doc)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, p, 0)
}

func TestCellsNeverJoin(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.doc.Reset()
	tbl := gridtest.Table(ed.doc, [][]string{{"a", "b"}})
	ed.doc.SetCaret(gridtest.Cell(tbl, 0, 1), 0)
	ed.press(draw.KeyBackspace, 0)
	if diff := cmp.Diff([]string{"a|b"}, texts(ed.doc)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterOnEdge(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.doc.Reset()
	tbl := gridtest.Table(ed.doc, [][]string{{"a"}})
	ed.doc.SetCaret(tbl.Edge(document.SideLeft), 0)
	ed.press('\n', 0)
	ed.doc.SetCaret(tbl.Edge(document.SideRight), 1)
	ed.press('\n', 0)
	kinds := []document.Kind{}
	for _, b := range ed.doc.Blocks() {
		kinds = append(kinds, b.Kind())
	}
	want := []document.Kind{document.KindParagraph, document.KindTable, document.KindParagraph}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
	ed.wantCaret(t, ed.doc.Blocks()[2], 0)
}

// The table sits at y 2..7: handle gutter, rules and a single cell row
// at y 5 spanning x 3..6.
func verticalDocument(ed *editor) (top, cell, bottom *document.Node) {
	ed.doc.Reset()
	top = ed.doc.NewParagraph("top")
	ed.doc.Append(top)
	tbl := gridtest.Table(ed.doc, [][]string{{"x"}})
	bottom = ed.doc.NewParagraph("bottom")
	ed.doc.Append(bottom)
	return top, gridtest.Cell(tbl, 0, 0), bottom
}

func TestMoveCaretByLine(t *testing.T) {
	ed, _ := newTestEditor(t)
	top, cell, bottom := verticalDocument(ed)

	ed.doc.SetCaret(top, 3)
	ed.press(draw.KeyDown, 0)
	ed.wantCaret(t, cell, 0)

	ed.doc.SetCaret(bottom, 3)
	ed.press(draw.KeyUp, 0)
	ed.wantCaret(t, cell, 0)

	// Outside the table's columns the caret passes it.
	ed.doc.SetCaret(top, 1)
	ed.press(draw.KeyDown, 0)
	ed.wantCaret(t, bottom, 1)
}

func TestHorizontalStops(t *testing.T) {
	ed, _ := newTestEditor(t)
	top, cell, _ := verticalDocument(ed)
	tbl := table.TableOf(cell)

	ed.doc.SetCaret(top, 3)
	ed.press(draw.KeyRight, 0)
	ed.wantCaret(t, tbl.Edge(document.SideLeft), 0)
	ed.press(draw.KeyRight, 0)
	ed.wantCaret(t, cell, 0)
	ed.press(draw.KeyLeft, 0)
	ed.wantCaret(t, tbl.Edge(document.SideLeft), 0)
	ed.press(draw.KeyLeft, 0)
	ed.wantCaret(t, top, 3)
}

func TestShiftExtends(t *testing.T) {
	ed, clip := newTestEditor(t)
	ed.typeText("hello")
	ed.press(draw.KeyLeft, table.ModShift)
	ed.press(draw.KeyLeft, table.ModShift)
	if s, ok := ed.selectedText(); !ok || s != "lo" {
		t.Fatalf("selected %q, %v; expected %q", s, ok, "lo")
	}
	ed.press('x', table.ModCtrl)
	if got, _ := clip.ReadText(); got != "lo" {
		t.Errorf("clipboard = %q, expected %q", got, "lo")
	}
	if diff := cmp.Diff([]string{"hel"}, texts(ed.doc)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	ed.press('v', table.ModCtrl)
	ed.press('v', table.ModCtrl)
	if diff := cmp.Diff([]string{"hellolo"}, texts(ed.doc)); diff != "" {
		t.Errorf("texts after paste mismatch (-want +got):\n%s", diff)
	}
}

func TestPasteIntoCell(t *testing.T) {
	ed, clip := newTestEditor(t)
	ed.doc.Reset()
	tbl := gridtest.Table(ed.doc, [][]string{{"a", "b"}})
	ed.doc.SetCaret(gridtest.Cell(tbl, 0, 0), 1)
	clip.WriteText("1\t2")
	ed.press('v', table.ModCtrl)
	if diff := cmp.Diff([][]string{{"1", "2"}}, gridtest.Texts(tbl)); diff != "" {
		t.Errorf("matrix paste mismatch (-want +got):\n%s", diff)
	}

	ed.doc.SetCaret(gridtest.Cell(tbl, 0, 0), 1)
	clip.WriteText("z")
	ed.press('v', table.ModCtrl)
	if diff := cmp.Diff([][]string{{"1z", "2"}}, gridtest.Texts(tbl)); diff != "" {
		t.Errorf("native paste mismatch (-want +got):\n%s", diff)
	}
}

func TestCellText(t *testing.T) {
	d := document.New()
	tbl := gridtest.Table(d, [][]string{{""}})
	if got := cellText(gridtest.Cell(tbl, 0, 0), "a\tb\nc"); got != "a b c" {
		t.Errorf("cellText = %q", got)
	}
	if got := cellText(d.NewParagraph(""), "a\nb"); got != "a\nb" {
		t.Errorf("cellText on a paragraph = %q", got)
	}
}

func TestPointerSelection(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.typeText("hello")
	down := func(x, y, buttons int) table.Pointer {
		return table.Pointer{Mouse: draw.Mouse{Point: image.Pt(x, y), Buttons: buttons}}
	}
	ed.pointer(down(1, 0, draw.Button1), 0)
	ed.pointer(down(4, 0, draw.Button1), draw.Button1)
	ed.pointer(down(4, 0, 0), draw.Button1)
	if s, ok := ed.selectedText(); !ok || s != "ell" {
		t.Errorf("selected %q, %v; expected %q", s, ok, "ell")
	}
	if ed.selecting {
		t.Errorf("still selecting after release")
	}
}

func TestOpenSave(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	in := "# T\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	if err := os.WriteFile(file, []byte(in), 0644); err != nil {
		t.Fatal(err)
	}

	ed, _ := newTestEditor(t)
	if err := ed.open(file); err != nil {
		t.Fatalf("open: %v", err)
	}
	if diff := cmp.Diff([]string{"T", "a|b", "1|2"}, texts(ed.doc)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	ed.press('s', table.ModCtrl)
	if ed.hist.Dirty() {
		t.Errorf("dirty after save")
	}
	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := "# T\n\n| a   | b   |\n| --- | --- |\n| 1   | 2   |\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("saved file mismatch (-want +got):\n%s", diff)
	}

	fresh, _ := newTestEditor(t)
	if err := fresh.open(filepath.Join(dir, "new.md")); err != nil {
		t.Fatalf("open of a new file: %v", err)
	}
	if !strings.Contains(fresh.message, "new file") {
		t.Errorf("message = %q", fresh.message)
	}
}

func TestSession(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")
	ed, _ := newTestEditor(t)
	ed.typeText("kept")
	ed.press('t', table.ModCtrl)
	ed.typeText("c")
	if err := ed.saveSession(file); err != nil {
		t.Fatalf("saveSession: %v", err)
	}

	next, _ := newTestEditor(t)
	if err := next.loadSession(file); err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if diff := cmp.Diff(texts(ed.doc), texts(next.doc)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	p, ok := next.doc.Caret()
	if !ok || p.Node.Text() != "c" || p.Offset != 1 {
		t.Errorf("restored caret = %v, %v", p, ok)
	}
}
