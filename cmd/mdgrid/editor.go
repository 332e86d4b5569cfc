package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/dumpfile"
	"github.com/rjkroege/mdgrid/layout"
	"github.com/rjkroege/mdgrid/markdown"
	"github.com/rjkroege/mdgrid/table"
	"github.com/rjkroege/mdgrid/undo"
)

// editor is the terminal host of one document. It owns the document,
// its layout and undo history and hands table interaction to the
// engine. It knows nothing about the screen; terminal drives it.
type editor struct {
	doc  *document.Document
	lay  *layout.Layout
	eng  *table.Engine
	bus  table.Bus
	hist *undo.History
	clip table.Clipboard
	log  *log.Logger
	cfg  config

	file    string
	height  int // rows available to the document
	message string
	quit    bool

	// Native text selection by pointer.
	selecting bool
	anchor    document.Point
}

func newEditor(cfg config, clip table.Clipboard, logger *log.Logger, width, height int) *editor {
	ed := &editor{
		doc:    document.New(),
		hist:   undo.New(cfg.UndoLimit),
		clip:   clip,
		log:    logger,
		cfg:    cfg,
		height: height,
	}
	ed.lay = layout.New(ed.doc, cellFont{}, cfg.layoutOptions(width)...)
	ed.eng = table.New(ed.doc, ed.lay, ed,
		table.WithConfig(cfg.engineConfig()),
		table.WithLogger(logger),
		table.WithClipboard(clip),
		table.WithSource(&ed.bus),
	)
	ed.ensureBlock()
	return ed
}

// SaveState checkpoints the document for undo.
func (ed *editor) SaveState() {
	ed.hist.Checkpoint(dumpfile.Snapshot(ed.doc))
}

// Changed is called after every edit.
func (ed *editor) Changed() {
	ed.lay.Invalidate()
}

// Focus brings the caret back into view after a structural command.
func (ed *editor) Focus() {
	ed.scrollToCaret()
}

// MoveCaretByLine moves the caret to the text position straight above
// or below it, skipping any gap between blocks.
func (ed *editor) MoveCaretByLine(down bool) bool {
	p, ok := ed.doc.Caret()
	if !ok {
		return false
	}
	cr, ok := ed.lay.CaretRect(p)
	if !ok {
		return false
	}
	dy, y := -1, cr.Min.Y-1
	if down {
		dy, y = 1, cr.Max.Y
	}
	for i := 0; i <= ed.lay.Height(); i++ {
		if q, ok := ed.lay.PointAt(image.Pt(cr.Min.X, y)); ok {
			ed.doc.SetCaret(q.Node, q.Offset)
			return true
		}
		y += dy
	}
	return false
}

// edit runs a host edit with the same bracketing the engine uses.
func (ed *editor) edit(fn func()) {
	ed.SaveState()
	fn()
	ed.Changed()
}

// ensureBlock gives an empty document a paragraph to type into and
// gives a document without a caret one.
func (ed *editor) ensureBlock() {
	if len(ed.doc.Blocks()) == 0 {
		ed.doc.Append(ed.doc.NewParagraph(""))
	}
	if _, ok := ed.doc.Caret(); !ok {
		first := ed.stops()[0]
		ed.doc.SetCaret(first, 0)
	}
}

// open loads a Markdown file. A missing file starts a new document
// that saves to that name.
func (ed *editor) open(file string) error {
	ed.file = file
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ed.message = fmt.Sprintf("%s: new file", file)
		return nil
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if err := markdown.Parse(ed.doc, string(data)); err != nil && !errors.Is(err, markdown.ErrEmpty) {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}
	ed.eng.Clear()
	ed.hist.Clear()
	ed.ensureBlock()
	return nil
}

// save writes the document back as Markdown.
func (ed *editor) save() {
	if ed.file == "" {
		ed.message = "no file name"
		return
	}
	var buf bytes.Buffer
	if err := markdown.Format(&buf, ed.doc); err != nil {
		ed.fail(err)
		return
	}
	if err := os.WriteFile(ed.file, buf.Bytes(), 0644); err != nil {
		ed.fail(err)
		return
	}
	ed.hist.MarkSaved()
	ed.message = fmt.Sprintf("%s: wrote %d bytes", ed.file, buf.Len())
}

// loadSession restores a session dump written by saveSession.
func (ed *editor) loadSession(file string) error {
	c, err := dumpfile.Load(file)
	if err != nil {
		return err
	}
	if err := c.Restore(ed.doc); err != nil {
		return fmt.Errorf("failed to restore %s: %w", file, err)
	}
	ed.eng.Clear()
	ed.hist.Clear()
	ed.ensureBlock()
	return nil
}

// saveSession dumps the document and caret so that an unsaved edit
// survives quitting.
func (ed *editor) saveSession(file string) error {
	return dumpfile.Snapshot(ed.doc).Save(file)
}

func (ed *editor) undo() {
	prev, err := ed.hist.Undo(dumpfile.Snapshot(ed.doc))
	if err != nil {
		ed.message = err.Error()
		return
	}
	ed.restore(prev)
}

func (ed *editor) redo() {
	next, err := ed.hist.Redo(dumpfile.Snapshot(ed.doc))
	if err != nil {
		ed.message = err.Error()
		return
	}
	ed.restore(next)
}

func (ed *editor) restore(c *dumpfile.Content) {
	if err := c.Restore(ed.doc); err != nil {
		ed.fail(err)
		return
	}
	ed.eng.Clear()
	ed.selecting = false
	ed.ensureBlock()
	ed.Changed()
}

func (ed *editor) fail(err error) {
	ed.log.Printf("error: %v", err)
	ed.message = err.Error()
}

// caretTable returns the table holding the caret and the caret's cell
// position in it. row and col are -1 on a boundary marker.
func (ed *editor) caretTable() (t *document.Node, row, col int) {
	p, ok := ed.doc.Caret()
	if !ok {
		return nil, -1, -1
	}
	t = table.TableOf(p.Node)
	if t == nil {
		return nil, -1, -1
	}
	if c := table.CellOf(p.Node); c != nil {
		row, col, _ = table.Position(c)
		return t, row, col
	}
	return t, -1, -1
}

func (ed *editor) insertTable() {
	ed.eng.InsertTable(3, 3)
}

func (ed *editor) insertRow() {
	t, row, col := ed.caretTable()
	if t == nil {
		ed.message = "not in a table"
		return
	}
	ed.eng.InsertRow(t, row+1, max(col, 0))
}

func (ed *editor) insertColumn() {
	t, row, col := ed.caretTable()
	if t == nil {
		ed.message = "not in a table"
		return
	}
	ed.eng.InsertColumn(t, col+1, max(row, 0))
}

func (ed *editor) deleteTable() {
	t, _, _ := ed.caretTable()
	if t == nil {
		ed.message = "not in a table"
		return
	}
	ed.eng.DeleteTable(t)
}

// resize adapts to a terminal of w×h cells. The last row is the status
// line; the last column is kept free for a caret after a table.
func (ed *editor) resize(w, h int) {
	ed.height = max(h-1, 1)
	ed.lay.SetWidth(max(w-1, 1))
	ed.bus.Publish(table.Signal{Kind: table.SignalResize})
	ed.scrollToCaret()
}

// scroll moves the view by dy rows.
func (ed *editor) scroll(dy int) {
	old := ed.lay.Scroll()
	ed.lay.SetScroll(old.Add(image.Pt(0, dy)))
	if ed.lay.Scroll() != old {
		ed.bus.Publish(table.Signal{Kind: table.SignalScroll})
	}
}

// scrollToCaret scrolls just enough to show the caret's line.
func (ed *editor) scrollToCaret() {
	p, ok := ed.doc.Caret()
	if !ok {
		return
	}
	cr, ok := ed.lay.CaretRect(p)
	if !ok {
		return
	}
	switch {
	case cr.Min.Y < 0:
		ed.scroll(cr.Min.Y)
	case cr.Max.Y > ed.height:
		ed.scroll(cr.Max.Y - ed.height)
	}
}

// status returns the status line text.
func (ed *editor) status() string {
	name := ed.file
	if name == "" {
		name = "(unnamed)"
	}
	if ed.hist.Dirty() {
		name += " *"
	}
	if ed.message != "" {
		return name + "  " + ed.message
	}
	if s, ok := ed.eng.StructuralSelection(); ok {
		return fmt.Sprintf("%s  %v %d selected", name, s.Axis, s.Index+1)
	}
	if r, ok := ed.eng.CellRange(); ok {
		return fmt.Sprintf("%s  %d cells selected", name, r.Len())
	}
	return name
}
