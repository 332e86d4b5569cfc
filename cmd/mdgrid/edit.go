package main

import (
	"strings"
	"unicode"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
	"github.com/rjkroege/mdgrid/table"
)

// key applies a key press. The engine sees it first; what it leaves
// alone gets the native text editing behaviour.
func (ed *editor) key(k table.Key) {
	ed.message = ""
	defer ed.scrollToCaret()

	ctrl := k.Mod&(table.ModCtrl|table.ModAlt|table.ModMeta) == table.ModCtrl
	if ctrl && ed.command(unicode.ToLower(k.Rune)) {
		return
	}
	if ed.eng.Key(k) {
		return
	}

	switch dir := ed.direction(k); dir {
	case draw.KeyLeft, draw.KeyRight:
		ed.moveHorizontal(dir == draw.KeyLeft, k.Mod&table.ModShift != 0)
		return
	case draw.KeyUp, draw.KeyDown:
		ed.MoveCaretByLine(dir == draw.KeyDown)
		return
	}

	switch k.Rune {
	case draw.KeyHome, draw.KeyEnd:
		ed.lineEnd(k.Rune == draw.KeyEnd)
	case draw.KeyBackspace:
		ed.deleteText(true)
	case draw.KeyDelete:
		ed.deleteText(false)
	case '\n':
		ed.splitBlock()
	default:
		if k.Mod&(table.ModCtrl|table.ModAlt|table.ModMeta) == 0 && unicode.IsPrint(k.Rune) {
			ed.insertText(string(k.Rune))
		}
	}
}

// command runs the editor command bound to Ctrl plus r.
func (ed *editor) command(r rune) bool {
	switch r {
	case 'q':
		ed.quit = true
	case 's':
		ed.save()
	case 'z':
		ed.undo()
	case 'y':
		ed.redo()
	case 'c':
		ed.copy()
	case 'x':
		ed.cut()
	case 'v':
		ed.paste()
	case 't':
		ed.insertTable()
	case 'r':
		ed.insertRow()
	case 'l':
		ed.insertColumn()
	case 'd':
		ed.deleteTable()
	default:
		return false
	}
	return true
}

// direction returns the arrow a key moves in, counting the emacs
// chords when they are enabled, or 0.
func (ed *editor) direction(k table.Key) rune {
	switch k.Rune {
	case draw.KeyLeft, draw.KeyRight, draw.KeyUp, draw.KeyDown:
		return k.Rune
	}
	if !ed.cfg.Table.EmacsKeys || k.Mod&(table.ModCtrl|table.ModAlt|table.ModMeta) != table.ModCtrl {
		return 0
	}
	switch unicode.ToLower(k.Rune) {
	case 'b':
		return draw.KeyLeft
	case 'f':
		return draw.KeyRight
	case 'p':
		return draw.KeyUp
	case 'n':
		return draw.KeyDown
	}
	return 0
}

// stops returns every text node the caret can visit, in reading order.
// A table contributes its left marker, its cells row by row and its
// right marker.
func (ed *editor) stops() []*document.Node {
	var out []*document.Node
	for _, b := range ed.doc.Blocks() {
		if b.Kind() != document.KindTable {
			out = append(out, b)
			continue
		}
		out = append(out, b.Edge(document.SideLeft))
		for _, r := range b.Children() {
			out = append(out, r.Children()...)
		}
		out = append(out, b.Edge(document.SideRight))
	}
	return out
}

// neighbour returns the caret stop before or after n.
func (ed *editor) neighbour(n *document.Node, before bool) *document.Node {
	stops := ed.stops()
	for i, s := range stops {
		if s != n {
			continue
		}
		switch {
		case before && i > 0:
			return stops[i-1]
		case !before && i+1 < len(stops):
			return stops[i+1]
		}
		return nil
	}
	return nil
}

// moveHorizontal moves the caret one rune, or extends the selection
// when extend is set. At the end of a node the caret continues into the
// neighbouring stop.
func (ed *editor) moveHorizontal(left, extend bool) {
	sel, ok := ed.doc.Selection()
	if !ok {
		return
	}
	if !extend && !sel.Collapsed() {
		ed.doc.SetCaret(sel.Focus.Node, sel.Focus.Offset)
		return
	}
	p := sel.Focus
	switch {
	case left && p.Offset > 0:
		p.Offset--
	case !left && p.Offset < p.Node.Len():
		p.Offset++
	default:
		n := ed.neighbour(p.Node, left)
		if n == nil {
			return
		}
		p = document.Point{Node: n}
		if left {
			p.Offset = n.Len()
		}
	}
	if extend {
		ed.doc.SetSelection(document.Selection{Anchor: sel.Anchor, Focus: p})
		return
	}
	ed.doc.SetCaret(p.Node, p.Offset)
}

// lineEnd moves the caret to the start or end of its visual line.
func (ed *editor) lineEnd(end bool) {
	p, ok := ed.doc.Caret()
	if !ok {
		return
	}
	lines := ed.lay.Lines(p.Node)
	for i, ln := range lines {
		if p.Offset >= ln.End && i+1 < len(lines) {
			continue
		}
		off := ln.Start
		if end {
			off = ln.End
			// A soft-wrapped line ends before its break.
			if i+1 < len(lines) && off > ln.Start {
				off--
			}
		}
		ed.doc.SetCaret(p.Node, off)
		return
	}
}

// cellText makes text fit in a table cell, which holds a single line.
func cellText(n *document.Node, s string) string {
	if n.Kind() != document.KindCell {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

// insertText replaces the selection with s.
func (ed *editor) insertText(s string) {
	if s == "" || ed.eng.BeforeInput(s) {
		return
	}
	sel, ok := ed.doc.Selection()
	if !ok {
		return
	}
	if !sel.Collapsed() && sel.Anchor.Node != sel.Focus.Node {
		ed.message = "selection spans blocks"
		return
	}
	n := sel.Focus.Node
	if n.Kind() == document.KindEdge {
		return
	}
	lo, hi := ordered(sel)
	ins := []rune(cellText(n, s))
	rs := []rune(n.Text())
	out := append(append(append([]rune{}, rs[:lo]...), ins...), rs[hi:]...)
	ed.edit(func() { ed.doc.SetText(n, string(out)) })
	ed.doc.SetCaret(n, lo+len(ins))
}

func ordered(sel document.Selection) (lo, hi int) {
	lo, hi = sel.Anchor.Offset, sel.Focus.Offset
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// deleteText implements Backspace (back) and Delete. Inside a node it
// removes the selection or one rune. At the edge of a block it joins
// the neighbouring text block; next to a table it moves onto the
// table's boundary marker, from where the engine deletes the table.
// Cells never join.
func (ed *editor) deleteText(back bool) {
	sel, ok := ed.doc.Selection()
	if !ok {
		return
	}
	if !sel.Collapsed() {
		if sel.Anchor.Node != sel.Focus.Node {
			ed.message = "selection spans blocks"
			return
		}
		n := sel.Focus.Node
		lo, hi := ordered(sel)
		rs := []rune(n.Text())
		out := append(append([]rune{}, rs[:lo]...), rs[hi:]...)
		ed.edit(func() { ed.doc.SetText(n, string(out)) })
		ed.doc.SetCaret(n, lo)
		return
	}

	p := sel.Focus
	n := p.Node
	rs := []rune(n.Text())
	switch {
	case n.Kind() == document.KindEdge:
		ed.leaveEdge(n, back)
	case back && p.Offset > 0:
		out := append(append([]rune{}, rs[:p.Offset-1]...), rs[p.Offset:]...)
		ed.edit(func() { ed.doc.SetText(n, string(out)) })
		ed.doc.SetCaret(n, p.Offset-1)
	case !back && p.Offset < len(rs):
		out := append(append([]rune{}, rs[:p.Offset]...), rs[p.Offset+1:]...)
		ed.edit(func() { ed.doc.SetText(n, string(out)) })
	case n.Kind() == document.KindCell:
	case back:
		ed.join(ed.doc.PrevBlock(n), n)
	default:
		ed.join(n, ed.doc.NextBlock(n))
	}
}

// leaveEdge handles the deletions the engine leaves to the host on a
// boundary marker: Backspace before a table and Delete after it. The
// caret moves to the neighbouring block.
func (ed *editor) leaveEdge(e *document.Node, back bool) {
	t := e.Parent()
	if back {
		if b := ed.doc.PrevBlock(t); b != nil && b.Kind() != document.KindTable {
			ed.doc.SetCaret(b, b.Len())
		}
		return
	}
	if b := ed.doc.NextBlock(t); b != nil && b.Kind() != document.KindTable {
		ed.doc.SetCaret(b, 0)
	}
}

// join appends the text of block b to block a and removes b. A table
// on either side is not joined; the caret moves onto its near marker.
func (ed *editor) join(a, b *document.Node) {
	switch {
	case a == nil || b == nil:
	case a.Kind() == document.KindTable:
		ed.doc.SetCaret(a.Edge(document.SideRight), 1)
	case b.Kind() == document.KindTable:
		ed.doc.SetCaret(b.Edge(document.SideLeft), 0)
	default:
		off := a.Len()
		ed.edit(func() {
			ed.doc.SetText(a, a.Text()+b.Text())
			ed.doc.Remove(b)
		})
		ed.doc.SetCaret(a, off)
	}
}

// splitBlock implements Enter. A text block splits at the caret; the
// tail of a heading becomes a paragraph and the tail of a list item a
// new list item. On a boundary marker Enter opens a paragraph on that
// side of the table. Cells hold one line and ignore it.
func (ed *editor) splitBlock() {
	sel, ok := ed.doc.Selection()
	if !ok || !sel.Collapsed() {
		return
	}
	p := sel.Focus
	n := p.Node
	switch n.Kind() {
	case document.KindCell:
		return
	case document.KindEdge:
		t := n.Parent()
		para := ed.doc.NewParagraph("")
		ed.edit(func() {
			if n.Side() == document.SideLeft {
				ed.doc.Insert(t.Parent(), para, t.Index())
			} else {
				ed.doc.InsertAfter(t, para)
			}
		})
		ed.doc.SetCaret(para, 0)
		return
	}

	rs := []rune(n.Text())
	head, tail := string(rs[:p.Offset]), string(rs[p.Offset:])
	var nb *document.Node
	if n.Kind() == document.KindListItem {
		nb = ed.doc.NewListItem(tail)
	} else {
		nb = ed.doc.NewParagraph(tail)
	}
	ed.edit(func() {
		ed.doc.SetText(n, head)
		ed.doc.InsertAfter(n, nb)
	})
	ed.doc.SetCaret(nb, 0)
}

// selectedText returns the text of a native selection inside one node.
func (ed *editor) selectedText() (string, bool) {
	sel, ok := ed.doc.Selection()
	if !ok || sel.Collapsed() || sel.Anchor.Node != sel.Focus.Node {
		return "", false
	}
	lo, hi := ordered(sel)
	return string([]rune(sel.Focus.Node.Text())[lo:hi]), true
}

func (ed *editor) copy() bool {
	if ed.eng.Copy() {
		ed.message = "copied"
		return true
	}
	s, ok := ed.selectedText()
	if !ok {
		return false
	}
	if err := ed.clip.WriteText(s); err != nil {
		ed.fail(err)
		return false
	}
	ed.message = "copied"
	return true
}

func (ed *editor) cut() {
	if ed.copy() {
		ed.key(table.Key{Rune: draw.KeyBackspace})
		ed.message = "cut"
	}
}

func (ed *editor) paste() {
	if ed.eng.Paste() {
		return
	}
	s, err := ed.clip.ReadText()
	if err != nil {
		ed.fail(err)
		return
	}
	ed.insertText(strings.TrimSuffix(s, "\n"))
}
