package table

import (
	"unicode"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
)

// Mod is a set of keyboard modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Key is a key press. Rune is either a character or one of the draw
// key codes. Hosts report control chords as the letter plus ModCtrl.
type Key struct {
	Rune rune
	Mod  Mod
}

type intent int

const (
	intentNone intent = iota
	intentLeft
	intentRight
	intentUp
	intentDown
	intentTab
	intentBacktab
	intentEscape
	intentBackspace
	intentDelete
	intentText
)

func (i intent) arrow() bool {
	return i >= intentLeft && i <= intentDown
}

// intentOf maps k onto what the engine may do with it.
func (e *Engine) intentOf(k Key) intent {
	chord := k.Mod & (ModCtrl | ModAlt | ModMeta)
	switch k.Rune {
	case draw.KeyLeft, draw.KeyRight:
		if chord != 0 && !e.cfg.WordKeys {
			return intentNone
		}
		if k.Rune == draw.KeyLeft {
			return intentLeft
		}
		return intentRight
	case draw.KeyUp, draw.KeyDown:
		if chord != 0 {
			return intentNone
		}
		if k.Rune == draw.KeyUp {
			return intentUp
		}
		return intentDown
	case draw.KeyTab:
		if chord != 0 {
			return intentNone
		}
		if k.Mod&ModShift != 0 {
			return intentBacktab
		}
		return intentTab
	case draw.KeyEscape:
		return intentEscape
	case draw.KeyBackspace:
		return intentBackspace
	case draw.KeyDelete:
		return intentDelete
	}
	if chord == ModCtrl && e.cfg.EmacsKeys {
		switch unicode.ToLower(k.Rune) {
		case 'b':
			return intentLeft
		case 'f':
			return intentRight
		case 'p':
			return intentUp
		case 'n':
			return intentDown
		}
	}
	if chord == 0 && unicode.IsPrint(k.Rune) {
		return intentText
	}
	return intentNone
}

// Key handles a key press and reports whether the engine consumed it.
// Keys it does not consume keep their native effect, so caret movement
// and typing inside a cell's text are left to the host.
func (e *Engine) Key(k Key) bool {
	defer e.flushFocus()
	e.reconcile()
	in := e.intentOf(k)
	if in == intentNone {
		return false
	}

	if in == intentEscape {
		had := e.rng != nil || e.str != nil
		e.Clear()
		return had
	}

	if s, ok := e.StructuralSelection(); ok {
		switch {
		case in.arrow() && k.Mod&ModShift != 0:
			e.shiftStructural(s, in)
			return true
		case in == intentBackspace || in == intentDelete:
			e.deleteStructural(s)
			return true
		}
		// Leave the row or column for text editing at its anchor cell.
		e.clearStructural()
		if c := s.anchorCell(); c != nil {
			e.doc.SetCaret(c, 0)
		}
	}

	switch in {
	case intentBackspace, intentDelete:
		return e.deleteKey(in == intentBackspace)
	case intentText:
		if e.onEdge() {
			return true
		}
		e.clearCellRange()
		return false
	}

	sel, ok := e.doc.Selection()
	if !ok {
		return false
	}
	if !sel.Collapsed() || (k.Mod&ModShift != 0 && in.arrow()) {
		return false
	}
	if e.rng != nil {
		e.clearCellRange()
	}
	p := sel.Focus
	if p.Node.Kind() == document.KindEdge {
		return e.fromEdge(p, in)
	}
	c := CellOf(p.Node)
	if c == nil {
		return false
	}

	switch in {
	case intentLeft:
		if p.Offset != 0 {
			return false
		}
		if prev := prevCell(c); prev != nil {
			e.doc.SetCaret(prev, prev.Len())
		} else {
			e.doc.SetCaret(TableOf(c).Edge(document.SideLeft), 0)
		}
		return true
	case intentRight:
		if p.Offset != c.Len() {
			return false
		}
		if next := nextCell(c); next != nil {
			e.doc.SetCaret(next, 0)
		} else {
			e.doc.SetCaret(TableOf(c).Edge(document.SideRight), 1)
		}
		return true
	case intentUp, intentDown:
		return e.vertical(p, c, in == intentDown)
	case intentTab:
		if next := nextCell(c); next != nil {
			e.doc.SetCaret(next, 0)
		} else {
			e.doc.SetCaret(TableOf(c).Edge(document.SideRight), 1)
		}
		return true
	case intentBacktab:
		if prev := prevCell(c); prev != nil {
			e.doc.SetCaret(prev, 0)
		} else {
			e.doc.SetCaret(TableOf(c).Edge(document.SideLeft), 0)
		}
		return true
	}
	return false
}

// fromEdge moves the caret off a boundary marker. From the left marker
// the table is entered at its first cell; from the right marker at the
// end of its last cell. Movement away from the table is native.
func (e *Engine) fromEdge(p document.Point, in intent) bool {
	t := TableOf(p.Node)
	if t == nil || Rows(t) == 0 {
		return false
	}
	if p.Node.Side() == document.SideLeft {
		switch in {
		case intentRight, intentDown, intentTab:
			e.doc.SetCaret(FirstCell(t), 0)
			return true
		}
		return false
	}
	switch in {
	case intentLeft, intentUp, intentBacktab:
		last := LastCell(t)
		e.doc.SetCaret(last, last.Len())
		return true
	}
	return false
}

// onEdge reports whether the caret sits in a boundary marker, where
// text input is suppressed.
func (e *Engine) onEdge() bool {
	p, ok := e.doc.Caret()
	return ok && p.Node.Kind() == document.KindEdge
}

// shiftStructural moves the selected row or column one slot in the
// arrow's direction and keeps it selected. Arrows across the axis of
// the selection, and moves off the end, are swallowed.
func (e *Engine) shiftStructural(s Structural, in intent) {
	var insertAt int
	switch {
	case s.Axis == AxisRow && in == intentUp, s.Axis == AxisColumn && in == intentLeft:
		insertAt = s.Index - 1
	case s.Axis == AxisRow && in == intentDown, s.Axis == AxisColumn && in == intentRight:
		insertAt = s.Index + 2
	default:
		return
	}
	target, ok := moveTarget(count(s.Table, s.Axis), s.Index, insertAt)
	if !ok || target == s.Index {
		return
	}
	e.mutate(func() { e.move(s.Axis, s.Table, s.Index, target) })
	e.SetStructuralSelection(s.Axis, s.Table, target)
}

// deleteStructural deletes the selected row or column and selects the
// one that took its place.
func (e *Engine) deleteStructural(s Structural) {
	e.mutate(func() {
		if s.Axis == AxisRow {
			e.deleteRow(s.Table, s.Index)
		} else {
			e.deleteColumn(s.Table, s.Index)
		}
	})
	if e.attachedTable(s.Table) {
		e.SetStructuralSelection(s.Axis, s.Table, s.Index)
	}
}

// deleteKey handles Backspace (back) and Delete. A selected cell range
// is emptied. A native selection across cells is turned into a cell
// range and emptied the same way, so text deletion never merges cells.
// Backspace just after the right boundary marker, or Delete just
// before the left one, deletes the table.
func (e *Engine) deleteKey(back bool) bool {
	if r, ok := e.CellRange(); ok {
		e.mutate(func() { e.clearCells(r.Table, r.MinRow, r.MaxRow, r.MinCol, r.MaxCol) })
		e.clearCellRange()
		return true
	}
	sel, ok := e.doc.Selection()
	if !ok {
		return false
	}
	if !sel.Collapsed() {
		return e.deleteAcross(sel)
	}
	p := sel.Focus
	if p.Node.Kind() != document.KindEdge {
		return false
	}
	t := TableOf(p.Node)
	left := p.Node.Side() == document.SideLeft
	switch {
	case back && !left && p.Offset >= 1, !back && left && p.Offset == 0:
		e.mutate(func() { e.deleteTable(t) })
		return true
	case back && left && p.Offset == 0, !back && !left && p.Offset >= 1:
		// Joining with the neighbouring block is native.
		return false
	}
	// The marker itself is read-only.
	return true
}

// deleteAcross handles Backspace or Delete over a native selection.
func (e *Engine) deleteAcross(sel document.Selection) bool {
	a, f := CellOf(sel.Anchor.Node), CellOf(sel.Focus.Node)
	ta, tf := TableOf(sel.Anchor.Node), TableOf(sel.Focus.Node)
	if ta == nil && tf == nil {
		return false
	}
	if a != nil && a == f {
		return false
	}
	if a == nil || f == nil || ta != tf {
		e.log.Printf("table: suppressed deletion across a table boundary")
		return true
	}
	e.SelectCellRange(a, f)
	r, ok := e.resolveRange()
	if !ok {
		return true
	}
	e.mutate(func() { e.clearCells(r.Table, r.MinRow, r.MaxRow, r.MinCol, r.MaxCol) })
	e.clearCellRange()
	e.doc.SetCaret(a, 0)
	return true
}

// BeforeInput is called before the host inserts text. Input aimed at a
// boundary marker is suppressed.
func (e *Engine) BeforeInput(text string) bool {
	return text != "" && e.onEdge()
}

// CompositionStart is called when an input method starts composing.
// Composition on a boundary marker is suppressed.
func (e *Engine) CompositionStart() bool {
	return e.onEdge()
}

// CompositionEnd is called when an input method commits. A boundary
// marker that received composed text is restored and the caret is put
// back on its side of it.
func (e *Engine) CompositionEnd() bool {
	defer e.flushFocus()
	p, ok := e.doc.Caret()
	if !ok || p.Node.Kind() != document.KindEdge {
		return false
	}
	if p.Node.Text() != document.EdgeText {
		e.mutate(func() { e.doc.ResetEdge(p.Node) })
	}
	if p.Node.Side() == document.SideLeft {
		e.doc.SetCaret(p.Node, 0)
	} else {
		e.doc.SetCaret(p.Node, 1)
	}
	return true
}
