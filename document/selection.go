package document

// Point is a caret position: a rune offset into a text node.
type Point struct {
	Node   *Node
	Offset int
}

// Selection is a possibly empty range between an anchor and a focus.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed reports whether the selection is a plain caret.
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Focus
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

func clampPoint(p Point) Point {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Node != nil && p.Offset > p.Node.nrune {
		p.Offset = p.Node.nrune
	}
	return p
}

// Selection returns the current selection. ok is false when there is
// none or when either end refers to a node that has left the tree.
func (d *Document) Selection() (s Selection, ok bool) {
	if !d.hasSel {
		return Selection{}, false
	}
	if !d.sel.Anchor.Node.Attached() || !d.sel.Focus.Node.Attached() {
		d.hasSel = false
		return Selection{}, false
	}
	return Selection{Anchor: clampPoint(d.sel.Anchor), Focus: clampPoint(d.sel.Focus)}, true
}

// SetSelection replaces the selection. Offsets are clamped into the
// text of their nodes; a selection on a non-text node is ignored.
func (d *Document) SetSelection(s Selection) {
	if s.Anchor.Node == nil || s.Focus.Node == nil || !s.Anchor.Node.IsText() || !s.Focus.Node.IsText() {
		return
	}
	d.sel = Selection{Anchor: clampPoint(s.Anchor), Focus: clampPoint(s.Focus)}
	d.hasSel = true
}

// SetCaret collapses the selection to offset off in n.
func (d *Document) SetCaret(n *Node, off int) {
	d.SetSelection(Caret(Point{Node: n, Offset: off}))
}

// ClearSelection removes the selection entirely.
func (d *Document) ClearSelection() {
	d.hasSel = false
	d.sel = Selection{}
}

// Caret returns the focus of the selection.
func (d *Document) Caret() (Point, bool) {
	s, ok := d.Selection()
	if !ok {
		return Point{}, false
	}
	return s.Focus, true
}
