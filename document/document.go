package document

import "unicode/utf8"

// ChangeKind describes what an observed change did.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeRemove
	ChangeMove
	ChangeText
	ChangeTag
	ChangeReset
)

// Change is delivered to observers after each content mutation.
type Change struct {
	Kind ChangeKind
	Node *Node
}

// Observer receives content changes. Selection and marker changes are
// not content and are not reported.
type Observer interface {
	Changed(c Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(c Change)

func (f ObserverFunc) Changed(c Change) { f(c) }

// Document owns the tree, the ID registry and the selection.
type Document struct {
	root      *Node
	nodes     map[ID]*Node
	nextID    ID
	version   uint64
	sel       Selection
	hasSel    bool
	observers []*observer
}

// New returns an empty document.
func New() *Document {
	d := &Document{nodes: make(map[ID]*Node)}
	d.root = d.newNode(KindRoot)
	return d
}

func (d *Document) newNode(k Kind) *Node {
	d.nextID++
	n := &Node{id: d.nextID, kind: k, doc: d}
	d.nodes[n.id] = n
	return n
}

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

// Blocks returns the top-level blocks. The slice must not be modified.
func (d *Document) Blocks() []*Node { return d.root.children }

// Version increases on every content change. Layouts compare it to
// decide whether to reflow.
func (d *Document) Version() uint64 { return d.version }

// Lookup resolves id to its node, or nil if the node no longer exists
// in the tree.
func (d *Document) Lookup(id ID) *Node {
	n, ok := d.nodes[id]
	if !ok || !n.Attached() {
		return nil
	}
	return n
}

// observer wraps a registered Observer so that cancel can find it by
// pointer. Observer values need not be comparable.
type observer struct{ o Observer }

// Observe registers o. The returned function removes it; calling it
// again does nothing.
func (d *Document) Observe(o Observer) (cancel func()) {
	e := &observer{o: o}
	d.observers = append(d.observers, e)
	return func() {
		for i, x := range d.observers {
			if x == e {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) changed(k ChangeKind, n *Node) {
	d.version++
	for _, e := range d.observers {
		e.o.Changed(Change{Kind: k, Node: n})
	}
}

// NewParagraph returns a detached paragraph.
func (d *Document) NewParagraph(text string) *Node {
	n := d.newNode(KindParagraph)
	n.setText(text)
	return n
}

// NewHeading returns a detached heading of the given level.
func (d *Document) NewHeading(level int, text string) *Node {
	n := d.newNode(KindHeading)
	n.level = level
	n.setText(text)
	return n
}

// NewListItem returns a detached list item.
func (d *Document) NewListItem(text string) *Node {
	n := d.newNode(KindListItem)
	n.setText(text)
	return n
}

// NewCell returns a detached empty cell seeded with a placeholder.
func (d *Document) NewCell(k CellKind) *Node {
	n := d.newNode(KindCell)
	n.cellKind = k
	n.setText("")
	return n
}

// NewRow returns a detached row of cols empty cells tagged for section s.
func (d *Document) NewRow(s Section, cols int) *Node {
	r := d.newNode(KindRow)
	r.section = s
	k := CellData
	if s == SectionHeader {
		k = CellHeader
	}
	for i := 0; i < cols; i++ {
		c := d.NewCell(k)
		c.parent = r
		r.children = append(r.children, c)
	}
	return r
}

// NewTable returns a detached table of rows×cols empty cells. Row 0 is
// the header row. The table's boundary markers are created with it.
func (d *Document) NewTable(rows, cols int) *Node {
	t := d.newNode(KindTable)
	for i := 0; i < rows; i++ {
		s := SectionBody
		if i == 0 {
			s = SectionHeader
		}
		r := d.NewRow(s, cols)
		r.parent = t
		t.children = append(t.children, r)
	}
	for _, s := range []Side{SideLeft, SideRight} {
		e := d.newNode(KindEdge)
		e.side = s
		e.parent = t
		e.setText(EdgeText)
		t.edges[s] = e
	}
	return t
}

// Insert places n as the i-th child of parent. i is clamped into
// [0, len(children)]. n must be detached.
func (d *Document) Insert(parent, n *Node, i int) {
	if n.parent != nil {
		d.detach(n)
	}
	if i < 0 {
		i = 0
	}
	if i > len(parent.children) {
		i = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[i+1:], parent.children[i:])
	parent.children[i] = n
	n.parent = parent
	d.register(n)
	d.changed(ChangeInsert, n)
}

// Append adds n as the last top-level block.
func (d *Document) Append(n *Node) {
	d.Insert(d.root, n, len(d.root.children))
}

// InsertAfter places n as the sibling following ref.
func (d *Document) InsertAfter(ref, n *Node) {
	d.Insert(ref.parent, n, ref.Index()+1)
}

// Remove detaches n and its subtree from the document.
func (d *Document) Remove(n *Node) {
	if n.parent == nil || n.kind == KindEdge {
		return
	}
	parent := n.parent
	d.detach(n)
	d.unregister(n)
	d.changed(ChangeRemove, parent)
}

// Move repositions n within its parent so that it ends up at index i.
func (d *Document) Move(n *Node, i int) {
	parent := n.parent
	if parent == nil {
		return
	}
	d.detach(n)
	if i < 0 {
		i = 0
	}
	if i > len(parent.children) {
		i = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[i+1:], parent.children[i:])
	parent.children[i] = n
	n.parent = parent
	d.changed(ChangeMove, n)
}

// Reset removes every block and clears the selection.
func (d *Document) Reset() {
	for _, b := range d.root.children {
		b.parent = nil
		d.unregister(b)
	}
	d.root.children = nil
	d.hasSel = false
	d.changed(ChangeReset, d.root)
}

func (d *Document) detach(n *Node) {
	p := n.parent
	i := n.Index()
	if i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

func (d *Document) register(n *Node) {
	d.nodes[n.id] = n
	for _, c := range n.children {
		d.register(c)
	}
	for _, e := range n.edges {
		if e != nil {
			d.nodes[e.id] = e
		}
	}
}

func (d *Document) unregister(n *Node) {
	delete(d.nodes, n.id)
	for _, c := range n.children {
		d.unregister(c)
	}
	for _, e := range n.edges {
		if e != nil {
			delete(d.nodes, e.id)
		}
	}
}

// SetText replaces the text of a text node. Setting empty text seeds
// the node with a placeholder. Boundary markers keep their text.
func (d *Document) SetText(n *Node, text string) {
	if !n.IsText() {
		return
	}
	n.setText(text)
	d.changed(ChangeText, n)
}

// ResetEdge restores a boundary marker to its placeholder text.
func (d *Document) ResetEdge(n *Node) {
	if n.kind != KindEdge {
		return
	}
	changed := n.text != EdgeText
	n.setText(EdgeText)
	if changed {
		d.changed(ChangeText, n)
	}
}

// SetEdgeText stores raw text into a boundary marker. Only input
// methods do this; the table engine puts the placeholder back.
func (d *Document) SetEdgeText(n *Node, text string) {
	if n.kind != KindEdge {
		return
	}
	n.text = text
	n.nrune = utf8.RuneCountInString(text)
	d.changed(ChangeText, n)
}

func (n *Node) setText(text string) {
	if n.kind == KindEdge {
		text = EdgeText
	}
	n.text = text
	n.nrune = utf8.RuneCountInString(text)
	n.placeholder = text == "" && n.kind != KindEdge
}

// SetSection retags a row. Cell kinds are not touched.
func (d *Document) SetSection(row *Node, s Section) {
	if row.kind != KindRow || row.section == s {
		return
	}
	row.section = s
	d.changed(ChangeTag, row)
}

// SetCellKind retags a cell.
func (d *Document) SetCellKind(cell *Node, k CellKind) {
	if cell.kind != KindCell || cell.cellKind == k {
		return
	}
	cell.cellKind = k
	d.changed(ChangeTag, cell)
}

// NextBlock returns the top-level block following b, or nil.
func (d *Document) NextBlock(b *Node) *Node {
	return d.root.Child(b.Index() + 1)
}

// PrevBlock returns the top-level block preceding b, or nil.
func (d *Document) PrevBlock(b *Node) *Node {
	i := b.Index()
	if i <= 0 {
		return nil
	}
	return d.root.Child(i - 1)
}

// Block returns the top-level block that contains n.
func (d *Document) Block(n *Node) *Node {
	for p := n; p != nil; p = p.parent {
		if p.IsBlock() {
			return p
		}
	}
	return nil
}

// Walk calls fn for every attached node in document order, boundary
// markers included, until fn returns false.
func (d *Document) Walk(fn func(n *Node) bool) {
	walk(d.root, fn)
}

func walk(n *Node, fn func(n *Node) bool) bool {
	if !fn(n) {
		return false
	}
	if e := n.edges[SideLeft]; e != nil && !fn(e) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	if e := n.edges[SideRight]; e != nil && !fn(e) {
		return false
	}
	return true
}

// Tables returns the attached tables in document order.
func (d *Document) Tables() []*Node {
	var ts []*Node
	for _, b := range d.root.children {
		if b.kind == KindTable {
			ts = append(ts, b)
		}
	}
	return ts
}
