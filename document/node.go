// Package document implements the live, editable block tree of a
// Markdown document as the rich-text surface sees it: paragraphs,
// headings, list items and tables of rows and cells, together with the
// caret and range selection.
//
// Every node carries an explicit kind and, for table parts, an explicit
// section or cell kind tag. Nothing about a node is inferred from its
// position; the table engine keeps the tags consistent.
package document

import "fmt"

// ID identifies a node for the lifetime of its Document. IDs are never
// reused, so a stale ID resolves to nil rather than to a different node.
type ID uint64

// Kind is the variant of a node.
type Kind int

const (
	KindRoot Kind = iota
	KindParagraph
	KindHeading
	KindListItem
	KindTable
	KindRow
	KindCell
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "listitem"
	case KindTable:
		return "table"
	case KindRow:
		return "row"
	case KindCell:
		return "cell"
	case KindEdge:
		return "edge"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Section says whether a row belongs to the header or the body of its table.
type Section int

const (
	SectionHeader Section = iota
	SectionBody
)

// CellKind tags a cell as a header cell or a data cell.
type CellKind int

const (
	CellHeader CellKind = iota
	CellData
)

// Side selects one of the two boundary markers of a table.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// EdgeText is the read-only content of a boundary marker.
const EdgeText = " "

// Mark is a set of render markers. Renderers read them to paint
// selection state and may clear them; the table engine reconciles.
type Mark uint8

const (
	MarkSelected Mark = 1 << iota
	MarkStructural
	MarkHandleHover
)

// Node is one element of the tree.
type Node struct {
	id       ID
	kind     Kind
	doc      *Document
	parent   *Node
	children []*Node

	text        string
	nrune       int
	placeholder bool
	level       int // heading level

	section  Section
	cellKind CellKind
	side     Side
	edges    [2]*Node // tables only
	marks    Mark
}

func (n *Node) ID() ID              { return n.id }
func (n *Node) Kind() Kind          { return n.kind }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) Document() *Document { return n.doc }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Index returns the position of n within its parent, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// IsText reports whether the node holds editable text and can carry
// the caret.
func (n *Node) IsText() bool {
	switch n.kind {
	case KindParagraph, KindHeading, KindListItem, KindCell, KindEdge:
		return true
	}
	return false
}

// IsBlock reports whether the node is a top-level block.
func (n *Node) IsBlock() bool {
	return n.parent != nil && n.parent.kind == KindRoot
}

// Text returns the plain text of a text node.
func (n *Node) Text() string { return n.text }

// Len returns the number of runes of text.
func (n *Node) Len() int { return n.nrune }

// Placeholder reports whether an empty node is seeded with a filler so
// that it lays out with a nonzero height.
func (n *Node) Placeholder() bool { return n.placeholder }

// Level returns the heading level.
func (n *Node) Level() int { return n.level }

// Section returns the section of a row.
func (n *Node) Section() Section { return n.section }

// CellKind returns the kind tag of a cell.
func (n *Node) CellKind() CellKind { return n.cellKind }

// Side returns the side of a boundary marker.
func (n *Node) Side() Side { return n.side }

// Edge returns the boundary marker on side s of a table.
func (n *Node) Edge(s Side) *Node {
	if n.kind != KindTable {
		return nil
	}
	return n.edges[s]
}

// Marks returns the render markers set on n.
func (n *Node) Marks() Mark { return n.marks }

// HasMark reports whether every marker in m is set.
func (n *Node) HasMark(m Mark) bool { return n.marks&m == m }

// SetMark sets or clears the markers in m. Markers are not document
// content and do not bump the document version.
func (n *Node) SetMark(m Mark, on bool) {
	if on {
		n.marks |= m
	} else {
		n.marks &^= m
	}
}

// Attached reports whether n is reachable from its document's root.
func (n *Node) Attached() bool {
	if n == nil || n.doc == nil {
		return false
	}
	for p := n; p != nil; p = p.parent {
		if p == n.doc.root {
			return true
		}
	}
	return false
}

// Ancestor returns n or the nearest ancestor of n of kind k.
func (n *Node) Ancestor(k Kind) *Node {
	for p := n; p != nil; p = p.parent {
		if p.kind == k {
			return p
		}
	}
	return nil
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return fmt.Sprintf("%s#%d(%q)", n.kind, n.id, n.text)
	}
	return fmt.Sprintf("%s#%d", n.kind, n.id)
}
