// Package layout places a document on a vertical page: text blocks are
// soft-wrapped against a draw.Font and tables become a grid of cells
// whose text wraps inside its column. It answers the geometry questions
// an editing surface asks: where is a node, which visual lines does its
// text occupy, where does the caret render and which text position lies
// nearest a point.
//
// Positions are computed in document space. All queries take and return
// viewport coordinates, which are document coordinates minus the scroll
// offset.
package layout

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
)

// Line is one visual line of a text node, in viewport coordinates.
// Start and End delimit its runes; Rect spans the full content width
// available to the line, not just its inked part.
type Line struct {
	Node  *document.Node
	Start int
	End   int
	Rect  image.Rectangle
}

// Option is a functional option for configuring a Layout.
type Option func(*Layout)

// WithWidth sets the page width.
func WithWidth(w int) Option {
	return func(l *Layout) { l.width = w }
}

// WithPadding sets the inner padding of table cells.
func WithPadding(p int) Option {
	return func(l *Layout) { l.padding = p }
}

// WithBorder sets the width of table rules. Rules surround every cell.
func WithBorder(b int) Option {
	return func(l *Layout) { l.border = b }
}

// WithGutter sets the space reserved left of and above each table for
// row and column handles.
func WithGutter(g int) Option {
	return func(l *Layout) { l.gutter = g }
}

// WithSpacing sets the vertical gap between blocks.
func WithSpacing(s int) Option {
	return func(l *Layout) { l.spacing = s }
}

// WithColumnWidth bounds the natural width of table columns.
func WithColumnWidth(lo, hi int) Option {
	return func(l *Layout) {
		l.minCol = lo
		l.maxCol = hi
	}
}

// WithListIndent sets the indentation of list items.
func WithListIndent(n int) Option {
	return func(l *Layout) { l.indent = n }
}

type box struct {
	rect  image.Rectangle
	lines []line
}

// Layout is the geometry of one document. It reflows lazily whenever
// the document's version changes.
type Layout struct {
	doc  *document.Document
	font draw.Font

	width   int
	padding int
	border  int
	gutter  int
	spacing int
	minCol  int
	maxCol  int
	indent  int

	version uint64
	valid   bool
	scroll  image.Point
	height  int
	boxes   map[*document.Node]*box
}

// New returns a Layout of doc measured with font.
func New(doc *document.Document, font draw.Font, opts ...Option) *Layout {
	l := &Layout{
		doc:     doc,
		font:    font,
		width:   800,
		padding: 4,
		border:  1,
		gutter:  12,
		spacing: 8,
		minCol:  40,
		maxCol:  240,
		indent:  font.StringWidth("• "),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Font returns the font used for measuring.
func (l *Layout) Font() draw.Font { return l.font }

// Width returns the page width.
func (l *Layout) Width() int { return l.width }

// SetWidth changes the page width and invalidates the layout.
func (l *Layout) SetWidth(w int) {
	if w != l.width {
		l.width = w
		l.valid = false
	}
}

// Invalidate forces a reflow on the next query.
func (l *Layout) Invalidate() { l.valid = false }

// Height returns the height of the laid out document.
func (l *Layout) Height() int {
	l.ensure()
	return l.height
}

// Scroll returns the scroll offset.
func (l *Layout) Scroll() image.Point { return l.scroll }

// SetScroll sets the scroll offset. The vertical offset is clamped into
// the document.
func (l *Layout) SetScroll(pt image.Point) {
	l.ensure()
	if pt.Y > l.height {
		pt.Y = l.height
	}
	if pt.Y < 0 {
		pt.Y = 0
	}
	if pt.X < 0 {
		pt.X = 0
	}
	l.scroll = pt
}

func (l *Layout) ensure() {
	if l.valid && l.version == l.doc.Version() {
		return
	}
	l.reflow()
}

func (l *Layout) reflow() {
	l.boxes = make(map[*document.Node]*box)
	y := 0
	for i, b := range l.doc.Blocks() {
		if i > 0 {
			y += l.spacing
		}
		if b.Kind() == document.KindTable {
			y = l.layoutTable(b, y)
		} else {
			y = l.layoutBlock(b, y)
		}
	}
	l.height = y
	l.version = l.doc.Version()
	l.valid = true
}

func (l *Layout) layoutBlock(b *document.Node, y int) int {
	x := 0
	if b.Kind() == document.KindListItem {
		x = l.indent
	}
	lines, h := l.wrap(b, x, y, l.width-x)
	l.boxes[b] = &box{rect: image.Rect(0, y, l.width, y+h), lines: lines}
	return y + h
}

// Bounds returns the rectangle occupied by n.
func (l *Layout) Bounds(n *document.Node) (image.Rectangle, bool) {
	l.ensure()
	b, ok := l.boxes[n]
	if !ok {
		return image.Rectangle{}, false
	}
	return b.rect.Sub(l.scroll), true
}

// Lines returns the visual lines of text node n, top to bottom.
func (l *Layout) Lines(n *document.Node) []Line {
	l.ensure()
	b, ok := l.boxes[n]
	if !ok {
		return nil
	}
	out := make([]Line, 0, len(b.lines))
	for _, ln := range b.lines {
		out = append(out, Line{Node: n, Start: ln.start, End: ln.end, Rect: ln.rect.Sub(l.scroll)})
	}
	return out
}

// CaretRect returns the rectangle where a caret at p renders. It is one
// pixel wide and as tall as the line.
func (l *Layout) CaretRect(p document.Point) (image.Rectangle, bool) {
	l.ensure()
	b, ok := l.boxes[p.Node]
	if !ok || len(b.lines) == 0 {
		return image.Rectangle{}, false
	}
	ln := b.lines[lineFor(b.lines, p.Offset)]
	i := p.Offset - ln.start
	if i < 0 {
		i = 0
	}
	if i >= len(ln.xs) {
		i = len(ln.xs) - 1
	}
	x := ln.xs[i]
	r := image.Rect(x, ln.rect.Min.Y, x+1, ln.rect.Max.Y)
	return r.Sub(l.scroll), true
}

// LocateCaretNear returns the text position on ln whose caret is
// nearest to viewport x. It fails when ln no longer exists or x lies
// outside the horizontal extent of the line. The result may render on
// a neighbouring line when it falls on a wrap boundary; callers that
// care check CaretRect.
func (l *Layout) LocateCaretNear(ln Line, x int) (document.Point, bool) {
	l.ensure()
	b, ok := l.boxes[ln.Node]
	if !ok {
		return document.Point{}, false
	}
	x += l.scroll.X
	for _, il := range b.lines {
		if il.start != ln.Start || il.end != ln.End {
			continue
		}
		if x < il.rect.Min.X || x > il.rect.Max.X {
			return document.Point{}, false
		}
		return document.Point{Node: ln.Node, Offset: offsetAt(il, x)}, true
	}
	return document.Point{}, false
}

// PointAt returns the text position nearest to viewport point pt inside
// the text node under it. Boundary markers are never returned.
func (l *Layout) PointAt(pt image.Point) (document.Point, bool) {
	l.ensure()
	dp := pt.Add(l.scroll)
	var hit *document.Node
	for n, b := range l.boxes {
		if !n.IsText() || n.Kind() == document.KindEdge || !dp.In(b.rect) {
			continue
		}
		// Cells lie inside no other text box, so the first hit is it.
		hit = n
		break
	}
	if hit == nil {
		return document.Point{}, false
	}
	lines := l.boxes[hit].lines
	idx := 0
	for i, ln := range lines {
		if dp.Y >= ln.rect.Min.Y {
			idx = i
		}
	}
	return document.Point{Node: hit, Offset: offsetAt(lines[idx], dp.X)}, true
}
