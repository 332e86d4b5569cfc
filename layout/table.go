package layout

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
)

// columnWidths returns the width of each column: the widest unwrapped
// cell text plus padding, clamped into [minCol, maxCol].
func (l *Layout) columnWidths(t *document.Node) []int {
	ncols := 0
	for _, r := range t.Children() {
		if r.NumChildren() > ncols {
			ncols = r.NumChildren()
		}
	}
	ws := make([]int, ncols)
	for _, r := range t.Children() {
		for j, c := range r.Children() {
			if w := l.font.StringWidth(c.Text()) + 2*l.padding; w > ws[j] {
				ws[j] = w
			}
		}
	}
	for j := range ws {
		if ws[j] < l.minCol {
			ws[j] = l.minCol
		}
		if l.maxCol > 0 && ws[j] > l.maxCol {
			ws[j] = l.maxCol
		}
	}
	return ws
}

// layoutTable lays out t with its top edge (handle gutter included) at
// y and returns the y just below it.
//
// The grid is drawn with rules of width border around every cell. The
// column handle strip occupies the gutter above the grid and the row
// handle strip the gutter to its left. The boundary markers are zero
// width: the left one at the grid's top-left corner, the right one at
// its bottom-right corner.
func (l *Layout) layoutTable(t *document.Node, y int) int {
	fh := l.font.Height()
	ws := l.columnWidths(t)
	left := l.gutter
	top := y + l.gutter

	xs := make([]int, len(ws))
	x := left + l.border
	for j, w := range ws {
		xs[j] = x
		x += w + l.border
	}
	right := x
	if len(ws) == 0 {
		right = left + 2*l.border
	}

	cy := top + l.border
	for _, r := range t.Children() {
		h := fh + 2*l.padding
		cellLines := make([][]line, r.NumChildren())
		for j, c := range r.Children() {
			lines, th := l.wrap(c, xs[j]+l.padding, cy+l.padding, ws[j]-2*l.padding)
			cellLines[j] = lines
			if th+2*l.padding > h {
				h = th + 2*l.padding
			}
		}
		for j, c := range r.Children() {
			l.boxes[c] = &box{
				rect:  image.Rect(xs[j], cy, xs[j]+ws[j], cy+h),
				lines: cellLines[j],
			}
		}
		rowRight := left + l.border
		if n := r.NumChildren(); n > 0 {
			rowRight = xs[n-1] + ws[n-1]
		}
		l.boxes[r] = &box{rect: image.Rect(left+l.border, cy, rowRight, cy+h)}
		cy += h + l.border
	}
	if t.NumChildren() == 0 {
		cy = top + 2*l.border
	}

	l.boxes[t] = &box{rect: image.Rect(left, top, right, cy)}
	if e := t.Edge(document.SideLeft); e != nil {
		ln := line{start: 0, end: 1, rect: image.Rect(left, top, left, top+fh), xs: []int{left, left}}
		l.boxes[e] = &box{rect: ln.rect, lines: []line{ln}}
	}
	if e := t.Edge(document.SideRight); e != nil {
		ln := line{start: 0, end: 1, rect: image.Rect(right, cy-fh, right, cy), xs: []int{right, right}}
		l.boxes[e] = &box{rect: ln.rect, lines: []line{ln}}
	}
	return cy
}
