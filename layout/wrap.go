package layout

import (
	"image"
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/rjkroege/mdgrid/document"
)

// line is one visual line of laid-out text in document space.
type line struct {
	start, end int             // rune range [start, end)
	rect       image.Rectangle // full content width of the line
	xs         []int           // caret x before rune start+i; len(xs) = end-start+1
}

// wrap soft-wraps the text of n into lines of at most maxw pixels whose
// left edge is x0 and whose first line starts at y0. Lines break at
// UAX #14 opportunities; a word wider than maxw is broken between
// runes. Trailing spaces hang past the right edge rather than forcing a
// break. It returns the lines and their total height.
func (l *Layout) wrap(n *document.Node, x0, y0, maxw int) ([]line, int) {
	fh := l.font.Height()
	text := n.Text()
	if text == "" {
		h := fh
		if !n.Placeholder() {
			h = 0
		}
		return []line{{rect: image.Rect(x0, y0, x0+maxw, y0+h), xs: []int{x0}}}, h
	}

	var lines []line
	y := y0
	pos := 0
	cur := line{xs: []int{x0}}
	curw := 0
	flush := func() {
		cur.end = pos
		cur.rect = image.Rect(x0, y, x0+maxw, y+fh)
		lines = append(lines, cur)
		y += fh
		cur = line{start: pos, xs: []int{x0}}
		curw = 0
	}

	state := -1
	rest := text
	for len(rest) > 0 {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		rs := []rune(seg)

		if curw > 0 && curw+l.wordWidth(rs) > maxw {
			flush()
		}
		hardBreak := false
		for _, r := range rs {
			if r == '\n' || r == '\r' {
				cur.xs = append(cur.xs, x0+curw)
				pos++
				hardBreak = r == '\n'
				continue
			}
			w := l.font.RunesWidth([]rune{r})
			if curw > 0 && curw+w > maxw && !unicode.IsSpace(r) {
				flush()
			}
			curw += w
			cur.xs = append(cur.xs, x0+curw)
			pos++
		}
		if mustBreak && hardBreak {
			flush()
		}
	}
	flush()
	return lines, y - y0
}

// wordWidth is the width of rs without its trailing white space.
func (l *Layout) wordWidth(rs []rune) int {
	end := len(rs)
	for end > 0 && unicode.IsSpace(rs[end-1]) {
		end--
	}
	return l.font.RunesWidth(rs[:end])
}

// lineFor returns the index of the line that shows the caret at off.
// At a soft-wrap boundary the caret belongs to the start of the
// following line.
func lineFor(lines []line, off int) int {
	idx := 0
	for i, ln := range lines {
		if ln.start <= off {
			idx = i
		}
	}
	return idx
}

// offsetAt returns the offset in ln whose caret position is nearest x.
func offsetAt(ln line, x int) int {
	if x <= ln.xs[0] {
		return ln.start
	}
	for i := 1; i < len(ln.xs); i++ {
		if x < ln.xs[i] {
			// Ties go to the left, so x at a caret position maps back to it.
			if x-ln.xs[i-1] <= ln.xs[i]-x {
				return ln.start + i - 1
			}
			return ln.start + i
		}
	}
	return ln.start + len(ln.xs) - 1
}
