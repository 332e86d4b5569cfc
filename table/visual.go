package table

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/layout"
)

// vertical moves the caret at p in cell c one visual line up or down.
// It stays inside c while c has another visual line in that direction,
// then moves to the same column of the neighbouring row, keeping the
// caret's horizontal position where the geometry allows. Past the
// first row the caret goes to the left boundary marker; past the last
// row it leaves the table.
func (e *Engine) vertical(p document.Point, c *document.Node, down bool) bool {
	lines := e.geom.Lines(c)
	cr, ok := e.geom.CaretRect(p)
	li := -1
	if ok {
		li = lineOf(lines, cr)
	}
	if li < 0 {
		e.log.Printf("table: no caret geometry in cell %d", c.ID())
		if lm, ok := e.host.(LineMover); ok && lm.MoveCaretByLine(down) {
			return true
		}
		return false
	}
	x := cr.Min.X
	linear := p.Offset - lines[li].Start

	ni := li - 1
	if down {
		ni = li + 1
	}
	if ni >= 0 && ni < len(lines) {
		e.placeOnLine(lines, ni, x, linear)
		return true
	}

	t := TableOf(c)
	row, col, _ := Position(c)
	if down {
		row++
	} else {
		row--
	}
	switch {
	case row < 0:
		e.doc.SetCaret(t.Edge(document.SideLeft), 0)
		return true
	case row >= Rows(t):
		if next := e.doc.NextBlock(t); next != nil {
			e.enterStart(next)
		} else {
			e.doc.SetCaret(t.Edge(document.SideRight), 1)
		}
		return true
	}

	r := t.Child(row)
	target := r.Child(clamp(col, 0, r.NumChildren()-1))
	if target == nil {
		return false
	}
	tl := e.geom.Lines(target)
	if len(tl) == 0 {
		e.doc.SetCaret(target, linear)
		return true
	}
	ti := 0
	if !down {
		ti = len(tl) - 1
	}
	e.placeOnLine(tl, ti, x, linear)
	return true
}

// lineOf returns the index of the visual line whose band contains the
// vertical centre of caret rectangle cr, or -1.
func lineOf(lines []layout.Line, cr image.Rectangle) int {
	cy := (cr.Min.Y + cr.Max.Y) / 2
	for i, ln := range lines {
		if cy >= ln.Rect.Min.Y && cy < ln.Rect.Max.Y {
			return i
		}
	}
	return -1
}

// placeOnLine puts the caret on lines[i] nearest to x. When probing
// finds no position that renders on that line, the caret keeps its
// offset from the line start instead.
func (e *Engine) placeOnLine(lines []layout.Line, i, x, linear int) {
	ln := lines[i]
	if p, ok := e.probe(ln, x); ok {
		e.doc.SetCaret(p.Node, p.Offset)
		return
	}
	e.log.Printf("table: visual probe failed on line %d-%d, keeping offset", ln.Start, ln.End)
	end := ln.End
	if i < len(lines)-1 && end > ln.Start {
		end--
	}
	e.doc.SetCaret(ln.Node, clamp(ln.Start+linear, ln.Start, end))
}

// probe walks candidate x positions outwards from x, within ProbeSpan,
// and returns the first text position whose rendered caret falls on ln.
// Wrapped geometry is only known to the renderer, so each candidate is
// checked against the caret rectangle it actually produces.
func (e *Engine) probe(ln layout.Line, x int) (document.Point, bool) {
	x = clamp(x, ln.Rect.Min.X, ln.Rect.Max.X)
	step := e.cfg.ProbeStep
	for d := 0; d <= e.cfg.ProbeSpan; d += step {
		cands := []int{x - d, x + d}
		if d == 0 {
			cands = cands[:1]
		}
		for _, cx := range cands {
			p, ok := e.geom.LocateCaretNear(ln, cx)
			if !ok {
				continue
			}
			cr, ok := e.geom.CaretRect(p)
			if !ok {
				continue
			}
			if cy := (cr.Min.Y + cr.Max.Y) / 2; cy >= ln.Rect.Min.Y && cy < ln.Rect.Max.Y {
				return p, true
			}
		}
	}
	return document.Point{}, false
}
