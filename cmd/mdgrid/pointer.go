package main

import (
	"image"

	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
	"github.com/rjkroege/mdgrid/table"
)

const wheelStep = 3

// pointer applies a pointer sample. prev is the button state of the
// previous sample, so presses and releases can be told from motion.
func (ed *editor) pointer(p table.Pointer, prev int) {
	switch {
	case p.Buttons&draw.WheelUp != 0:
		ed.scroll(-wheelStep)
		return
	case p.Buttons&draw.WheelDown != 0:
		ed.scroll(wheelStep)
		return
	}
	down := p.Buttons&draw.Button1 != 0
	was := prev&draw.Button1 != 0
	if p.Point.Y >= ed.height {
		// The status line is outside the document view.
		if was && !down {
			ed.pointerUp(p.Point)
		}
		ed.eng.MouseLeave()
		return
	}
	switch {
	case down && !was:
		ed.message = ""
		if ed.eng.PointerDown(p) {
			ed.selecting = false
			return
		}
		q, ok := ed.lay.PointAt(p.Point)
		if !ok {
			return
		}
		if p.Mod&table.ModShift != 0 {
			if sel, ok := ed.doc.Selection(); ok {
				ed.doc.SetSelection(document.Selection{Anchor: sel.Anchor, Focus: q})
				return
			}
		}
		ed.doc.SetCaret(q.Node, q.Offset)
		ed.selecting = true
		ed.anchor = q
	case !down && was:
		ed.eng.PointerUp(p)
		ed.selecting = false
	default:
		if ed.eng.PointerMove(p) || !ed.selecting || !down {
			return
		}
		if q, ok := ed.lay.PointAt(p.Point); ok {
			ed.doc.SetSelection(document.Selection{Anchor: ed.anchor, Focus: q})
		}
	}
}

// pointerUp ends a press released outside the document view.
func (ed *editor) pointerUp(pt image.Point) {
	ed.selecting = false
	ed.bus.Publish(table.Signal{Kind: table.SignalPointerUp, Point: pt})
}
