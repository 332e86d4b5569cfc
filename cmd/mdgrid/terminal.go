package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rjkroege/mdgrid/document"
	"github.com/rjkroege/mdgrid/draw"
	"github.com/rjkroege/mdgrid/table"
)

var (
	styleDefault    = tcell.StyleDefault
	styleRule       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHeading    = tcell.StyleDefault.Bold(true)
	styleHeader     = tcell.StyleDefault.Bold(true)
	styleSelected   = tcell.StyleDefault.Reverse(true)
	styleStructural = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleHandle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHover      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleGuide      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleIndicator  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus     = tcell.StyleDefault.Reverse(true)
)

// terminal connects an editor to a tcell screen.
type terminal struct {
	screen  tcell.Screen
	ed      *editor
	buttons int // button state of the last mouse event
	start   time.Time
}

// runTerminal runs the editor until it quits.
func runTerminal(ed *editor) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer s.Fini()
	s.EnableMouse(tcell.MouseMotionEvents)
	s.EnableFocus()
	s.Clear()

	t := &terminal{screen: s, ed: ed, start: time.Now()}
	ed.resize(s.Size())
	for !ed.quit {
		t.draw()
		s.Show()

		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
			ed.resize(ev.Size())
		case *tcell.EventKey:
			if k, ok := keyOf(ev); ok {
				ed.key(k)
			}
		case *tcell.EventMouse:
			t.mouse(ev)
		case *tcell.EventFocus:
			if !ev.Focused {
				ed.bus.Publish(table.Signal{Kind: table.SignalBlur})
			}
		}
	}
	return nil
}

// modOf maps tcell modifiers onto the engine's.
func modOf(m tcell.ModMask) table.Mod {
	var mod table.Mod
	if m&tcell.ModShift != 0 {
		mod |= table.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= table.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= table.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= table.ModMeta
	}
	return mod
}

// keyOf translates a tcell key event into the runes the engine and the
// editor understand. Control chords become the letter plus ModCtrl.
func keyOf(ev *tcell.EventKey) (table.Key, bool) {
	mod := modOf(ev.Modifiers())
	k := table.Key{Mod: mod}
	switch ev.Key() {
	case tcell.KeyRune:
		k.Rune = ev.Rune()
	case tcell.KeyLeft:
		k.Rune = draw.KeyLeft
	case tcell.KeyRight:
		k.Rune = draw.KeyRight
	case tcell.KeyUp:
		k.Rune = draw.KeyUp
	case tcell.KeyDown:
		k.Rune = draw.KeyDown
	case tcell.KeyHome:
		k.Rune = draw.KeyHome
	case tcell.KeyEnd:
		k.Rune = draw.KeyEnd
	case tcell.KeyTab:
		k.Rune = draw.KeyTab
		k.Mod &^= table.ModCtrl
	case tcell.KeyBacktab:
		k.Rune = draw.KeyTab
		k.Mod |= table.ModShift
	case tcell.KeyEnter:
		k.Rune = '\n'
		k.Mod &^= table.ModCtrl
	case tcell.KeyEscape:
		k.Rune = draw.KeyEscape
		k.Mod &^= table.ModCtrl
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k.Rune = draw.KeyBackspace
		k.Mod &^= table.ModCtrl
	case tcell.KeyDelete:
		k.Rune = draw.KeyDelete
	default:
		key := ev.Key()
		if key < tcell.KeyCtrlA || key > tcell.KeyCtrlZ {
			return k, false
		}
		k.Rune = 'a' + rune(key-tcell.KeyCtrlA)
		k.Mod |= table.ModCtrl
	}
	return k, true
}

// mouse translates a tcell mouse event. Only the primary button and
// the wheel are used.
func (t *terminal) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	b := 0
	bs := ev.Buttons()
	if bs&tcell.Button1 != 0 {
		b |= draw.Button1
	}
	if bs&tcell.WheelUp != 0 {
		b |= draw.WheelUp
	}
	if bs&tcell.WheelDown != 0 {
		b |= draw.WheelDown
	}
	p := table.Pointer{
		Mouse: draw.Mouse{
			Point:   image.Pt(x, y),
			Buttons: b,
			Msec:    uint32(time.Since(t.start).Milliseconds()),
		},
		Mod: modOf(ev.Modifiers()),
	}
	t.ed.pointer(p, t.buttons)
	t.buttons = b &^ (draw.WheelUp | draw.WheelDown)
}

// draw paints the document, the engine's overlay and the status line.
func (t *terminal) draw() {
	s, ed := t.screen, t.ed
	s.Clear()
	sel, hasSel := ed.doc.Selection()

	for _, b := range ed.doc.Blocks() {
		switch b.Kind() {
		case document.KindTable:
			t.drawTable(b, sel, hasSel)
		case document.KindHeading:
			t.drawText(b, styleHeading, sel, hasSel)
		case document.KindListItem:
			if lines := ed.lay.Lines(b); len(lines) > 0 {
				t.put(0, lines[0].Rect.Min.Y, '•', styleDefault)
			}
			t.drawText(b, styleDefault, sel, hasSel)
		default:
			t.drawText(b, styleDefault, sel, hasSel)
		}
	}
	t.drawOverlay(ed.eng.Overlay())

	w, _ := s.Size()
	status := []rune(runewidth.Truncate(ed.status(), w, "…"))
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		s.SetContent(x, ed.height, r, nil, styleStatus)
	}

	s.HideCursor()
	if p, ok := ed.doc.Caret(); ok {
		if cr, ok := ed.lay.CaretRect(p); ok && cr.Min.Y >= 0 && cr.Min.Y < ed.height {
			s.ShowCursor(cr.Min.X, cr.Min.Y)
		}
	}
}

// put sets one cell of the document view.
func (t *terminal) put(x, y int, r rune, style tcell.Style) {
	if y < 0 || y >= t.ed.height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

// fill paints every cell of r with c.
func (t *terminal) fill(r image.Rectangle, c rune, style tcell.Style) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.put(x, y, c, style)
		}
	}
}

// drawText paints the visual lines of n. Runes inside the native
// selection are reversed.
func (t *terminal) drawText(n *document.Node, style tcell.Style, sel document.Selection, hasSel bool) {
	lo, hi := -1, -1
	if hasSel && !sel.Collapsed() && sel.Anchor.Node == n && sel.Focus.Node == n {
		lo, hi = ordered(sel)
	}
	rs := []rune(n.Text())
	for _, ln := range t.ed.lay.Lines(n) {
		x, y := ln.Rect.Min.X, ln.Rect.Min.Y
		for i := ln.Start; i < ln.End && i < len(rs); i++ {
			r := rs[i]
			if r == '\n' {
				continue
			}
			st := style
			if i >= lo && i < hi {
				st = styleSelected
			}
			t.put(x, y, r, st)
			x += runewidth.RuneWidth(r)
		}
	}
}

// drawTable paints the rules around every cell and the cell text,
// styled by the cell's render markers.
func (t *terminal) drawTable(tbl *document.Node, sel document.Selection, hasSel bool) {
	lay := t.ed.lay
	for _, row := range tbl.Children() {
		for _, c := range row.Children() {
			r, ok := lay.Bounds(c)
			if !ok {
				continue
			}
			outer := r.Inset(-1)
			for x := outer.Min.X; x < outer.Max.X; x++ {
				t.put(x, outer.Min.Y, '-', styleRule)
				t.put(x, outer.Max.Y-1, '-', styleRule)
			}
			for y := outer.Min.Y; y < outer.Max.Y; y++ {
				t.put(outer.Min.X, y, '|', styleRule)
				t.put(outer.Max.X-1, y, '|', styleRule)
			}
			for _, pt := range []image.Point{
				outer.Min,
				image.Pt(outer.Max.X-1, outer.Min.Y),
				image.Pt(outer.Min.X, outer.Max.Y-1),
				outer.Max.Sub(image.Pt(1, 1)),
			} {
				t.put(pt.X, pt.Y, '+', styleRule)
			}

			style := styleDefault
			if c.CellKind() == document.CellHeader {
				style = styleHeader
			}
			switch {
			case c.HasMark(document.MarkStructural):
				style = styleStructural
			case c.HasMark(document.MarkSelected):
				style = styleSelected
			case c.HasMark(document.MarkHandleHover):
				style = style.Underline(true)
			}
			if style != styleDefault && style != styleHeader {
				t.fill(r, ' ', style)
			}
			t.drawText(c, style, sel, hasSel)
		}
	}
}

// drawOverlay paints the handles, the insert guide and the drop
// indicator.
func (t *terminal) drawOverlay(o table.Overlay) {
	for _, h := range o.Handles {
		style := styleHandle
		switch {
		case h.Active:
			style = styleActive
		case h.Hover:
			style = styleHover
		}
		c := '·'
		if h.Axis == table.AxisRow {
			c = '⋮'
		}
		t.fill(h.Rect, ' ', style)
		mid := image.Pt((h.Rect.Min.X+h.Rect.Max.X)/2, (h.Rect.Min.Y+h.Rect.Max.Y)/2)
		t.put(mid.X, mid.Y, c, style)
	}
	if !o.Guide.Empty() {
		t.fill(o.Guide.Sub(t.ed.lay.Scroll()), '=', styleGuide)
	}
	if !o.Indicator.Empty() {
		t.fill(o.Indicator, '#', styleIndicator)
	}
}
