package draw

import (
	draw "9fans.net/go/draw"
)

// Key runes delivered by the keyboard. Hosts translating from other
// toolkits map their key codes onto these so that the table engine sees
// the same values a 9fans keyboard delivers.
const (
	KeyCmd      = draw.KeyCmd
	KeyDown     = draw.KeyDown
	KeyEnd      = draw.KeyEnd
	KeyHome     = draw.KeyHome
	KeyInsert   = draw.KeyInsert
	KeyLeft     = draw.KeyLeft
	KeyPageDown = draw.KeyPageDown
	KeyPageUp   = draw.KeyPageUp
	KeyRight    = draw.KeyRight
	KeyUp       = draw.KeyUp
)

// Control runes that the 9fans keyboard reports as plain ASCII.
const (
	KeyTab       = '\t'
	KeyBackspace = 0x08
	KeyEscape    = 0x1b
	KeyDelete    = 0x7f
)

// Mouse is a pointer sample: position, button mask and timestamp.
type Mouse = draw.Mouse

// Button masks for Mouse.Buttons.
const (
	Button1 = 1 << iota
	Button2
	Button3
	WheelUp
	WheelDown
)
