package main

import (
	"github.com/mattn/go-runewidth"
	"github.com/rjkroege/mdgrid/draw"
)

var _ = draw.Font(cellFont{})

// cellFont measures text in terminal cells. Every line is one cell high
// and East Asian wide runes take two cells.
type cellFont struct{}

func (cellFont) Name() string             { return "terminal" }
func (cellFont) Height() int              { return 1 }
func (cellFont) BytesWidth(b []byte) int  { return runewidth.StringWidth(string(b)) }
func (cellFont) StringWidth(s string) int { return runewidth.StringWidth(s) }

func (cellFont) RunesWidth(r []rune) int {
	w := 0
	for _, c := range r {
		w += runewidth.RuneWidth(c)
	}
	return w
}
