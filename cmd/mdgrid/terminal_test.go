package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rjkroege/mdgrid/draw"
	"github.com/rjkroege/mdgrid/table"
)

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want table.Key
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), table.Key{Rune: 'x'}, true},
		{"ctrl", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), table.Key{Rune: 's', Mod: table.ModCtrl}, true},
		{"shift arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), table.Key{Rune: draw.KeyLeft, Mod: table.ModShift}, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), table.Key{Rune: draw.KeyTab}, true},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), table.Key{Rune: draw.KeyTab, Mod: table.ModShift}, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), table.Key{Rune: draw.KeyBackspace}, true},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), table.Key{Rune: draw.KeyDelete}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), table.Key{Rune: '\n'}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), table.Key{Rune: draw.KeyEscape}, true},
		{"function", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), table.Key{}, false},
	}
	for _, tc := range tests {
		got, ok := keyOf(tc.ev)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%s: keyOf = %+v, %v; expected %+v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestModOf(t *testing.T) {
	got := modOf(tcell.ModShift | tcell.ModAlt)
	if want := table.ModShift | table.ModAlt; got != want {
		t.Errorf("modOf = %v, expected %v", got, want)
	}
}
