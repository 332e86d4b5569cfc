package main

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/rjkroege/mdgrid/table"
)

var errNoClipboard = errors.New("no system clipboard")

var _ = table.Clipboard(systemClipboard{})

// systemClipboard is the desktop clipboard as seen through
// xclip, xsel, wl-copy or pbcopy.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", errNoClipboard
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteText(s string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(s)
}
