package gridtest

import "errors"

// ErrNoText is returned by a Clipboard that has never been written.
var ErrNoText = errors.New("clipboard empty")

// Clipboard is an in-memory system clipboard.
type Clipboard struct {
	text   string
	full   bool
	Writes int
}

func (c *Clipboard) ReadText() (string, error) {
	if !c.full {
		return "", ErrNoText
	}
	return c.text, nil
}

func (c *Clipboard) WriteText(s string) error {
	c.text = s
	c.full = true
	c.Writes++
	return nil
}
