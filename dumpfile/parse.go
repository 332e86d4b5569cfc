// Package dumpfile implements encoding and decoding of mdgrid dump files.
//
// A dump file stores the blocks of a document and the caret so that an
// editing session can be restored exactly, tables included. The same
// Content doubles as the in-memory snapshot kept by the undo history.
package dumpfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rjkroege/mdgrid/document"
)

const version = 1

// ErrVersion is returned when a dump file has an unknown format version.
var ErrVersion = errors.New("unsupported dump file format")

// BlockType defines the type of a top-level block.
type BlockType int

const (
	Paragraph BlockType = iota // Paragraph is plain text
	Heading                    // Heading has a level from 1 to 6
	ListItem                   // ListItem is one bullet
	Table                      // Table is a grid whose first row is the header
)

// Content stores the state of a document.
type Content struct {
	Blocks []Block // Top-level blocks in order
	Caret  *Caret  `json:",omitempty"` // nil when there is no caret
}

// Block stores one top-level block.
type Block struct {
	Type  BlockType
	Text  string     `json:",omitempty"` // Text of a non-table block
	Level int        `json:",omitempty"` // Heading level
	Rows  [][]string `json:",omitempty"` // Cell texts of a table, row by row
}

// Caret is a text position addressed by child indices from the root: a
// block, or a block, row and cell. A table's boundary markers are
// addressed by the indices LeftEdge and RightEdge after the block.
type Caret struct {
	Path   []int
	Offset int // Rune offset into the text of the addressed node
}

const (
	LeftEdge  = -1
	RightEdge = -2
)

type versionedContent struct {
	Version int // Dump file format version
	*Content
}

// Snapshot captures the blocks and caret of d.
func Snapshot(d *document.Document) *Content {
	c := &Content{}
	for _, b := range d.Blocks() {
		c.Blocks = append(c.Blocks, snapshotBlock(b))
	}
	if p, ok := d.Caret(); ok {
		if path, ok := pathOf(p.Node); ok {
			c.Caret = &Caret{Path: path, Offset: p.Offset}
		}
	}
	return c
}

func snapshotBlock(b *document.Node) Block {
	switch b.Kind() {
	case document.KindHeading:
		return Block{Type: Heading, Text: b.Text(), Level: b.Level()}
	case document.KindListItem:
		return Block{Type: ListItem, Text: b.Text()}
	case document.KindTable:
		rows := make([][]string, 0, b.NumChildren())
		for _, r := range b.Children() {
			row := make([]string, 0, r.NumChildren())
			for _, c := range r.Children() {
				row = append(row, c.Text())
			}
			rows = append(rows, row)
		}
		return Block{Type: Table, Rows: rows}
	}
	return Block{Type: Paragraph, Text: b.Text()}
}

// pathOf returns the index path of text node n.
func pathOf(n *document.Node) ([]int, bool) {
	if !n.Attached() {
		return nil, false
	}
	if n.Kind() == document.KindEdge {
		t := n.Parent()
		side := LeftEdge
		if n.Side() == document.SideRight {
			side = RightEdge
		}
		return []int{t.Index(), side}, true
	}
	var path []int
	for m := n; m.Kind() != document.KindRoot; m = m.Parent() {
		path = append([]int{m.Index()}, path...)
	}
	return path, true
}

// Restore replaces the content of d with c. Rows of a table shorter
// than its widest row are padded with empty cells.
func (c *Content) Restore(d *document.Document) error {
	blocks := make([]*document.Node, 0, len(c.Blocks))
	for i, b := range c.Blocks {
		n, err := restoreBlock(d, b)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, n)
	}
	d.Reset()
	for _, n := range blocks {
		d.Append(n)
	}
	if c.Caret != nil {
		if n := resolve(d, c.Caret.Path); n != nil {
			d.SetCaret(n, c.Caret.Offset)
		}
	}
	return nil
}

func restoreBlock(d *document.Document, b Block) (*document.Node, error) {
	switch b.Type {
	case Paragraph:
		return d.NewParagraph(b.Text), nil
	case Heading:
		if b.Level < 1 || b.Level > 6 {
			return nil, fmt.Errorf("bad heading level %d", b.Level)
		}
		return d.NewHeading(b.Level, b.Text), nil
	case ListItem:
		return d.NewListItem(b.Text), nil
	case Table:
		ncols := 0
		for _, r := range b.Rows {
			ncols = max(ncols, len(r))
		}
		if len(b.Rows) == 0 || ncols == 0 {
			return nil, errors.New("empty table")
		}
		t := d.NewTable(len(b.Rows), ncols)
		for i, r := range b.Rows {
			for j, s := range r {
				d.SetText(t.Child(i).Child(j), s)
			}
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown block type %d", b.Type)
}

// resolve returns the node at path, or nil.
func resolve(d *document.Document, path []int) *document.Node {
	if len(path) == 0 {
		return nil
	}
	n := d.Root().Child(path[0])
	for _, i := range path[1:] {
		if n == nil {
			return nil
		}
		switch {
		case i == LeftEdge && n.Kind() == document.KindTable:
			return n.Edge(document.SideLeft)
		case i == RightEdge && n.Kind() == document.KindTable:
			return n.Edge(document.SideRight)
		}
		n = n.Child(i)
	}
	return n
}

// Load parses the dump file and returns its content.
func Load(file string) (*Content, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(bufio.NewReader(f))
}

func decode(r io.Reader) (*Content, error) {
	var vc versionedContent

	dec := json.NewDecoder(r)
	err := dec.Decode(&vc)
	if err != nil {
		return nil, err
	}
	if vc.Version != version {
		return nil, fmt.Errorf("%w: %v; expected %v", ErrVersion, vc.Version, version)
	}
	if vc.Content == nil {
		return &Content{}, nil
	}
	return vc.Content, nil
}

// Save encodes the dump file content and writes it to file.
func (c *Content) Save(file string) error {
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := c.encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Content) encode(w io.Writer) error {
	vc := versionedContent{
		Version: version,
		Content: c,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&vc)
}
