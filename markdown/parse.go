// Package markdown reads and writes the block structure of a Markdown
// file: paragraphs, ATX headings, list items and GFM pipe tables.
// Inline markup is kept as literal text. Fenced code and thematic
// breaks survive a round trip as verbatim paragraphs.
package markdown

import (
	"errors"
	"strings"

	"github.com/rjkroege/mdgrid/document"
)

// ErrEmpty is returned by Parse when the text holds no blocks.
var ErrEmpty = errors.New("markdown: no blocks")

// Parse replaces the content of d with the blocks of text. Paragraph
// lines are joined with single spaces. Table body rows are padded or
// cut to the width of the header row.
func Parse(d *document.Document, text string) error {
	lines := splitLines(text)
	var blocks []*document.Node
	for _, b := range scanBlocks(lines) {
		src := lines[b.SourceLineStart:b.SourceLineEnd]
		switch b.Type {
		case BlockBlankLine:
			continue
		case BlockParagraph:
			parts := make([]string, 0, len(src))
			for _, ln := range src {
				parts = append(parts, strings.TrimSpace(ln))
			}
			blocks = append(blocks, d.NewParagraph(strings.Join(parts, " ")))
		case BlockFencedCode:
			blocks = append(blocks, d.NewParagraph(strings.Join(src, "\n")))
		case BlockHRule:
			blocks = append(blocks, d.NewParagraph(strings.TrimSpace(src[0])))
		case BlockHeading:
			text, level := headingLevel(src[0])
			blocks = append(blocks, d.NewHeading(level, text))
		case BlockListItem:
			text, _ := listItemText(src[0])
			blocks = append(blocks, d.NewListItem(text))
		case BlockTable:
			blocks = append(blocks, parseTable(d, src))
		}
	}

	d.Reset()
	for _, n := range blocks {
		d.Append(n)
	}
	if len(blocks) == 0 {
		return ErrEmpty
	}
	return nil
}

// parseTable builds a table from its source lines: header, delimiter
// and body rows.
func parseTable(d *document.Document, src []string) *document.Node {
	header := splitTableCells(src[0])
	rows := [][]string{header}
	for _, ln := range src[2:] {
		rows = append(rows, splitTableCells(ln))
	}
	t := d.NewTable(len(rows), len(header))
	for i, cells := range rows {
		r := t.Child(i)
		for j := 0; j < len(header) && j < len(cells); j++ {
			d.SetText(r.Child(j), cells[j])
		}
	}
	return t
}
