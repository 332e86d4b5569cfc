package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rjkroege/mdgrid/document"
)

// Format writes d to w as Markdown. Blocks are separated by a blank
// line except for consecutive list items. Table columns are padded to a
// common display width. Empty paragraphs are skipped.
func Format(w io.Writer, d *document.Document) error {
	var sb strings.Builder
	var prev *document.Node
	for _, b := range d.Blocks() {
		if b.Kind() != document.KindTable && b.Text() == "" {
			continue
		}
		if prev != nil {
			sb.WriteString("\n")
			if prev.Kind() != document.KindListItem || b.Kind() != document.KindListItem {
				sb.WriteString("\n")
			}
		}
		switch b.Kind() {
		case document.KindHeading:
			sb.WriteString(strings.Repeat("#", b.Level()))
			sb.WriteString(" ")
			sb.WriteString(b.Text())
		case document.KindListItem:
			sb.WriteString("- ")
			sb.WriteString(b.Text())
		case document.KindTable:
			formatTable(&sb, b)
		default:
			sb.WriteString(b.Text())
		}
		prev = b
	}
	if prev != nil {
		sb.WriteString("\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("markdown: write: %w", err)
	}
	return nil
}

// cellSource returns the Markdown source of a cell's text.
func cellSource(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func formatTable(sb *strings.Builder, t *document.Node) {
	start := sb.Len()
	var rows [][]string
	var widths []int
	for _, r := range t.Children() {
		var cells []string
		for j, c := range r.Children() {
			s := cellSource(c.Text())
			cells = append(cells, s)
			if j == len(widths) {
				widths = append(widths, 3)
			}
			widths[j] = max(widths[j], runewidth.StringWidth(s))
		}
		rows = append(rows, cells)
	}

	writeRow := func(cells []string) {
		if sb.Len() > start {
			sb.WriteString("\n")
		}
		sb.WriteString("|")
		for j, w := range widths {
			s := ""
			if j < len(cells) {
				s = cells[j]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(s, w))
			sb.WriteString(" |")
		}
	}

	for i, cells := range rows {
		writeRow(cells)
		if i == 0 {
			delim := make([]string, len(widths))
			for j, w := range widths {
				delim[j] = strings.Repeat("-", w)
			}
			writeRow(delim)
		}
	}
}
