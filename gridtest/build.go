package gridtest

import "github.com/rjkroege/mdgrid/document"

// Table appends a table holding rows to d and returns it. Row 0 becomes
// the header. Rows may be ragged.
func Table(d *document.Document, rows [][]string) *document.Node {
	ncols := 0
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	t := d.NewTable(len(rows), ncols)
	d.Append(t)
	for i, r := range rows {
		row := t.Child(i)
		for j := len(r); j < ncols; j++ {
			d.Remove(row.Child(len(r)))
		}
		for j, s := range r {
			d.SetText(row.Child(j), s)
		}
	}
	return t
}

// Texts returns the text of every cell of t, row by row.
func Texts(t *document.Node) [][]string {
	var out [][]string
	for _, r := range t.Children() {
		var row []string
		for _, c := range r.Children() {
			row = append(row, c.Text())
		}
		out = append(out, row)
	}
	return out
}

// Cell returns the cell at (row, col) of t or nil.
func Cell(t *document.Node, row, col int) *document.Node {
	r := t.Child(row)
	if r == nil {
		return nil
	}
	return r.Child(col)
}
