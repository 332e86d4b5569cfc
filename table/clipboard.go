package table

import (
	"strings"

	"github.com/rjkroege/mdgrid/document"
)

// Clipboard is the system clipboard's plain text flavour.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// FormatMatrix joins cells with tabs and rows with newlines.
func FormatMatrix(m [][]string) string {
	var b strings.Builder
	for i, row := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

// ParseMatrix splits clipboard text into rows on newlines and into
// cells on tabs. A single trailing newline does not make an extra row.
// It returns nil for text that is empty once that newline is dropped.
func ParseMatrix(s string) [][]string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	m := make([][]string, len(lines))
	for i, ln := range lines {
		m[i] = strings.Split(ln, "\t")
	}
	return m
}

// matrix returns the plain text of the rectangle of t.
func matrix(t *document.Node, r0, r1, c0, c1 int) [][]string {
	var m [][]string
	for i := r0; i <= r1; i++ {
		var row []string
		for j := c0; j <= c1; j++ {
			s := ""
			if c := Cell(t, i, j); c != nil {
				s = c.Text()
			}
			row = append(row, s)
		}
		m = append(m, row)
	}
	return m
}

// Copy copies the selected cells, or the selected row or column, to
// the clipboard as a tab separated matrix. The matrix is also retained
// for Paste in case the clipboard cannot be read back.
func (e *Engine) Copy() bool {
	e.reconcile()
	var m [][]string
	if r, ok := e.CellRange(); ok {
		m = matrix(r.Table, r.MinRow, r.MaxRow, r.MinCol, r.MaxCol)
	} else if s, ok := e.StructuralSelection(); ok {
		if s.Axis == AxisRow {
			m = matrix(s.Table, s.Index, s.Index, 0, Columns(s.Table)-1)
		} else {
			m = matrix(s.Table, 0, Rows(s.Table)-1, s.Index, s.Index)
		}
	} else {
		return false
	}
	e.fallback = m
	if e.clip != nil {
		if err := e.clip.WriteText(FormatMatrix(m)); err != nil {
			e.log.Printf("table: clipboard write: %v", err)
		}
	}
	return true
}

// Paste writes the clipboard matrix into the grid, starting at the
// top-left cell of the selected range or at the caret's cell. Each
// written cell's text is replaced. It never grows the table: whatever
// falls outside is dropped. Clipboard text that holds no values is
// consumed without any change.
//
// A single value pasted at a caret, with no range selected, is the
// exception: Paste returns false and the host's native paste inserts
// the value into the cell's text at the caret. Hosts that want it to
// replace the cell must do so themselves.
func (e *Engine) Paste() bool {
	defer e.flushFocus()
	e.reconcile()
	if e.onEdge() {
		return true
	}

	var start *document.Node
	r, hasRange := e.CellRange()
	if hasRange {
		start = Cell(r.Table, r.MinRow, r.MinCol)
	} else if p, ok := e.doc.Caret(); ok {
		start = CellOf(p.Node)
	}
	if start == nil {
		return false
	}

	m, payload := e.readMatrix()
	if len(m) == 0 {
		// A blank clipboard changes nothing, and is not pasted natively.
		return payload
	}
	if !hasRange && len(m) == 1 && len(m[0]) == 1 {
		return false
	}

	t := TableOf(start)
	row0, col0, _ := Position(start)
	e.mutate(func() {
		var last *document.Node
		for i, vals := range m {
			tr := t.Child(row0 + i)
			if tr == nil {
				break
			}
			for j, v := range vals {
				c := tr.Child(col0 + j)
				if c == nil {
					break
				}
				e.doc.SetText(c, v)
				last = c
			}
		}
		e.clearCellRange()
		if last != nil {
			e.doc.SetCaret(last, last.Len())
		}
	})
	return true
}

// readMatrix prefers clipboard text over the retained matrix. payload
// reports whether the clipboard held any text at all.
func (e *Engine) readMatrix() (m [][]string, payload bool) {
	if e.clip != nil {
		s, err := e.clip.ReadText()
		if err == nil && s != "" {
			return ParseMatrix(s), true
		}
		if err != nil {
			e.log.Printf("table: clipboard read: %v", err)
		}
	}
	return e.fallback, false
}
