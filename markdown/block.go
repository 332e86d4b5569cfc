package markdown

import (
	"strings"
)

// BlockType identifies the kind of markdown block.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockFencedCode
	BlockHeading
	BlockHRule
	BlockTable
	BlockListItem
	BlockBlankLine
)

// BlockInfo records the source extent of a scanned block.
type BlockInfo struct {
	SourceLineStart int // first line index (0-based) in splitLines output
	SourceLineEnd   int // last line index (exclusive)
	Type            BlockType
}

// splitLines splits text into lines without their terminators. CRLF
// and lone CR endings are treated as LF.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// scanBlocks identifies block boundaries in lines. Tables are a header
// row followed by a delimiter row and any number of body rows.
func scanBlocks(lines []string) []BlockInfo {
	var blocks []BlockInfo

	inFencedBlock := false
	fencedBlockStart := 0

	inParagraph := false
	paragraphStart := 0

	emitBlock := func(typ BlockType, startLine, endLine int) {
		blocks = append(blocks, BlockInfo{
			SourceLineStart: startLine,
			SourceLineEnd:   endLine,
			Type:            typ,
		})
	}

	emitParagraph := func(currentLine int) {
		if inParagraph {
			emitBlock(BlockParagraph, paragraphStart, currentLine)
			inParagraph = false
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if isFenceDelimiter(line) {
			emitParagraph(i)
			if !inFencedBlock {
				inFencedBlock = true
				fencedBlockStart = i
				continue
			}
			// Closing fence: the block includes both fences.
			inFencedBlock = false
			emitBlock(BlockFencedCode, fencedBlockStart, i+1)
			continue
		}
		if inFencedBlock {
			continue
		}

		if strings.TrimSpace(line) == "" {
			emitParagraph(i)
			emitBlock(BlockBlankLine, i, i+1)
			continue
		}

		if isTableStart(lines, i) {
			emitParagraph(i)
			tableStart := i
			consumed := 2
			for j := i + 2; j < len(lines) && isTableRow(lines[j]); j++ {
				consumed++
			}
			emitBlock(BlockTable, tableStart, tableStart+consumed)
			i += consumed - 1 // -1 because loop increments
			continue
		}

		if _, level := headingLevel(line); level > 0 {
			emitParagraph(i)
			emitBlock(BlockHeading, i, i+1)
			continue
		}
		if isHorizontalRule(line) {
			emitParagraph(i)
			emitBlock(BlockHRule, i, i+1)
			continue
		}
		if _, ok := listItemText(line); ok {
			emitParagraph(i)
			emitBlock(BlockListItem, i, i+1)
			continue
		}

		if !inParagraph {
			inParagraph = true
			paragraphStart = i
		}
	}

	if inFencedBlock {
		emitBlock(BlockFencedCode, fencedBlockStart, len(lines))
	}
	emitParagraph(len(lines))
	return blocks
}

// leadingIndent reports whether line starts with at most three spaces
// and returns the rest.
func leadingIndent(line string) (string, bool) {
	rest := strings.TrimLeft(line, " ")
	return rest, len(line)-len(rest) <= 3
}

func isFenceDelimiter(line string) bool {
	rest, ok := leadingIndent(line)
	return ok && (strings.HasPrefix(rest, "```") || strings.HasPrefix(rest, "~~~"))
}

// headingLevel returns the text and level of an ATX heading, or a level
// of 0.
func headingLevel(line string) (string, int) {
	rest, ok := leadingIndent(line)
	if !ok {
		return "", 0
	}
	n := 0
	for n < len(rest) && rest[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return "", 0
	}
	if n < len(rest) && rest[n] != ' ' && rest[n] != '\t' {
		return "", 0
	}
	text := strings.TrimSpace(rest[n:])
	// An optional closing sequence of #s.
	if t := strings.TrimRight(text, "#"); t != text && (t == "" || strings.HasSuffix(t, " ")) {
		text = strings.TrimSpace(t)
	}
	return text, n
}

func isHorizontalRule(line string) bool {
	rest, ok := leadingIndent(line)
	if !ok {
		return false
	}
	rest = strings.ReplaceAll(strings.ReplaceAll(rest, " ", ""), "\t", "")
	if len(rest) < 3 {
		return false
	}
	c := rest[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	return strings.Count(rest, string(c)) == len(rest)
}

// listItemText returns the text of a bullet or ordered list item.
func listItemText(line string) (string, bool) {
	rest, ok := leadingIndent(line)
	if !ok || rest == "" {
		return "", false
	}
	switch rest[0] {
	case '-', '*', '+':
		if len(rest) == 1 {
			return "", true
		}
		if rest[1] == ' ' || rest[1] == '\t' {
			return strings.TrimSpace(rest[2:]), true
		}
		return "", false
	}
	n := 0
	for n < len(rest) && n < 9 && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(rest) || (rest[n] != '.' && rest[n] != ')') {
		return "", false
	}
	if n+1 == len(rest) {
		return "", true
	}
	if rest[n+1] != ' ' && rest[n+1] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest[n+2:]), true
}

// isTableRow reports whether line can be a pipe table row: it contains
// an unescaped pipe.
func isTableRow(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			return true
		}
	}
	return false
}

// isTableStart reports whether lines[i] is a table header: a row
// followed by a delimiter row with the same number of cells.
func isTableStart(lines []string, i int) bool {
	if !isTableRow(lines[i]) || i+1 >= len(lines) || !isTableSeparatorRow(lines[i+1]) {
		return false
	}
	return len(splitTableCells(lines[i])) == len(splitTableCells(lines[i+1]))
}

// isTableSeparatorRow reports whether line is a delimiter row such as
// "| --- | :-: |".
func isTableSeparatorRow(line string) bool {
	if !strings.Contains(line, "-") {
		return false
	}
	cells := splitTableCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = strings.TrimSuffix(strings.TrimPrefix(c, ":"), ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return false
		}
	}
	return true
}

// splitTableCells splits a table row on unescaped pipes, dropping the
// optional leading and trailing pipe, and unescapes "\|" in each cell.
// Cells are trimmed.
func splitTableCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			if r != '|' {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(cells, strings.TrimSpace(cur.String()))
}
