package report

import (
	"strings"
)

// Table is a plain-text table formatter with dynamic column widths.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths []int // per-column wrap width, 0 = unlimited
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make([]int, len(headers)),
	}
}

// SetColumnMaxWidth caps a column's width; longer cells wrap at word
// boundaries.
func (t *Table) SetColumnMaxWidth(col, width int) {
	if col >= 0 && col < len(t.maxWidths) {
		t.maxWidths[col] = width
	}
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells up front so widths account for the wrapped lines.
	wrapped := make([][][]string, len(t.rows))
	for ri, row := range t.rows {
		wrapped[ri] = make([][]string, len(row))
		for ci, cell := range row {
			wrapped[ri][ci] = wrapText(cell, t.maxWidths[ci])
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range wrapped {
		for ci, lines := range row {
			for _, line := range lines {
				if len(line) > widths[ci] {
					widths[ci] = len(line)
				}
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	writeLine(t.headers)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)

	for _, row := range wrapped {
		height := 1
		for _, lines := range row {
			if len(lines) > height {
				height = len(lines)
			}
		}
		for li := 0; li < height; li++ {
			line := make([]string, len(t.headers))
			for ci, lines := range row {
				if li < len(lines) {
					line[ci] = lines[li]
				}
			}
			writeLine(line)
		}
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to the given width at word boundaries, splitting
// words longer than the width. A width of 0 disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{text}
	}
	return lines
}
