// Package display renders simulation results as fixed-width text tables.
package display

import (
	"io"
	"strings"
)

// Alignment decides where a cell's text sits within its column.
type Alignment int

// Alignments supported by Table.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// A Table is a fixed-width text table. Every column is Width/NumCols
// characters wide. Cells longer than their column are not truncated.
type Table struct {
	Title     string
	Header    []string
	Rows      [][]string
	NumCols   int
	Width     int
	Alignment Alignment
}

// NewTable creates an empty left-aligned table.
func NewTable(numCols, width int) *Table {
	if numCols <= 0 {
		panic("table must have at least one column")
	}

	return &Table{
		NumCols: numCols,
		Width:   width,
	}
}

// WithAlignment sets the alignment of the header and the rows.
func (t *Table) WithAlignment(alignment Alignment) *Table {
	t.Alignment = alignment
	return t
}

// WithTitle sets the title printed centered above the table.
func (t *Table) WithTitle(title string) *Table {
	t.Title = title
	return t
}

// AddRow appends a row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Separator returns the line drawn below the title and the header.
func (t *Table) Separator() string {
	return strings.Repeat("-", max(t.Width, 0))
}

func (t *Table) colWidth() int {
	return t.Width / t.NumCols
}

func (t *Table) formatRow(cells []string) string {
	sb := strings.Builder{}
	for _, cell := range cells {
		sb.WriteString(pad(cell, t.colWidth(), t.Alignment))
	}

	return sb.String()
}

func (t *Table) String() string {
	lines := []string{}

	if t.Title != "" {
		lines = append(lines, centerTitle(t.Title, t.Width), t.Separator())
	}

	if len(t.Header) > 0 {
		lines = append(lines, t.formatRow(t.Header), t.Separator())
	}

	for _, row := range t.Rows {
		lines = append(lines, t.formatRow(row))
	}

	return strings.Join(lines, "\n")
}

// WriteTo writes the table followed by a newline.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String()+"\n")
	return int64(n), err
}

// pad fills s with spaces up to width. Centered text leans left when the
// padding is odd.
func pad(s string, width int, alignment Alignment) string {
	n := width - len(s)
	if n <= 0 {
		return s
	}

	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", n) + s
	case AlignCenter:
		left := n / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-left)
	default:
		return s + strings.Repeat(" ", n)
	}
}

// centerTitle centers the title over the whole table. Unlike cells, an odd
// padding puts the extra space on the left when the width is odd too.
func centerTitle(title string, width int) string {
	n := width - len(title)
	if n <= 0 {
		return title
	}

	left := n/2 + (n & width & 1)

	return strings.Repeat(" ", left) + title + strings.Repeat(" ", n-left)
}
