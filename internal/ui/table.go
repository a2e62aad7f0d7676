package ui

import "strings"

// Table is a minimal borderless table: columns are left-aligned and
// separated by fixed padding. Used for quick listings where the
// bordered ResultsTable would be overkill.
type Table struct {
	rows    [][]string
	widths  []int
	padding int
}

// NewTable creates a table with the given number of columns.
func NewTable(cols int) *Table {
	return &Table{widths: make([]int, cols), padding: 2}
}

// SetPadding sets the spacing between columns.
func (t *Table) SetPadding(padding int) {
	t.padding = padding
}

// AddRow appends a row. Extra cells beyond the column count are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	for i := range row {
		if i >= len(cells) {
			break
		}
		row[i] = cells[i]
		if w := len(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table. The last column is never padded so lines
// carry no trailing spaces.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(gap)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.widths[i]-len(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// List renders an indented bullet list.
type List struct {
	items  []string
	indent string
	bullet string
}

// NewList creates a list with two-space indent and a dot bullet.
func NewList() *List {
	return &List{indent: "  ", bullet: "•"}
}

// SetIndent sets the indentation string.
func (l *List) SetIndent(indent string) {
	l.indent = indent
}

// SetBullet sets the bullet character.
func (l *List) SetBullet(bullet string) {
	l.bullet = bullet
}

// Add appends an item.
func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

// String renders the list, one item per line.
func (l *List) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(l.indent + l.bullet + " " + item + "\n")
	}
	return sb.String()
}
