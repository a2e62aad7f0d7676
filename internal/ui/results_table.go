package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// ColumnDef defines a column in a ResultsTable.
type ColumnDef struct {
	Name       string         // column name, used for width lookups
	WidthRatio float64        // proportion of available width (0.0-1.0), 0 means fixed width
	MinWidth   int            // minimum width in characters
	MaxWidth   int            // maximum width (0 = no limit)
	Align      Alignment      // text alignment
	Style      lipgloss.Style // style applied to cells in this column
}

// ResultRow represents a single row in the results table.
type ResultRow struct {
	Num   int      // row number (1-indexed)
	Cells []string // cell values for each column
}

// ResultsTable renders query results in a minimal bordered table.
type ResultsTable struct {
	display *DisplayContext
	columns []ColumnDef
	rows    []ResultRow
}

// Standard column definitions shared across query result types.
var (
	// ColNum is the row number column (fixed width, right-aligned, muted).
	ColNum = ColumnDef{
		Name:     "num",
		MinWidth: 4,
		MaxWidth: 6,
		Align:    AlignRight,
		Style:    Muted,
	}

	// ColProject is the project identifier column.
	ColProject = ColumnDef{
		Name:       "project",
		WidthRatio: 0.25,
		MinWidth:   12,
		MaxWidth:   40,
		Align:      AlignLeft,
		Style:      Accent,
	}

	// ColStatus is the project status column.
	ColStatus = ColumnDef{
		Name:     "status",
		MinWidth: 9,
		MaxWidth: 12,
		Align:    AlignLeft,
	}

	// ColDetail is the main content column (match path, description).
	ColDetail = ColumnDef{
		Name:       "detail",
		WidthRatio: 0.55,
		MinWidth:   24,
		MaxWidth:   100,
		Align:      AlignLeft,
	}

	// ColUpdated is the last-updated timestamp column.
	ColUpdated = ColumnDef{
		Name:       "updated",
		WidthRatio: 0.20,
		MinWidth:   10,
		MaxWidth:   25,
		Align:      AlignLeft,
		Style:      Muted,
	}
)

// Standard layouts for each query type.
var (
	// MatchLayout is used for FIND results: [num, project, detail, updated]
	MatchLayout = []ColumnDef{ColNum, ColProject, ColDetail, ColUpdated}

	// ProjectLayout is used for WHERE results: [num, project, status, detail, updated]
	ProjectLayout = []ColumnDef{ColNum, ColProject, ColStatus, ColDetail, ColUpdated}
)

// NewResultsTable creates a new ResultsTable with the given display context
// and column layout.
func NewResultsTable(display *DisplayContext, columns []ColumnDef) *ResultsTable {
	return &ResultsTable{
		display: display,
		columns: columns,
		rows:    make([]ResultRow, 0),
	}
}

// AddRow adds a row to the table.
func (t *ResultsTable) AddRow(row ResultRow) {
	t.rows = append(t.rows, row)
}

// ColumnWidth returns the calculated width for a column by name, so callers
// can truncate content to the actual available width.
func (t *ResultsTable) ColumnWidth(name string) int {
	widths := t.calculateWidths()
	for i, col := range t.columns {
		if col.Name == name {
			return widths[i]
		}
	}
	return 60
}

// calculateWidths computes column widths based on terminal size and column
// definitions.
func (t *ResultsTable) calculateWidths() []int {
	widths := make([]int, len(t.columns))

	var totalRatio float64
	var fixedWidth int
	const columnPadding = 2

	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
				widths[i] = col.MaxWidth
			}
			fixedWidth += widths[i]
		} else {
			totalRatio += col.WidthRatio
		}
	}

	totalPadding := (len(t.columns) - 1) * columnPadding
	const leftMargin = 2
	available := t.display.AvailableWidth(leftMargin) - fixedWidth - totalPadding
	if available < 0 {
		available = 0
	}

	for i, col := range t.columns {
		if col.WidthRatio > 0 {
			ratio := col.WidthRatio / totalRatio
			width := int(float64(available) * ratio)
			if width < col.MinWidth {
				width = col.MinWidth
			}
			if col.MaxWidth > 0 && width > col.MaxWidth {
				width = col.MaxWidth
			}
			widths[i] = width
		}
	}

	return widths
}

// Render generates the table output as a string.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.calculateWidths()

	tableRows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		tableRow := make([]string, len(t.columns))
		for j := range t.columns {
			if j < len(row.Cells) {
				tableRow[j] = row.Cells[j]
			}
		}
		tableRows[i] = tableRow
	}

	tbl := table.New().
		Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Left:   "",
			Right:  "",
			Middle: "─",
		}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(true).
		BorderColumn(false).
		BorderStyle(Muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}

			colDef := t.columns[col]
			style := colDef.Style
			if style.Value() == "" {
				style = lipgloss.NewStyle()
			}

			style = style.Width(widths[col])

			switch colDef.Align {
			case AlignRight:
				style = style.Align(lipgloss.Right)
			case AlignCenter:
				style = style.Align(lipgloss.Center)
			default:
				style = style.Align(lipgloss.Left)
			}

			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}

			return style
		}).
		Rows(tableRows...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates a string to maxLen, adding ellipsis if
// needed. It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}

	truncated := s[:maxLen-3]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// FormatRowNum formats a row number with consistent width.
func FormatRowNum(num, maxNum int) string {
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}
