package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header   string
	MaxWidth int    // 0 means unlimited
	Align    string // "left", "right"
}

// Table represents a data table
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
	}
}

// AddRow adds a row to the table. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) {
				rows[r][i] = Truncate(row[i], t.Columns[i].MaxWidth)
			}
		}
	}

	// Column widths from content, measured in terminal cells
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = lipgloss.Width(col.Header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	header := make([]string, len(t.Columns))
	separator := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = pad(col.Header, widths[i], "left")
		separator[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(header, "  ")))
	b.WriteString("\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(separator, "  ")))
	b.WriteString("\n")

	for idx, row := range rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = pad(cell, widths[i], t.Columns[i].Align)
		}

		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}

	return b.String()
}

// Truncate shortens s to at most max cells, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	if max <= 0 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func pad(s string, width int, align string) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if align == "right" {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", StyleAccent.Render(key), value)
}
