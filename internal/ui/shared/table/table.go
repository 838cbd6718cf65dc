// Package table renders fixed-layout text tables for the vocabulary,
// library, and journal listings.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnConfig describes one table column.
type ColumnConfig struct {
	Key       string // stable identifier, also the row map key
	Title     string // header text; Key is used when empty
	Width     int    // fixed width; 0 means flex
	MinWidth  int    // floor for flex columns
	MaxWidth  int    // cap for flex columns; 0 means uncapped
	HideBelow int    // hide the column when the table is narrower than this
}

// Row maps column keys to cell text. Cells must be plain text; width
// accounting happens before any styling.
type Row map[string]string

const columnSeparator = " "

// Render lays out a header, a rule, and the rows inside totalWidth.
// Columns with HideBelow drop out on narrow tables; the rest share the
// width via calculateColumnWidths.
func Render(cols []ColumnConfig, rows []Row, totalWidth int) string {
	visible := filterVisibleColumns(cols, totalWidth)
	if len(visible) == 0 {
		return ""
	}
	widths := calculateColumnWidths(visible, totalWidth)

	var b strings.Builder

	headers := make([]string, len(visible))
	rule := make([]string, len(visible))
	for i, col := range visible {
		title := col.Title
		if title == "" {
			title = col.Key
		}
		headers[i] = fitCell(title, widths[i])
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(strings.Join(headers, columnSeparator))
	b.WriteString("\n")
	b.WriteString(strings.Join(rule, columnSeparator))

	for _, row := range rows {
		b.WriteString("\n")
		cells := make([]string, len(visible))
		for i, col := range visible {
			cells[i] = fitCell(row[col.Key], widths[i])
		}
		b.WriteString(strings.Join(cells, columnSeparator))
	}

	return b.String()
}

// fitCell pads or truncates a cell to exactly width terminal columns.
func fitCell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
