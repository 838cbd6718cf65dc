package table

// minColumnWidth keeps every column wide enough for at least "…" plus a
// character. Icon columns get by on 2; text columns usually want 3.
const minColumnWidth = 2

// calculateColumnWidths splits totalWidth across the columns.
//
// Fixed columns (Width > 0) take their width first. Whatever remains
// after the (n-1) single-char separators is shared evenly among the flex
// columns, with the division remainder handed to the leftmost ones.
// MinWidth and MaxWidth bound flex columns only; minColumnWidth bounds
// everything at the end.
func calculateColumnWidths(cols []ColumnConfig, totalWidth int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	var flex []int
	remaining := totalWidth - (len(cols) - 1)
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
			continue
		}
		flex = append(flex, i)
	}

	if len(flex) > 0 && remaining > 0 {
		share, extra := remaining/len(flex), remaining%len(flex)
		for j, i := range flex {
			w := share
			if j < extra {
				w++
			}
			w = max(w, cols[i].MinWidth, minColumnWidth)
			if limit := cols[i].MaxWidth; limit > 0 && w > limit {
				w = limit
			}
			widths[i] = w
		}
	}

	// Everything lands at the floor at least, starved flex included.
	for i, w := range widths {
		widths[i] = max(w, minColumnWidth)
	}
	return widths
}

// filterVisibleColumns drops columns whose HideBelow threshold exceeds
// the current table width.
func filterVisibleColumns(cols []ColumnConfig, totalWidth int) []ColumnConfig {
	visible := make([]ColumnConfig, 0, len(cols))
	for _, col := range cols {
		if col.HideBelow == 0 || totalWidth >= col.HideBelow {
			visible = append(visible, col)
		}
	}
	return visible
}
