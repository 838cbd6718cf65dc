// Package bookpicker provides the story selection list for the menu screen.
package bookpicker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

// Column layout. Rows render as " source │ title │ author " with the
// title absorbing whatever width the panel has to spare.
const (
	maxVisibleRows = 8
	sourceColWidth = 7
	authorColWidth = 18
	minTitleWidth  = 12
)

// Model is an immutable picker over the story catalog.
type Model struct {
	books        []book.Book
	filtered     []book.Book
	query        string
	cursor       int
	scrollOffset int
	maxVisible   int
	active       bool
}

// New creates an inactive picker with no catalog.
func New() Model {
	return Model{
		books:      []book.Book{},
		filtered:   []book.Book{},
		maxVisible: maxVisibleRows,
	}
}

// SetBooks replaces the catalog, re-filtering when the picker is open.
func (m Model) SetBooks(books []book.Book) Model {
	m.books = books
	if m.active {
		m = m.applyFilter()
	}
	return m
}

// IsActive reports whether the picker is showing.
func (m Model) IsActive() bool {
	return m.active
}

// BookCount returns the catalog size before filtering.
func (m Model) BookCount() int {
	return len(m.books)
}

// Selected returns the highlighted book, or nil when the picker is
// closed or the filter matches nothing.
func (m Model) Selected() *book.Book {
	if !m.active || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

// Activate opens the picker over the given catalog with a clear filter.
func (m Model) Activate(books []book.Book) Model {
	m.books = books
	m.active = true
	return m.clearFilter().applyFilter()
}

// Deactivate closes the picker and drops its filter state.
func (m Model) Deactivate() Model {
	m.active = false
	m = m.clearFilter()
	m.filtered = nil
	return m
}

func (m Model) clearFilter() Model {
	m.query = ""
	m.cursor = 0
	m.scrollOffset = 0
	return m
}

// UpdateQuery re-filters under a new query and reports whether anything
// still matches.
func (m Model) UpdateQuery(query string) (Model, bool) {
	m.query = query
	m = m.applyFilter()
	return m, len(m.filtered) > 0
}

// matches checks the lowercased query against title, author, and source.
func matches(b book.Book, query string) bool {
	return query == "" ||
		strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author), query) ||
		strings.Contains(string(b.Source), query)
}

func (m Model) applyFilter() Model {
	query := strings.ToLower(m.query)

	filtered := make([]book.Book, 0, len(m.books))
	for _, b := range m.books {
		if matches(b, query) {
			filtered = append(filtered, b)
		}
	}
	m.filtered = filtered

	if m.cursor >= len(filtered) {
		m.cursor = 0
		m.scrollOffset = 0
	}
	return m
}

// Next moves the cursor down, wrapping at the end.
func (m Model) Next() Model {
	return m.move(1)
}

// Prev moves the cursor up, wrapping at the start.
func (m Model) Prev() Model {
	return m.move(-1)
}

func (m Model) move(delta int) Model {
	n := len(m.filtered)
	if n == 0 {
		return m
	}
	m.cursor = (m.cursor + delta + n) % n

	// Drag the scroll window along with the cursor.
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.maxVisible {
		m.scrollOffset = m.cursor - m.maxVisible + 1
	}
	return m
}

// HandleKey processes key events while the picker is showing. It reports
// whether the key was consumed, and returns the chosen book on enter.
func (m Model) HandleKey(msg tea.KeyMsg) (Model, bool, *book.Book) {
	if !m.active {
		return m, false, nil
	}

	switch msg.String() {
	case "ctrl+n", "down", "j":
		return m.Next(), true, nil
	case "ctrl+p", "up", "k":
		return m.Prev(), true, nil
	case "enter":
		// The picker stays open so the cursor survives a round trip
		// back to the menu.
		return m, true, m.Selected()
	case "esc":
		return m.Deactivate(), true, nil
	}

	return m, false, nil
}

// HandleMouse moves the cursor and selects rows from mouse input.
// Returns the chosen book when a row is clicked.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, *book.Book) {
	if !m.active {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			return m.Prev(), nil
		}
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			return m.Next(), nil
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := m.scrollOffset; i < m.windowEnd(); i++ {
			if zone.Get(m.zoneID(i)).InBounds(msg) {
				m.cursor = i
				return m, m.Selected()
			}
		}
	}

	return m, nil
}

// windowEnd returns the index one past the last visible row.
func (m Model) windowEnd() int {
	return min(m.scrollOffset+m.maxVisible, len(m.filtered))
}

// zoneID names the mouse zone for the row at filtered index i.
func (m Model) zoneID(i int) string {
	return fmt.Sprintf("bookpicker:%d", i)
}

// View renders the picker rows. The outermost model must pass its final
// output through zone.Scan for the row zones to resolve.
func (m Model) View(maxWidth int) string {
	if !m.active || len(m.filtered) == 0 {
		return ""
	}

	// Separators, padding, and the border frame the three columns.
	frame := 1 + sourceColWidth + 3 + 3 + authorColWidth + 1 + 2
	titleWidth := max(maxWidth-frame, minTitleWidth)
	innerWidth := maxWidth - 2

	rowStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Width(innerWidth)
	cursorStyle := rowStyle.Background(styles.SelectionBackgroundColor)

	var lines []string
	for i := m.scrollOffset; i < m.windowEnd(); i++ {
		style := rowStyle
		if i == m.cursor {
			style = cursorStyle
		}
		row := renderRow(m.filtered[i], titleWidth)
		lines = append(lines, zone.Mark(m.zoneID(i), style.Render(row)))
	}

	if len(m.filtered) > m.maxVisible {
		position := fmt.Sprintf(" %d-%d of %d stories",
			m.scrollOffset+1, m.windowEnd(), len(m.filtered))
		lines = append(lines, lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Render(position))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Render(strings.Join(lines, "\n"))
}

// renderRow lays one catalog entry into the three columns.
func renderRow(b book.Book, titleWidth int) string {
	author := b.Author
	if author == "" {
		author = "unknown"
	}

	return fmt.Sprintf(" %-*s │ %-*s │ %-*s ",
		sourceColWidth, string(b.Source),
		titleWidth, styles.TruncateString(b.Title, titleWidth),
		authorColWidth, styles.TruncateString(author, authorColWidth))
}
