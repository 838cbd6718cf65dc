package storytime

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/library"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/shared/table"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

// handleMenuKey routes menu input. Printable keys build the filter
// query; the picker handles navigation and selection.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if m.query != "" {
			m.query = ""
			m.picker, _ = m.picker.UpdateQuery("")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyBackspace:
		if m.query == "" {
			return m, nil
		}
		runes := []rune(m.query)
		m.query = string(runes[:len(runes)-1])
		m.picker, _ = m.picker.UpdateQuery(m.query)
		return m, nil

	case tea.KeySpace:
		m.query += " "
		m.picker, _ = m.picker.UpdateQuery(m.query)
		return m, nil

	case tea.KeyRunes:
		m.query += string(msg.Runes)
		m.picker, _ = m.picker.UpdateQuery(m.query)
		return m, nil
	}

	var chosen *book.Book
	m.picker, _, chosen = m.picker.HandleKey(msg)
	if chosen != nil {
		return m, openStoryCmd(m.deps.Catalog, *chosen)
	}
	return m, nil
}

// menuView lays out the story picker beside the library overview.
func (m Model) menuView() string {
	title := styles.TitleStyle.Render("Fairytale Sound Effects")
	subtitle := styles.HelpStyle.Render("pick a story, read it out loud, and listen")

	var search string
	if m.query != "" {
		search = styles.StatusBarStyle.Render("search: ") + m.query
	} else {
		search = styles.HelpStyle.Render("type to search stories")
	}

	leftWidth := m.width * 3 / 5
	if leftWidth < 40 {
		leftWidth = min(m.width, 40)
	}
	rightWidth := m.width - leftWidth - 1

	left := m.picker.View(leftWidth)
	if m.picker.BookCount() == 0 {
		left = styles.WarningStyle.Render("no stories found")
	}

	var row string
	if rightWidth >= 24 {
		panelHeight := max(lipgloss.Height(left), 8)
		right := m.libraryPanel(rightWidth, panelHeight)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	} else {
		row = left
	}

	footer := styles.HelpStyle.Render("↑/↓ choose · enter open · esc quit") +
		"   " + styles.HelpStyle.Render("audio: "+m.deps.AudioDir)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		search,
		row,
		m.menuNotice(),
		footer,
	)
}

func (m Model) menuNotice() string {
	if m.notice == "" {
		return ""
	}
	return m.styledNotice()
}

// libraryPanel renders the per-category clip overview.
func (m Model) libraryPanel(width, height int) string {
	var content string
	switch {
	case m.overviewErr != nil:
		content = styles.ErrorStyle.Render("library scan failed") + "\n" +
			styles.HelpStyle.Render(styles.TruncateString(m.overviewErr.Error(), width-4))
	case len(m.overview) == 0:
		content = styles.HelpStyle.Render("scanning...")
	default:
		content = m.overviewTable(width - 4)
	}

	rightTitle := ""
	if n := library.TotalClips(m.overview); n > 0 {
		rightTitle = styles.FormatClipCount(n)
	}

	return styles.RenderWithTitleBorder(content, "Library", rightTitle,
		width, height, false, styles.TextPrimaryColor, styles.BorderHighlightFocusColor)
}

func (m Model) overviewTable(width int) string {
	cols := []table.ColumnConfig{
		{Key: "category", Title: "Category", MinWidth: 8},
		{Key: "class", Title: "Class", Width: 12, HideBelow: 34},
		{Key: "clips", Title: "Clips", Width: 7},
	}

	rows := make([]table.Row, 0, len(m.overview))
	for _, row := range m.overview {
		clips := styles.FormatClipCount(row.Clips)
		if row.Missing {
			clips = "missing"
		} else if row.Clips == 0 {
			clips = "empty"
		}
		rows = append(rows, table.Row{
			"category": row.Category,
			"class":    strings.ReplaceAll(row.Class.String(), "_", " "),
			"clips":    clips,
		})
	}

	rendered := table.Render(cols, rows, width)

	missing := 0
	for _, row := range m.overview {
		if row.Missing {
			missing++
		}
	}
	if missing > 0 {
		rendered += "\n" + styles.WarningStyle.Render(
			fmt.Sprintf("missing folders: %d", missing))
	}
	return rendered
}
