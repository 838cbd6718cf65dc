package bookpicker

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	code := m.Run()
	zone.Close()
	os.Exit(code)
}

// catalog returns three stories spanning both sources.
func catalog() []book.Book {
	return []book.Book{
		{Title: "Cinderella", Author: "Charles Perrault", Source: book.SourceBuiltin, Format: book.FormatMarkdown, Path: "cinderella.md"},
		{Title: "The Three Little Pigs", Author: "James Halliwell", Source: book.SourceBuiltin, Format: book.FormatMarkdown, Path: "pigs.md"},
		{Title: "The Reluctant Dragon", Author: "Kenneth Grahame", Source: book.SourceUser, Format: book.FormatMarkdown, Path: "dragon.md"},
	}
}

func selectedTitle(t *testing.T, m Model) string {
	t.Helper()
	require.NotNil(t, m.Selected())
	return m.Selected().Title
}

func TestLifecycle(t *testing.T) {
	m := New()
	assert.False(t, m.IsActive())
	assert.Zero(t, m.BookCount())
	assert.Nil(t, m.Selected())

	m = m.Activate(catalog())
	assert.True(t, m.IsActive())
	assert.Equal(t, 3, m.BookCount())
	assert.Equal(t, "Cinderella", selectedTitle(t, m))

	m = m.Deactivate()
	assert.False(t, m.IsActive())
	assert.Nil(t, m.Selected())
}

func TestCursorWrapsBothWays(t *testing.T) {
	m := New().Activate(catalog())

	m = m.Next()
	assert.Equal(t, "The Three Little Pigs", selectedTitle(t, m))
	m = m.Next()
	assert.Equal(t, "The Reluctant Dragon", selectedTitle(t, m))
	m = m.Next()
	assert.Equal(t, "Cinderella", selectedTitle(t, m), "Next wraps to the top")

	m = m.Prev()
	assert.Equal(t, "The Reluctant Dragon", selectedTitle(t, m), "Prev wraps to the bottom")
}

func TestUpdateQuery(t *testing.T) {
	books := []book.Book{
		{Title: "Cinderella", Author: "Charles Perrault", Source: book.SourceBuiltin, Format: book.FormatMarkdown, Path: "cinderella.md"},
		{Title: "The Snow Queen", Author: "Hans Christian Andersen", Source: book.SourceUser, Format: book.FormatMarkdown, Path: "snow.md"},
		{Title: "The Little Mermaid", Author: "Hans Christian Andersen", Source: book.SourceUser, Format: book.FormatMarkdown, Path: "mermaid.md"},
	}

	tests := []struct {
		name        string
		query       string
		wantMatches int
		wantTitle   string
	}{
		{"title match", "the", 2, "The Snow Queen"},
		{"author match", "perrault", 1, "Cinderella"},
		{"source match", "user", 2, "The Snow Queen"},
		{"no match", "nonexistent", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New().Activate(books)

			m, ok := m.UpdateQuery(tt.query)
			assert.Equal(t, tt.wantMatches > 0, ok)
			assert.Len(t, m.filtered, tt.wantMatches)
			if tt.wantTitle != "" {
				assert.Equal(t, tt.wantTitle, selectedTitle(t, m))
			}
		})
	}
}

func TestHandleKey_MovesCursor(t *testing.T) {
	m := New().Activate(catalog()[:2])

	steps := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, "The Three Little Pigs"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, "Cinderella"},
		{tea.KeyMsg{Type: tea.KeyUp}, "The Three Little Pigs"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, "Cinderella"},
	}

	for _, step := range steps {
		var consumed bool
		var chosen *book.Book
		m, consumed, chosen = m.HandleKey(step.msg)

		assert.True(t, consumed, "key %s", step.msg)
		assert.Nil(t, chosen, "key %s", step.msg)
		assert.Equal(t, step.want, selectedTitle(t, m), "after key %s", step.msg)
	}
}

func TestHandleKey_EnterReturnsSelection(t *testing.T) {
	m := New().Activate(catalog()).Next()

	m, consumed, chosen := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, consumed)
	require.NotNil(t, chosen)
	assert.Equal(t, "The Three Little Pigs", chosen.Title)

	// The cursor survives a round trip back to the menu.
	assert.True(t, m.IsActive())
	assert.Equal(t, "The Three Little Pigs", selectedTitle(t, m))
}

func TestHandleKey_EscCloses(t *testing.T) {
	m, consumed, chosen := New().Activate(catalog()).HandleKey(tea.KeyMsg{Type: tea.KeyEscape})

	assert.True(t, consumed)
	assert.Nil(t, chosen)
	assert.False(t, m.IsActive())
}

func TestHandleKey_InactiveIgnoresKeys(t *testing.T) {
	_, consumed, chosen := New().HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, consumed)
	assert.Nil(t, chosen)
}

func TestHandleMouse_WheelScrolls(t *testing.T) {
	m := New().Activate(catalog()[:2])

	m, chosen := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Nil(t, chosen)
	assert.Equal(t, "The Three Little Pigs", selectedTitle(t, m))

	m, chosen = m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Nil(t, chosen)
	assert.Equal(t, "Cinderella", selectedTitle(t, m))
}

func TestHandleMouse_StrayClick(t *testing.T) {
	m := New().Activate(catalog())

	// Without a zone.Scan pass nothing is in bounds, so a stray click
	// selects nothing.
	m, chosen := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease, X: 2, Y: 1})
	assert.Nil(t, chosen)
	assert.Equal(t, "Cinderella", selectedTitle(t, m))
}

func TestView(t *testing.T) {
	t.Run("empty until active with matches", func(t *testing.T) {
		assert.Empty(t, New().View(80))
		assert.Empty(t, New().Activate(nil).View(80))
	})

	t.Run("lists titles, authors, and sources", func(t *testing.T) {
		view := New().Activate(catalog()).View(80)

		for _, want := range []string{"Cinderella", "The Reluctant Dragon", "Charles Perrault", "builtin", "user"} {
			assert.Contains(t, view, want)
		}
	})

	t.Run("missing author placeholder", func(t *testing.T) {
		stories := []book.Book{{Title: "General", Source: book.SourceBuiltin, Format: book.FormatMarkdown, Path: "general.md"}}
		assert.Contains(t, New().Activate(stories).View(80), "unknown")
	})

	t.Run("scroll position", func(t *testing.T) {
		titles := []string{
			"Cinderella", "The Three Little Pigs", "The Snow Queen",
			"The Little Mermaid", "The Reluctant Dragon", "Hansel and Gretel",
			"Rapunzel", "The Frog Prince", "Puss in Boots", "Tom Thumb",
		}
		books := make([]book.Book, 0, len(titles))
		for _, title := range titles {
			books = append(books, book.Book{Title: title, Source: book.SourceUser, Format: book.FormatMarkdown, Path: title + ".md"})
		}

		view := New().Activate(books).View(80)
		assert.Contains(t, view, "1-8 of 10 stories")
	})
}
