package storytime

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/olincollege/fairytale-sound-effects/internal/book"
	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/log"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/shared/editor"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

func (m Model) handleReadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m = m.closeStory()
		m.quitting = true
		return m, tea.Quit
	}
	if m.composing {
		return m.handleComposeKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleComposeKey runs while the utterance line has focus: enter
// speaks the line, esc returns to browsing, everything else edits.
func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.composing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.cueBusy {
			return m, nil
		}
		m.cueBusy = true
		m.input.Reset()
		log.Debug(log.CatUI, "Utterance submitted", "text", text)
		return m, tea.Batch(speakCmd(m.deps.Session, text), phaseTickCmd())
	}

	if m.cueBusy {
		// The line is frozen while a clip plays.
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleBrowseKey runs while the story has focus.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Compose):
		m.composing = true
		m.showHelp = false
		m = m.layout()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.AddPhrase):
		f := newAddPhraseForm()
		m.form = &f
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if m.story.Source != book.SourceUser {
			var cmd tea.Cmd
			m, cmd = m.setNotice(noticeInfo, "built-in stories are read-only; run fairytale init to copy them")
			return m, cmd
		}
		return m, editor.OpenCmd(m.story.Path)

	case key.Matches(msg, m.keys.Reload):
		return m, reloadStoryCmd(m.deps.Catalog, m.story.Book, true)

	case key.Matches(msg, m.keys.Back):
		m = m.closeStory()
		m.screen = screenMenu
		m.query = ""
		m.notice = ""
		m.picker = m.picker.Activate(m.deps.Catalog.Books())
		return m, loadOverviewCmd(m.deps.Scanner, m.deps.Session.Vocabulary())

	case key.Matches(msg, m.keys.Quit):
		m = m.closeStory()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m = m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// readingView stacks the story panel over the utterance line, the
// status row, and the key help.
func (m Model) readingView() string {
	panel := styles.RenderWithTitleBorder(
		m.viewport.View(),
		m.story.Title,
		m.phaseBadge(),
		m.width, m.viewport.Height+2,
		!m.composing,
		styles.TextPrimaryColor,
		styles.BorderHighlightFocusColor,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		panel,
		m.inputRow(),
		m.statusRow(),
		m.helpRow(),
	)
}

// phaseBadge names the engine phase in the panel title while a cue is
// being worked, and stays empty at rest.
func (m Model) phaseBadge() string {
	phase := m.deps.Session.Phase()
	if phase == cue.PhaseIdle {
		return ""
	}
	return "♪ " + string(phase)
}

func (m Model) inputRow() string {
	if m.cueBusy {
		return styles.CueHighlightStyle.Render("♪ ") + styles.HelpStyle.Render("playing...")
	}
	return m.input.View()
}

func (m Model) statusRow() string {
	c := m.deps.Session.Counts()
	cues := c.Cues - m.baseCounts.Cues
	misses := c.Misses - m.baseCounts.Misses
	faults := c.Faults - m.baseCounts.Faults

	tally := fmt.Sprintf("♪ %d cues · %d misses", cues, misses)
	if faults > 0 {
		tally += fmt.Sprintf(" · %d faults", faults)
	}
	segments := []string{styles.StatusBarStyle.Render(tally)}

	if cues > 0 || faults > 0 {
		if loc, ok := m.deps.Session.LastLocation(); ok {
			last := "last: " + loc.String()
			if clip, okClip := m.deps.Session.LastClip(); okClip {
				last += " · " + clip
			}
			segments = append(segments, styles.StatusBarStyle.Render(last))
		}
	}
	if notice := m.styledNotice(); notice != "" {
		segments = append(segments, notice)
	}

	return ansi.Truncate(strings.Join(segments, "   "), m.width, "…")
}

func (m Model) styledNotice() string {
	if m.notice == "" {
		return ""
	}
	switch m.noticeLevel {
	case noticeSuccess:
		return styles.SuccessStyle.Render(m.notice)
	case noticeWarning:
		return styles.WarningStyle.Render(m.notice)
	case noticeError:
		return styles.ErrorStyle.Render(m.notice)
	default:
		return styles.StatusBarStyle.Render(m.notice)
	}
}

func (m Model) helpRow() string {
	h := m.help
	h.ShowAll = m.showHelp
	return h.View(m.keys)
}

// renderStory converts the open story's body for the viewport.
func (m Model) renderStory() string {
	width := max(m.viewport.Width, 20)
	if m.story.Format == book.FormatMarkdown {
		return m.renderMarkdown(m.story.Body, width)
	}
	return wordwrap.String(m.story.Body, width)
}

// renderMarkdown renders through glamour. Renderer construction reads
// terminal state and can panic under exotic TERM values, so fall back
// to plain wrapped text.
func (m Model) renderMarkdown(body string, width int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = wordwrap.String(body, width)
		}
	}()

	style := "light"
	if styles.DarkBackground() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(body, width)
	}
	out, err := renderer.Render(body)
	if err != nil {
		return wordwrap.String(body, width)
	}
	return out
}
