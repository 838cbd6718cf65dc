// Package nolibrary provides the empty state view shown when the audio
// library root does not exist yet.
package nolibrary

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olincollege/fairytale-sound-effects/internal/ui/shared/noteart"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

// Model holds the nolibrary view state.
type Model struct {
	width    int
	height   int
	audioDir string
}

// New creates the empty state view for the audio directory that was
// looked up and not found.
func New(audioDir string) Model {
	return Model{audioDir: audioDir}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the empty state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.TextPrimaryColor).
		MarginTop(1).
		Render("Oh no! The sound effects have gone missing!")

	body := lipgloss.NewStyle().
		Foreground(styles.TextDescriptionColor).
		Render(strings.Join([]string{
			"No Audio library found at " + m.audioDir + ".",
			"",
			"Try one of these options:",
			"",
			"  1. (Recommended) Run 'fairytale init' to scaffold the Audio library",
			"  2. Use the --audio-dir flag: fairytale --audio-dir /path/to/library",
			"  3. Run fairytale from a directory containing Audio/",
			"  4. Set audio_dir in your config file (~/.fairytale/config.yaml)",
		}, "\n"))

	hint := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		Italic(true).
		MarginTop(2).
		Render("Press q to quit")

	content := strings.Join([]string{
		noteart.BuildNoteArt(),
		"",
		title,
		"",
		body,
		hint,
	}, "\n")

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}
