package storytime

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olincollege/fairytale-sound-effects/internal/cue"
	"github.com/olincollege/fairytale-sound-effects/internal/ui/styles"
)

// formField identifies which add-phrase field has focus.
type formField int

const (
	fieldCategory formField = iota
	fieldPhrase
	fieldClass
)

const formFieldCount = 3

// phraseAddedMsg is sent when the form submits a valid entry.
type phraseAddedMsg struct {
	entry cue.PhraseEntry
}

// addPhraseCancelMsg is sent when the form is dismissed.
type addPhraseCancelMsg struct{}

// addPhraseForm collects a category, a phrase, and an optional class.
// The class only matters for brand-new categories; existing categories
// keep their class no matter what the toggle says.
type addPhraseForm struct {
	category textinput.Model
	phrase   textinput.Model
	effect   bool // false = music (the default class), true = sound effect
	focus    formField
	errText  string
}

func newAddPhraseForm() addPhraseForm {
	category := textinput.New()
	category.Placeholder = "Dragon"
	category.Prompt = ""
	category.CharLimit = 64
	category.Width = 36
	category.Focus()

	phrase := textinput.New()
	phrase.Placeholder = "the dragon roared"
	phrase.Prompt = ""
	phrase.CharLimit = 128
	phrase.Width = 36

	return addPhraseForm{
		category: category,
		phrase:   phrase,
		focus:    fieldCategory,
	}
}

// Update handles form input: tab/shift+tab cycle fields, space flips
// the class toggle when it has focus, enter submits, esc cancels.
// Non-key messages pass through to the focused input for cursor blinks.
func (f addPhraseForm) Update(msg tea.Msg) (addPhraseForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.forward(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return addPhraseCancelMsg{} }
	case "tab":
		return f.cycle(1), nil
	case "shift+tab":
		return f.cycle(-1), nil
	case "enter":
		return f.submit()
	case " ", "left", "right":
		if f.focus == fieldClass {
			f.effect = !f.effect
			return f, nil
		}
	case "up", "down":
		if f.focus == fieldClass {
			delta := 1
			if keyMsg.String() == "up" {
				delta = -1
			}
			return f.cycle(delta), nil
		}
	}

	return f.forward(msg)
}

func (f addPhraseForm) forward(msg tea.Msg) (addPhraseForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	case fieldPhrase:
		f.phrase, cmd = f.phrase.Update(msg)
	}
	return f, cmd
}

func (f addPhraseForm) cycle(delta int) addPhraseForm {
	f.focus = formField((int(f.focus) + delta + formFieldCount) % formFieldCount)
	f.category.Blur()
	f.phrase.Blur()
	switch f.focus {
	case fieldCategory:
		f.category.Focus()
	case fieldPhrase:
		f.phrase.Focus()
	}
	f.errText = ""
	return f
}

func (f addPhraseForm) submit() (addPhraseForm, tea.Cmd) {
	category := strings.TrimSpace(f.category.Value())
	phrase := strings.TrimSpace(f.phrase.Value())

	if category == "" {
		f.errText = "category is required"
		return f, nil
	}
	if phrase == "" {
		f.errText = "phrase is required"
		return f, nil
	}

	entry := cue.PhraseEntry{Category: category, Phrase: phrase}
	if f.effect {
		class := cue.SoundEffect
		entry.Class = &class
	}
	return f, func() tea.Msg { return phraseAddedMsg{entry: entry} }
}

// View renders the form box centered in the given area.
func (f addPhraseForm) View(width, height int) string {
	boxWidth := 44
	if boxWidth > width-2 {
		boxWidth = width - 2
	}
	if boxWidth < 24 {
		boxWidth = 24
	}

	var music, effect string
	if f.effect {
		music = styles.HelpStyle.Render("○ music")
		effect = styles.EffectClassStyle.Render("● sound effect")
	} else {
		music = styles.MusicClassStyle.Render("● music")
		effect = styles.HelpStyle.Render("○ sound effect")
	}

	rows := []string{
		styles.TitleStyle.Render("Add key word"),
		"",
		f.fieldLabel("Category", fieldCategory),
		f.category.View(),
		f.fieldLabel("Phrase", fieldPhrase),
		f.phrase.View(),
		f.fieldLabel("Class for new categories", fieldClass),
		music + "   " + effect,
	}
	if f.errText != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(f.errText))
	}
	rows = append(rows, "", styles.HelpStyle.Render("tab next · space toggle · enter add · esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderHighlightFocusColor).
		Padding(0, 1).
		Width(boxWidth).
		Render(strings.Join(rows, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (f addPhraseForm) fieldLabel(label string, field formField) string {
	if f.focus == field {
		return styles.CueHighlightStyle.Render("▸ " + label)
	}
	return styles.HelpStyle.Render("  " + label)
}
