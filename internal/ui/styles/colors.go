// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// ColorToken names a themeable color slot. Tokens are the keys accepted
// by theme.colors overrides in the config file.
type ColorToken string

const (
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenSelectionBackground ColorToken = "selection.background"

	TokenClassMusic   ColorToken = "class.music"
	TokenClassEffect  ColorToken = "class.effect"
	TokenCueHighlight ColorToken = "cue.highlight"
)

// Adaptive colors resolved against the terminal background. The Light
// variants only survive until ApplyTheme runs; an applied preset pins
// both variants to its palette.
var (
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#4A4A68", Dark: "#999999"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8AA3", Dark: "#666666"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#3A3A55", Dark: "#AAAAAA"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF6B6B"}

	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D0D0DF", Dark: "#444444"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#6C4AB6", Dark: "#7D56F4"}

	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#E6E0F8", Dark: "#3A3A55"}

	MusicClassColor   = lipgloss.AdaptiveColor{Light: "#2D6CDF", Dark: "#54A0FF"}
	EffectClassColor  = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FECA57"}
	CueHighlightColor = lipgloss.AdaptiveColor{Light: "#6C4AB6", Dark: "#F368E0"}
)

// Styles derived from the color variables. rebuildStyles refreshes them
// after ApplyTheme mutates the colors.
var (
	TitleStyle        lipgloss.Style
	HelpStyle         lipgloss.Style
	StatusBarStyle    lipgloss.Style
	MusicClassStyle   lipgloss.Style
	EffectClassStyle  lipgloss.Style
	CueHighlightStyle lipgloss.Style
	CueMissStyle      lipgloss.Style
	SuccessStyle      lipgloss.Style
	WarningStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	MusicClassStyle = lipgloss.NewStyle().Bold(true).Foreground(MusicClassColor)
	EffectClassStyle = lipgloss.NewStyle().Bold(true).Foreground(EffectClassColor)
	CueHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(CueHighlightColor)
	CueMissStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
}

// colorSlot returns the variable a token controls, or nil for unknown
// tokens.
func colorSlot(token ColorToken) *lipgloss.AdaptiveColor {
	switch token {
	case TokenTextPrimary:
		return &TextPrimaryColor
	case TokenTextSecondary:
		return &TextSecondaryColor
	case TokenTextMuted:
		return &TextMutedColor
	case TokenTextDescription:
		return &TextDescriptionColor
	case TokenStatusSuccess:
		return &StatusSuccessColor
	case TokenStatusWarning:
		return &StatusWarningColor
	case TokenStatusError:
		return &StatusErrorColor
	case TokenBorderDefault:
		return &BorderDefaultColor
	case TokenBorderFocus:
		return &BorderHighlightFocusColor
	case TokenSelectionBackground:
		return &SelectionBackgroundColor
	case TokenClassMusic:
		return &MusicClassColor
	case TokenClassEffect:
		return &EffectClassColor
	case TokenCueHighlight:
		return &CueHighlightColor
	}
	return nil
}
