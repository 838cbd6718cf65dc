package styles

// Preset is a named, complete palette covering every color token.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets holds the built-in palettes, keyed by name.
var Presets = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Neutral palette for any terminal",
		Colors: map[ColorToken]string{
			TokenTextPrimary:         "#CCCCCC",
			TokenTextSecondary:       "#999999",
			TokenTextMuted:           "#666666",
			TokenTextDescription:     "#AAAAAA",
			TokenStatusSuccess:       "#73F59F",
			TokenStatusWarning:       "#FECA57",
			TokenStatusError:         "#FF6B6B",
			TokenBorderDefault:       "#444444",
			TokenBorderFocus:         "#7D56F4",
			TokenSelectionBackground: "#3A3A55",
			TokenClassMusic:          "#54A0FF",
			TokenClassEffect:         "#FECA57",
			TokenCueHighlight:        "#F368E0",
		},
	},
	"storybook": {
		Name:        "storybook",
		Description: "Warm lamplight palette for bedtime reading",
		Colors: map[ColorToken]string{
			TokenTextPrimary:         "#F8E8C8",
			TokenTextSecondary:       "#D9B98A",
			TokenTextMuted:           "#8A7355",
			TokenTextDescription:     "#E8D5AE",
			TokenStatusSuccess:       "#A8D8A8",
			TokenStatusWarning:       "#F5C26B",
			TokenStatusError:         "#E88873",
			TokenBorderDefault:       "#5C4A33",
			TokenBorderFocus:         "#F5A623",
			TokenSelectionBackground: "#4A3B28",
			TokenClassMusic:          "#8FB8E8",
			TokenClassEffect:         "#F5A623",
			TokenCueHighlight:        "#F9D976",
		},
	},
	"high-contrast": {
		Name:        "high-contrast",
		Description: "Maximum contrast for accessibility",
		Colors: map[ColorToken]string{
			TokenTextPrimary:         "#FFFFFF",
			TokenTextSecondary:       "#E0E0E0",
			TokenTextMuted:           "#B0B0B0",
			TokenTextDescription:     "#F0F0F0",
			TokenStatusSuccess:       "#00FF00",
			TokenStatusWarning:       "#FFFF00",
			TokenStatusError:         "#FF0000",
			TokenBorderDefault:       "#FFFFFF",
			TokenBorderFocus:         "#00FFFF",
			TokenSelectionBackground: "#0000AA",
			TokenClassMusic:          "#00AAFF",
			TokenClassEffect:         "#FFAA00",
			TokenCueHighlight:        "#FF00FF",
		},
	},
}

// DefaultPreset is applied when the config names no preset.
var DefaultPreset = Presets["default"]
