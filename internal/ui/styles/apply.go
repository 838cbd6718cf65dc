package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeConfig selects a preset plus optional per-token overrides.
// Mode forces dark or light resolution; empty means detect from the
// terminal.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ApplyTheme resets the color variables to the default palette, overlays
// the named preset, then overlays the per-token overrides. Overrides are
// validated before any color is touched, so a failed call leaves the
// current theme intact.
func ApplyTheme(cfg ThemeConfig) error {
	name := cfg.Preset
	if name == "" {
		name = DefaultPreset.Name
	}
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown theme preset %q", name)
	}

	for token, hex := range cfg.Colors {
		if !isValidToken(ColorToken(token)) {
			return fmt.Errorf("unknown color token %q", token)
		}
		if !isValidHexColor(hex) {
			return fmt.Errorf("invalid hex color %q for token %q", hex, token)
		}
	}

	applyPalette(DefaultPreset.Colors)
	if name != DefaultPreset.Name {
		applyPalette(preset.Colors)
	}
	for token, hex := range cfg.Colors {
		setColor(ColorToken(token), hex)
	}

	switch cfg.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	}

	rebuildStyles()
	return nil
}

// DarkBackground reports whether styles currently resolve against a dark
// background. The markdown renderer uses this to pick its style set.
func DarkBackground() bool {
	return lipgloss.HasDarkBackground()
}

func applyPalette(colors map[ColorToken]string) {
	for token, hex := range colors {
		setColor(token, hex)
	}
}

// setColor pins both variants so the palette wins regardless of the
// detected background.
func setColor(token ColorToken, hex string) {
	if slot := colorSlot(token); slot != nil {
		slot.Light = hex
		slot.Dark = hex
	}
}

func isValidToken(token ColorToken) bool {
	return colorSlot(token) != nil
}

func isValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}
