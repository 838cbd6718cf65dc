// Package noteart draws the row of quarter notes shown on the empty
// library screen: four colored notes around a greyed-out silent one.
package noteart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// A quarter note, stem up, head bottom-left.
var noteLines = []string{
	"   ╔╗",
	"   ║║",
	"   ║║",
	"  ╔╝║",
	"  ╚═╝",
}

// The silent note, crack lines radiating from it.
var mutedLines = []string{
	"   \\ │ /   ",
	"     ╔╗    ",
	" ──  ║║  ──",
	"    ╔╝║    ",
	"    ╚═╝    ",
	"   / │ \\   ",
}

// A beam fragment drawn between notes.
var beamLines = []string{
	"",
	"───",
	"",
	"",
	"",
}

var noteColors = []lipgloss.Color{
	"#54A0FF", // blue
	"#73F59F", // green
	"#696969", // grey, the silent one
	"#FECA57", // yellow
	"#7D56F4", // purple
}

const beamColor = lipgloss.Color("#CCCCCC")

// BuildNoteArt renders the note row. Every piece is padded to the
// height of the muted note so the beams stay level.
func BuildNoteArt() string {
	height := len(mutedLines)
	beam := lipgloss.NewStyle().Foreground(beamColor).Render(centered(beamLines, height))

	pieces := make([]string, 0, 2*len(noteColors)-1)
	for i, color := range noteColors {
		if i > 0 {
			pieces = append(pieces, beam)
		}
		art := noteLines
		if i == len(noteColors)/2 {
			art = mutedLines
		}
		pieces = append(pieces, lipgloss.NewStyle().Foreground(color).Render(centered(art, height)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pieces...)
}

// centered pads lines with blank rows above and below to reach height.
func centered(lines []string, height int) string {
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}

	width := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > width {
			width = w
		}
	}
	blank := strings.Repeat(" ", width)

	top := (height - len(lines)) / 2
	padded := make([]string, 0, height)
	for range top {
		padded = append(padded, blank)
	}
	padded = append(padded, lines...)
	for len(padded) < height {
		padded = append(padded, blank)
	}
	return strings.Join(padded, "\n")
}
