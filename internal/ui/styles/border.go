package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder frames content in a rounded border with titles
// embedded in the top edge. The reading pane uses the left title for the
// book and the right title for the playback phase; pass "" to omit either.
// titleColor styles the title text, focusedBorderColor replaces
// BorderDefaultColor while the panel has focus.
func RenderWithTitleBorder(content, leftTitle, rightTitle string, width, height int, focused bool, titleColor, focusedBorderColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusedBorderColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	// Inner area excludes the border columns and rows.
	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	topBorder := buildDualTitleTopBorder(leftTitle, rightTitle, innerWidth, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	// Let lipgloss wrap and clamp the content before framing it.
	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).Render(content)
	contentLines := strings.Split(constrained, "\n")

	framed := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		// Pad to innerWidth so the right border column stays aligned.
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}

		framed[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var out strings.Builder
	out.WriteString(topBorder)
	out.WriteString("\n")
	out.WriteString(strings.Join(framed, "\n"))
	out.WriteString("\n")
	out.WriteString(bottomBorder)
	return out.String()
}

// buildTopBorder renders the top edge with a single embedded title:
// ╭─ Title ──────╮. Falls back to a plain edge when the title does not fit.
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(borderTopLeft + borderTopRight)
	}
	if title == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	// The title needs "─ " before it and " ─" after it.
	const titleFrame = 4
	if innerWidth < titleFrame {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	displayTitle := title
	if available := innerWidth - titleFrame; lipgloss.Width(displayTitle) > available {
		displayTitle = TruncateString(displayTitle, available)
	}

	trailing := max(innerWidth-3-lipgloss.Width(displayTitle), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, trailing)+borderTopRight)
}

// buildDualTitleTopBorder renders the top edge with titles on both ends:
// ╭─ Left ─────────────────── Right ─╮.
func buildDualTitleTopBorder(leftTitle, rightTitle string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(borderTopLeft + borderTopRight)
	}
	if leftTitle == "" && rightTitle == "" {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	leftWidth := lipgloss.Width(leftTitle)
	rightWidth := lipgloss.Width(rightTitle)

	// Smallest edge that fits both titles with their framing dashes.
	minRequired := 2 + leftWidth + 1 + 1 + 1 + rightWidth + 2
	if rightTitle == "" {
		minRequired = 2 + leftWidth + 1 + 1
	}
	if leftTitle == "" {
		minRequired = 1 + 1 + rightWidth + 2
	}

	if innerWidth < minRequired {
		// Too narrow for both; keep the left title if there is one.
		if leftTitle != "" {
			return buildTopBorder(leftTitle, innerWidth, borderStyle, titleStyle)
		}
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	var middle int
	switch {
	case leftTitle != "" && rightTitle != "":
		middle = innerWidth - leftWidth - rightWidth - 6
	case leftTitle != "":
		middle = innerWidth - leftWidth - 3
	default:
		middle = innerWidth - rightWidth - 3
	}
	middle = max(middle, 1)

	var out strings.Builder
	out.WriteString(borderStyle.Render(borderTopLeft))
	if leftTitle != "" {
		out.WriteString(borderStyle.Render(borderHorizontal + " "))
		out.WriteString(titleStyle.Render(leftTitle))
		out.WriteString(borderStyle.Render(" "))
	}
	out.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, middle)))
	if rightTitle != "" {
		out.WriteString(borderStyle.Render(" "))
		out.WriteString(titleStyle.Render(rightTitle))
		out.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	out.WriteString(borderStyle.Render(borderTopRight))
	return out.String()
}

// TruncateString truncates a string to fit within maxWidth, adding an
// ellipsis when it had to cut. Walks grapheme clusters so combining marks
// and wide runes survive the cut intact.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > maxWidth-3 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String() + "..."
}
