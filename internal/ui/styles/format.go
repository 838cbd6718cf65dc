package styles

import "fmt"

// FormatClipCount renders the per-category clip badge for the library
// panel, "3♪". Categories without clips get no badge.
func FormatClipCount(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf("%d♪", count)
}
