package modals

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// TruncatePath truncates a path from the beginning with ellipsis, measuring
// display width so wide runes do not overflow the modal.
func TruncatePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	runes := []rune(path)
	width := 3
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > maxWidth {
			break
		}
		width += w
		start--
	}
	return "..." + string(runes[start:])
}

// TruncateString truncates a string from the end with ellipsis
func TruncateString(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
