package styles

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// TruncateString cuts s to maxWidth display cells, ending with "..." when
// anything was removed. Escape sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate("...", maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// FormatCount renders "n noun" with a naive plural.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
