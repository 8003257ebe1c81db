package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

// StyleFor returns the terminal style for a markup style.
func StyleFor(s markup.Style) lipgloss.Style {
	switch s {
	case markup.StyleBold:
		return styles.MarkupBoldStyle
	case markup.StyleItalic:
		return styles.MarkupItalicStyle
	case markup.StyleStrike:
		return styles.MarkupStrikeStyle
	case markup.StyleMono:
		return styles.MarkupMonoStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Terminal renders segments with ANSI styling. A positive width word-wraps
// the result; words longer than width are hard-wrapped.
func Terminal(segments []markup.Segment, width int) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Style == markup.StylePlain {
			b.WriteString(seg.Text)
			continue
		}
		style := StyleFor(seg.Style)
		// Render per line; a multi-line Render pads every line to the widest.
		lines := strings.Split(seg.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}

	out := b.String()
	if width > 0 {
		out = wrap.String(wordwrap.String(out, width), width)
	}
	return out
}
