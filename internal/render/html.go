package render

import (
	"html"
	"strings"

	"github.com/zjrosen/wamark/internal/markup"
)

var htmlTags = map[markup.Style][2]string{
	markup.StyleBold:   {"<strong>", "</strong>"},
	markup.StyleItalic: {"<em>", "</em>"},
	markup.StyleStrike: {"<s>", "</s>"},
	markup.StyleMono:   {"<code>", "</code>"},
}

// HTML renders segments as inline HTML. Text is escaped and newlines become <br>.
func HTML(segments []markup.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		text := strings.ReplaceAll(html.EscapeString(seg.Text), "\n", "<br>\n")
		tags, ok := htmlTags[seg.Style]
		if !ok {
			b.WriteString(text)
			continue
		}
		b.WriteString(tags[0])
		b.WriteString(text)
		b.WriteString(tags[1])
	}
	return b.String()
}

// Plain returns the text with every matched delimiter pair removed.
func Plain(segments []markup.Segment) string {
	return markup.Text(segments)
}
