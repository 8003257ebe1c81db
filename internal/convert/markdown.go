// Package convert translates between WhatsApp markup and other rich-text
// formats: Markdown in both directions and HTML into markup.
package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zjrosen/wamark/internal/markup"
)

// Converter turns Markdown into WhatsApp markup for one dialect.
type Converter struct {
	Dialect markup.Dialect
}

// New returns a Converter for d. An invalid dialect falls back to the default.
func New(d markup.Dialect) Converter {
	if !d.IsValid() {
		d = markup.DefaultDialect
	}
	return Converter{Dialect: d}
}

var defaultConverter = New(markup.DefaultDialect)

// FromMarkdown converts Markdown with the default dialect.
func FromMarkdown(md string) string {
	return defaultConverter.FromMarkdown(md)
}

// Protected spans are swapped for \x00<n>\x00 while inline rules run.
// Bold output uses \x01 until italics have been rewritten. Both bytes are
// stripped from the input first so user text never forms a marker.
const (
	protectMark = "\x00"
	boldMark    = "\x01"
)

var stripMarks = strings.NewReplacer(protectMark, "", boldMark, "")

var (
	fencedCode = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \t]*\n(.*?)\n?```")
	inlineCode = regexp.MustCompile("`([^`\n]+)`")
	escaped    = regexp.MustCompile(`\\([\\` + "`" + `*_~\[\]<>#+\-!])`)
	autolink   = regexp.MustCompile(`<(https?://[^>\s]+)>`)
	htmlTag    = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	image      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)[^)]*\)`)
	link       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)[^)]*\)`)
	rule       = regexp.MustCompile(`(?m)^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	heading    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+?)[ \t#]*$`)
	bullet     = regexp.MustCompile(`(?m)^([ \t]*)[*+-][ \t]+`)
	boldStars  = regexp.MustCompile(`\*\*([^\n]+?)\*\*`)
	boldUnder  = regexp.MustCompile(`__([^\n]+?)__`)
	italicStar = regexp.MustCompile(`\*([^*\n]+?)\*`)
	strike     = regexp.MustCompile(`~~([^\n]+?)~~`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	protected  = regexp.MustCompile(protectMark + `(\d+)` + protectMark)
)

// FromMarkdown converts CommonMark-ish text to WhatsApp markup.
//
// Bold becomes *x*, italics _x_, strikethrough ~x~ and code the dialect's
// monospace delimiter. Headings turn bold, links become "text (url)", list
// bullets become "- " and raw HTML tags are dropped.
func (c Converter) FromMarkdown(md string) string {
	md = stripMarks.Replace(strings.ReplaceAll(md, "\r\n", "\n"))
	mono := c.Dialect.Delimiter(markup.StyleMono)

	var kept []string
	protect := func(s string) string {
		kept = append(kept, s)
		return protectMark + strconv.Itoa(len(kept)-1) + protectMark
	}

	md = fencedCode.ReplaceAllStringFunc(md, func(m string) string {
		body := fencedCode.FindStringSubmatch(m)[1]
		return protect(mono + body + mono)
	})
	md = escaped.ReplaceAllStringFunc(md, func(m string) string {
		return protect(m[1:])
	})
	md = inlineCode.ReplaceAllStringFunc(md, func(m string) string {
		return protect(mono + inlineCode.FindStringSubmatch(m)[1] + mono)
	})

	md = autolink.ReplaceAllStringFunc(md, func(m string) string {
		return protect(autolink.FindStringSubmatch(m)[1])
	})
	md = htmlTag.ReplaceAllString(md, "")
	md = image.ReplaceAllStringFunc(md, func(m string) string {
		sub := image.FindStringSubmatch(m)
		return protect(labelled(sub[1], sub[2]))
	})
	md = link.ReplaceAllStringFunc(md, func(m string) string {
		sub := link.FindStringSubmatch(m)
		label := strings.TrimSpace(sub[1])
		if label == sub[2] {
			return protect(sub[2])
		}
		return label + " (" + protect(sub[2]) + ")"
	})

	md = rule.ReplaceAllString(md, "")
	md = heading.ReplaceAllString(md, boldMark+"$1"+boldMark)
	md = bullet.ReplaceAllString(md, "$1- ")

	md = boldStars.ReplaceAllString(md, boldMark+"$1"+boldMark)
	md = boldUnder.ReplaceAllString(md, boldMark+"$1"+boldMark)
	md = italicStar.ReplaceAllString(md, "_${1}_")
	md = strike.ReplaceAllString(md, "~$1~")
	md = strings.ReplaceAll(md, boldMark, "*")

	md = restore(md, kept, len(kept))

	md = blankRuns.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

// restore expands markers below limit. A span protected later can hold
// markers of earlier spans only, so each level shrinks the limit and the
// expansion terminates.
func restore(s string, kept []string, limit int) string {
	return protected.ReplaceAllStringFunc(s, func(m string) string {
		i, err := strconv.Atoi(strings.Trim(m, protectMark))
		if err != nil || i < 0 || i >= limit {
			return ""
		}
		return restore(kept[i], kept, i)
	})
}

func labelled(label, url string) string {
	label = strings.TrimSpace(label)
	if label == "" || label == url {
		return url
	}
	return fmt.Sprintf("%s (%s)", label, url)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`~`, `\~`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
)

// ToMarkdown renders segments as CommonMark with GFM strikethrough.
func ToMarkdown(segments []markup.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Style {
		case markup.StyleBold:
			b.WriteString("**" + markdownEscaper.Replace(seg.Text) + "**")
		case markup.StyleItalic:
			b.WriteString("_" + markdownEscaper.Replace(seg.Text) + "_")
		case markup.StyleStrike:
			b.WriteString("~~" + markdownEscaper.Replace(seg.Text) + "~~")
		case markup.StyleMono:
			b.WriteString(codeSpan(seg.Text))
		default:
			b.WriteString(markdownEscaper.Replace(seg.Text))
		}
	}
	return b.String()
}

// codeSpan fences s with one more backtick than its longest backtick run.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}

	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
