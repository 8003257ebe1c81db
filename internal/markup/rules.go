// Package markup implements the WhatsApp-style inline formatter used by the
// template editor and its previews.
//
// Text is split into Segments by an ordered table of delimiter rules. The
// first rule (in table order) that matches anywhere in the text wins; the
// text before and after the match is parsed again independently. Captured
// bodies are never re-parsed, so nested styles are emitted verbatim.
package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// Style identifies the visual treatment of a Segment.
type Style int

const (
	StylePlain Style = iota
	StyleBold
	StyleItalic
	StyleStrike
	StyleMono
)

var styleNames = map[Style]string{
	StylePlain:  "plain",
	StyleBold:   "bold",
	StyleItalic: "italic",
	StyleStrike: "strike",
	StyleMono:   "mono",
}

// String returns the lowercase style name.
func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStyle looks up a style by name.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return StylePlain, fmt.Errorf("unknown style %q", name)
}

// MarshalText encodes the style by name (used by JSON and YAML output).
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a style name.
func (s *Style) UnmarshalText(b []byte) error {
	parsed, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FormatRule pairs a delimiter with the style it produces.
type FormatRule struct {
	Delimiter string
	Style     Style
}

// Dialect names a rule table. The two surfaces that use the formatter differ
// only in the monospace delimiter.
type Dialect string

const (
	// DialectWhatsApp uses triple backticks for monospace, matching what
	// WhatsApp itself renders.
	DialectWhatsApp Dialect = "whatsapp"
	// DialectCompact uses single backticks for monospace.
	DialectCompact Dialect = "compact"
)

// DefaultDialect is used when no dialect is configured.
const DefaultDialect = DialectWhatsApp

// Rules returns the ordered rule table for the dialect.
// Unknown dialects fall back to DefaultDialect.
func (d Dialect) Rules() []FormatRule {
	mono := "```"
	if d == DialectCompact {
		mono = "`"
	}
	return []FormatRule{
		{Delimiter: "*", Style: StyleBold},
		{Delimiter: "_", Style: StyleItalic},
		{Delimiter: "~", Style: StyleStrike},
		{Delimiter: mono, Style: StyleMono},
	}
}

// Delimiter returns the dialect's delimiter for style, or "" for StylePlain.
func (d Dialect) Delimiter(style Style) string {
	for _, r := range d.Rules() {
		if r.Style == style {
			return r.Delimiter
		}
	}
	return ""
}

// IsValid reports whether d is a known dialect.
func (d Dialect) IsValid() bool {
	return d == DialectWhatsApp || d == DialectCompact
}

// ParseDialect converts a config value into a Dialect. Empty selects the default.
func ParseDialect(s string) (Dialect, error) {
	if s == "" {
		return DefaultDialect, nil
	}
	d := Dialect(strings.ToLower(s))
	if !d.IsValid() {
		return DefaultDialect, fmt.Errorf("unknown dialect %q (must be %q or %q)", s, DialectWhatsApp, DialectCompact)
	}
	return d, nil
}

// matcher is a compiled rule. Compiled patterns carry no position state
// between calls and are safe for concurrent use.
type matcher struct {
	rule    FormatRule
	pattern *regexp.Regexp
}

// compileRule builds delimiter + one or more non-delimiter characters +
// delimiter. The body excludes the delimiter's first character and newlines,
// so same-delimiter nesting never matches and runs stay on one line.
func compileRule(r FormatRule) matcher {
	quoted := regexp.QuoteMeta(r.Delimiter)
	first := regexp.QuoteMeta(r.Delimiter[:1])
	expr := quoted + `([^` + first + `\n]+?)` + quoted
	return matcher{rule: r, pattern: regexp.MustCompile(expr)}
}
