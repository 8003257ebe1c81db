package markup

import "strings"

// Segment is a contiguous run of text tagged with one style.
type Segment struct {
	Text  string `json:"text" yaml:"text"`
	Style Style  `json:"style" yaml:"style"`
}

// Parser splits text into Segments using an ordered rule table.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	matchers []matcher
}

// NewParser compiles rules in the given order. Rules with an empty
// delimiter are ignored.
func NewParser(rules []FormatRule) *Parser {
	p := &Parser{matchers: make([]matcher, 0, len(rules))}
	for _, r := range rules {
		if r.Delimiter == "" {
			continue
		}
		p.matchers = append(p.matchers, compileRule(r))
	}
	return p
}

var (
	whatsappParser = NewParser(DialectWhatsApp.Rules())
	compactParser  = NewParser(DialectCompact.Rules())
)

// ParserFor returns the shared parser for a dialect.
func ParserFor(d Dialect) *Parser {
	if d == DialectCompact {
		return compactParser
	}
	return whatsappParser
}

// Parse splits text using the default dialect.
func Parse(text string) []Segment {
	return whatsappParser.Parse(text)
}

// Parse splits text into styled segments. Empty input yields nil.
func (p *Parser) Parse(text string) []Segment {
	if text == "" {
		return nil
	}
	for _, m := range p.matchers {
		loc := m.pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		var out []Segment
		out = append(out, p.Parse(text[:loc[0]])...)
		out = append(out, Segment{Text: text[loc[2]:loc[3]], Style: m.rule.Style})
		out = append(out, p.Parse(text[loc[1]:])...)
		return out
	}
	return []Segment{{Text: text, Style: StylePlain}}
}

// Rules returns a copy of the parser's rule table.
func (p *Parser) Rules() []FormatRule {
	rules := make([]FormatRule, len(p.matchers))
	for i, m := range p.matchers {
		rules[i] = m.rule
	}
	return rules
}

// Text concatenates the segment texts, which is the input with each matched
// delimiter pair removed.
func Text(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Strip removes the delimiters of every matched pair from text.
func (p *Parser) Strip(text string) string {
	return Text(p.Parse(text))
}

// Strip removes formatting delimiters using the default dialect.
func Strip(text string) string {
	return whatsappParser.Strip(text)
}

// Merge joins adjacent segments that share a style. Parse never needs this,
// but renderers that rebuild segments from other sources do.
func Merge(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
