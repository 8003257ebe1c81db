package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wamark/internal/markup"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**Hello** world", "*Hello* world"},
		{"underscore bold", "__Hello__", "*Hello*"},
		{"star italic", "an *important* note", "an _important_ note"},
		{"underscore italic kept", "an _important_ note", "an _important_ note"},
		{"strikethrough", "~~gone~~ here", "~gone~ here"},
		{"heading", "# Title\nbody", "*Title*\nbody"},
		{"closed heading", "## Offer ##", "*Offer*"},
		{"link", "see [our site](https://x.io)", "see our site (https://x.io)"},
		{"bare link text", "[https://x.io](https://x.io)", "https://x.io"},
		{"autolink", "visit <https://x.io/a_b>", "visit https://x.io/a_b"},
		{"image", "![logo](https://x.io/l.png)", "logo (https://x.io/l.png)"},
		{"image without alt", "![](https://x.io/l.png)", "https://x.io/l.png"},
		{"bullets", "* one\n+ two\n- three", "- one\n- two\n- three"},
		{"inline code", "run `make test`", "run ```make test```"},
		{"code is literal", "`**x**`", "```**x**```"},
		{"fenced code", "```go\nfmt.Println(1)\n```", "```fmt.Println(1)```"},
		{"html tags dropped", "<b>hi</b> there<br/>", "hi there"},
		{"escapes", `a\_b \*c\*`, "a_b *c*"},
		{"rule removed", "a\n\n---\n\nb", "a\n\nb"},
		{"blank lines collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"crlf", "**a**\r\nb", "*a*\nb"},
		{"bold and italic", "**bold** and *it*", "*bold* and _it_"},
		{"escaped char inside link url", `[doc](https://x.io/a\_b)`, "doc (https://x.io/a_b)"},
		{"nul bytes stripped", "a\x005\x00b", "a5b"},
		{"nul bytes inside autolink", "<http://x\x000\x00>", "http://x0"},
		{"control byte stripped", "**a\x01b**", "*ab*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FromMarkdown(tt.in))
		})
	}
}

func TestRestore_IgnoresUnknownAndSelfReferencingMarkers(t *testing.T) {
	kept := []string{"\x000\x00x", "\x001\x00y"}
	require.Equal(t, "x", restore("\x000\x00", kept, len(kept)))
	require.Equal(t, "y", restore("\x001\x00", kept, len(kept)))
	require.Equal(t, "ab", restore("a\x009\x00b", kept, len(kept)))
}

func TestFromMarkdown_CompactDialect(t *testing.T) {
	c := New(markup.DialectCompact)
	require.Equal(t, "run `make`", c.FromMarkdown("run `make`"))
}

func TestNew_InvalidDialectFallsBack(t *testing.T) {
	require.Equal(t, markup.DefaultDialect, New("klingon").Dialect)
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"styles", "*b* _i_ ~s~ ```m```", "**b** _i_ ~~s~~ `m`"},
		{"escapes plain", "snake_case and 2*3", `snake\_case and 2\*3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToMarkdown(markup.Parse(tt.in)))
		})
	}
}

func TestCodeSpan(t *testing.T) {
	require.Equal(t, "`make`", codeSpan("make"))
	require.Equal(t, "``a`b``", codeSpan("a`b"))
	require.Equal(t, "`` `x ``", codeSpan("`x"))
}

func TestToMarkdown_RoundTrip(t *testing.T) {
	inputs := []string{
		"Hello *John*, your _order_ shipped",
		"~old~ price ```CODE10```",
		"snake_case stays plain",
		"a *b* c",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, in, FromMarkdown(ToMarkdown(markup.Parse(in))))
		})
	}
}
