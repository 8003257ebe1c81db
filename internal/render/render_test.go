package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wamark/internal/markup"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestTerminal_StylesSegments(t *testing.T) {
	out := Terminal(markup.Parse("Hi *John*, ~was~ _now_ ```CODE```"), 0)

	require.Equal(t, "Hi John, was now CODE", ansi.Strip(out))
	require.Contains(t, out, StyleFor(markup.StyleBold).Render("John"))
	require.Contains(t, out, StyleFor(markup.StyleStrike).Render("was"))
	require.Contains(t, out, StyleFor(markup.StyleMono).Render("CODE"))
	require.True(t, strings.HasPrefix(out, "Hi "), "plain text is not styled")
}

func TestTerminal_KeepsLineStructure(t *testing.T) {
	out := Terminal(markup.Parse("*a*\n\nb"), 0)
	require.Equal(t, "a\n\nb", ansi.Strip(out))
}

func TestTerminal_Wraps(t *testing.T) {
	out := Terminal(markup.Parse("your *order* has shipped today"), 10)

	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 10, line)
	}
	require.Contains(t, ansi.Strip(out), "order")
}

func TestStyleFor_Plain(t *testing.T) {
	require.Equal(t, "x", StyleFor(markup.StylePlain).Render("x"))
}

func TestHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a *b* c", "a <strong>b</strong> c"},
		{"_i_ ~s~ ```m```", "<em>i</em> <s>s</s> <code>m</code>"},
		{"1 < 2 & *\"q\"*", "1 &lt; 2 &amp; <strong>&#34;q&#34;</strong>"},
		{"line\nnext", "line<br>\nnext"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, HTML(markup.Parse(tt.in)))
		})
	}
}

func TestPlain(t *testing.T) {
	require.Equal(t, "Hello John", Plain(markup.Parse("Hello *John*")))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	got, err := ParseFormat("md")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, got)

	got, err = ParseFormat("text")
	require.NoError(t, err)
	require.Equal(t, FormatPlain, got)

	_, err = ParseFormat("pdf")
	require.Error(t, err)
}

func TestRenderer_Render(t *testing.T) {
	r := New(Options{}, nil)
	ctx := context.Background()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatMarkdown, "a **b** c"},
		{FormatHTML, "a <strong>b</strong> c"},
		{FormatPlain, "a b c"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := r.Render(ctx, "a *b* c", tt.format)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	ansiOut, err := r.Render(ctx, "a *b* c", FormatANSI)
	require.NoError(t, err)
	require.Equal(t, "a b c", ansi.Strip(ansiOut))

	_, err = r.Render(ctx, "x", Format("pdf"))
	require.Error(t, err)
}

func TestRenderer_Glamour(t *testing.T) {
	r := New(Options{Width: 60, MarkdownStyle: "dark"}, nil)

	out, err := r.Render(context.Background(), "Your *order* ~was~ shipped", FormatGlamour)
	require.NoError(t, err)

	stripped := ansi.Strip(out)
	require.Contains(t, stripped, "order")
	require.Contains(t, stripped, "shipped")
	require.NotContains(t, stripped, "*order*")
}

func TestNewGlamour_Width(t *testing.T) {
	g, err := NewGlamour(42, "")
	require.NoError(t, err)
	require.Equal(t, 42, g.Width())
}

func TestRenderer_Placeholder(t *testing.T) {
	r := New(Options{Placeholder: "_Nothing to preview_"}, nil)

	got, err := r.Render(context.Background(), "", FormatPlain)
	require.NoError(t, err)
	require.Equal(t, "Nothing to preview", got)

	require.Equal(t, []markup.Segment{{Text: "Nothing to preview", Style: markup.StyleItalic}},
		r.Segments(context.Background(), ""))

	bare := New(Options{}, nil)
	require.Nil(t, bare.Segments(context.Background(), ""))
}

func TestRenderer_Dialect(t *testing.T) {
	r := New(Options{Dialect: markup.DialectCompact}, nil)
	got, err := r.Render(context.Background(), "run `make`", FormatHTML)
	require.NoError(t, err)
	require.Equal(t, "run <code>make</code>", got)

	fallback := New(Options{Dialect: "bogus"}, nil)
	require.Equal(t, markup.DefaultDialect, fallback.Options().Dialect)
}

func TestRenderer_CachesSegments(t *testing.T) {
	cache := NewSegmentCache()
	r := New(Options{CacheTTL: time.Minute}, cache)
	ctx := context.Background()

	first := r.Segments(ctx, "a *b* c")
	second := r.Segments(ctx, "a *b* c")
	require.Equal(t, first, second)

	stats := cache.Stats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)
	require.Equal(t, 1, stats.Items)

	compact := New(Options{Dialect: markup.DialectCompact, CacheTTL: time.Minute}, cache)
	compact.Segments(ctx, "a *b* c")
	require.Equal(t, 2, cache.Stats().Items, "dialects do not share entries")
}

func TestRenderer_ZeroTTLSkipsCache(t *testing.T) {
	cache := NewSegmentCache()
	r := New(Options{}, cache)

	r.Segments(context.Background(), "x")
	require.Equal(t, 0, cache.Stats().Items)
}
