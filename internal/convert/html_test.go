package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wamark/internal/markup"
)

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"bold", "<p>Hi <strong>John</strong></p>", "Hi *John*"},
		{"b tag", "<p><b>Sale</b> today</p>", "*Sale* today"},
		{"italic", "<p><em>soon</em></p>", "_soon_"},
		{"strike", "<p><del>$10</del> $5</p>", "~$10~ $5"},
		{"code", "<p>use <code>SAVE10</code></p>", "use ```SAVE10```"},
		{"link", `<p><a href="https://x.io">shop</a></p>`, "shop (https://x.io)"},
		{"heading", "<h2>Offer</h2><p>body</p>", "*Offer*\n\nbody"},
		{"list", "<ul><li>one</li><li>two</li></ul>", "- one\n- two"},
		{"script dropped", "<p>hi</p><script>alert(1)</script>", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHTML(strings.NewReader(tt.html), HTMLOptions{})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFromHTML_Selector(t *testing.T) {
	page := `<html><body>
		<nav>Home | About</nav>
		<div class="message"><p>Your <b>order</b> shipped</p></div>
		<footer>© shop</footer>
	</body></html>`

	got, err := FromHTML(strings.NewReader(page), HTMLOptions{Selector: ".message"})
	require.NoError(t, err)
	require.Equal(t, "Your *order* shipped", got)
}

func TestFromHTML_SelectorNoMatch(t *testing.T) {
	_, err := FromHTML(strings.NewReader("<p>x</p>"), HTMLOptions{Selector: ".missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no elements found")
}

func TestFromHTML_Article(t *testing.T) {
	paragraph := "Thanks for calling our support line today. We have reviewed your request and " +
		"scheduled a technician visit for tomorrow morning between nine and eleven. " +
		"Please keep your order number ready so the visit goes smoothly for everyone involved."
	page := `<html><head><title>Follow up</title></head><body>
		<div id="sidebar"><a href="/a">Link A</a><a href="/b">Link B</a></div>
		<article><h1>Follow up</h1>
		<p>` + paragraph + `</p>
		<p>` + paragraph + `</p>
		<p>` + paragraph + `</p>
		</article></body></html>`

	got, err := FromHTML(strings.NewReader(page), HTMLOptions{Article: true})
	require.NoError(t, err)
	require.Contains(t, got, "scheduled a technician visit")
}

func TestFromHTML_CompactDialect(t *testing.T) {
	got, err := New(markup.DialectCompact).FromHTML(strings.NewReader("<code>x</code>"), HTMLOptions{})
	require.NoError(t, err)
	require.Equal(t, "`x`", got)
}

func TestHTMLToMarkdown(t *testing.T) {
	got, err := HTMLToMarkdown("<p><strong>a</strong> <em>b</em> <s>c</s></p>")
	require.NoError(t, err)
	require.Equal(t, "**a** _b_ ~~c~~", got)
}
