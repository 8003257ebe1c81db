package render

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/wamark/internal/convert"
	"github.com/zjrosen/wamark/internal/markup"
)

// noMarginStyle removes glamour's document margins so previews line up with
// the surrounding pane border.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// GlamourRenderer renders markup through Markdown and glamour.
type GlamourRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewGlamour creates a renderer with the given width and glamour style.
// style should be a built-in name such as "dark", "light" or "notty", or a
// path to a JSON style. Empty means "dark"; auto detection is avoided because
// it queries the terminal and leaks responses into the input stream.
func NewGlamour(width int, style string) (*GlamourRenderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &GlamourRenderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (g *GlamourRenderer) Width() int {
	return g.width
}

// Render converts segments to Markdown and styles them.
func (g *GlamourRenderer) Render(segments []markup.Segment) (string, error) {
	// Hard breaks keep WhatsApp line structure inside one paragraph.
	md := strings.ReplaceAll(convert.ToMarkdown(segments), "\n", "  \n")
	out, err := g.renderer.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
