// Package render turns WhatsApp markup into styled output: ANSI terminal text,
// Markdown, glamour-rendered Markdown, HTML or plain text.
package render

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/wamark/internal/cachemanager"
	"github.com/zjrosen/wamark/internal/convert"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/markup"
)

// Format names an output backend.
type Format string

const (
	FormatANSI     Format = "ansi"
	FormatMarkdown Format = "markdown"
	FormatGlamour  Format = "glamour"
	FormatHTML     Format = "html"
	FormatPlain    Format = "plain"
)

// Formats lists every supported format in help order.
func Formats() []Format {
	return []Format{FormatANSI, FormatMarkdown, FormatGlamour, FormatHTML, FormatPlain}
}

// ParseFormat accepts a format name, case-insensitively. "md" and "text" are aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatANSI, FormatMarkdown, FormatGlamour, FormatHTML, FormatPlain:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats())
	}
}

// Options configures a Renderer.
type Options struct {
	Dialect markup.Dialect
	// Placeholder is rendered in place of empty input.
	Placeholder string
	// Width word-wraps ANSI and glamour output. Zero disables wrapping.
	Width int
	// MarkdownStyle is the glamour style name or JSON path.
	MarkdownStyle string
	// CacheTTL bounds how long parse results are kept. Zero disables the cache.
	CacheTTL time.Duration
}

// SegmentCache memoises parse results keyed by dialect and text.
type SegmentCache = cachemanager.CacheManager[string, []markup.Segment]

// NewSegmentCache returns an in-memory SegmentCache.
func NewSegmentCache() SegmentCache {
	return cachemanager.NewInMemoryCacheManager[string, []markup.Segment](
		"segments", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
}

// Renderer parses and renders markup. It is safe for concurrent use.
type Renderer struct {
	opts   Options
	parser *markup.Parser
	parse  *cachemanager.ReadThroughCache[string, []markup.Segment, string]

	mu      sync.Mutex
	glamour *GlamourRenderer
}

// New creates a Renderer. cache may be nil, which disables memoisation.
func New(opts Options, cache SegmentCache) *Renderer {
	if !opts.Dialect.IsValid() {
		opts.Dialect = markup.DefaultDialect
	}

	r := &Renderer{
		opts:   opts,
		parser: markup.ParserFor(opts.Dialect),
	}
	skip := cache == nil || opts.CacheTTL <= 0
	r.parse = cachemanager.NewReadThroughCache[string, []markup.Segment, string](
		cache,
		func(_ context.Context, text string) ([]markup.Segment, error) {
			return r.parser.Parse(text), nil
		},
		skip,
	)
	return r
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Segments parses text, substituting the placeholder for empty input.
// The returned slice may be shared with the cache and must not be modified.
func (r *Renderer) Segments(ctx context.Context, text string) []markup.Segment {
	if text == "" {
		text = r.opts.Placeholder
	}
	if text == "" {
		return nil
	}
	// The parse func never fails.
	segments, _ := r.parse.GetWithRefresh(ctx, string(r.opts.Dialect)+"\x00"+text, text, r.opts.CacheTTL)
	return segments
}

// Render parses text and renders it in the requested format.
func (r *Renderer) Render(ctx context.Context, text string, format Format) (string, error) {
	segments := r.Segments(ctx, text)

	switch format {
	case FormatANSI:
		return Terminal(segments, r.opts.Width), nil
	case FormatMarkdown:
		return convert.ToMarkdown(segments), nil
	case FormatHTML:
		return HTML(segments), nil
	case FormatPlain:
		return Plain(segments), nil
	case FormatGlamour:
		g, err := r.glamourRenderer()
		if err != nil {
			return "", fmt.Errorf("create glamour renderer: %w", err)
		}
		return g.Render(segments)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func (r *Renderer) glamourRenderer() (*GlamourRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.glamour != nil {
		return r.glamour, nil
	}
	g, err := NewGlamour(r.opts.Width, r.opts.MarkdownStyle)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatRender, "glamour renderer created", "width", r.opts.Width, "style", r.opts.MarkdownStyle)
	r.glamour = g
	return g, nil
}
