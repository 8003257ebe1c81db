package convert

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/zjrosen/wamark/internal/log"
)

// HTMLOptions narrows which part of an HTML document is converted.
type HTMLOptions struct {
	// Selector keeps only elements matching this CSS selector.
	Selector string
	// Article extracts the main readable content of a full web page.
	Article bool
	// BaseURL resolves relative links in Article mode.
	BaseURL *url.URL
}

// FromHTML converts HTML (for example a snippet pasted from a web panel) to
// WhatsApp markup. Selector takes precedence over Article.
func (c Converter) FromHTML(r io.Reader, opts HTMLOptions) (string, error) {
	var (
		markdown string
		err      error
	)
	switch {
	case opts.Selector != "":
		markdown, err = selectToMarkdown(r, opts.Selector)
	case opts.Article:
		markdown, err = articleToMarkdown(r, opts.BaseURL)
	default:
		var raw []byte
		raw, err = io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read html: %w", err)
		}
		markdown, err = HTMLToMarkdown(string(raw))
	}
	if err != nil {
		return "", err
	}

	log.Debug(log.CatConvert, "html converted", "markdownBytes", len(markdown), "selector", opts.Selector, "article", opts.Article)
	return c.FromMarkdown(markdown), nil
}

// FromHTML converts HTML with the default dialect.
func FromHTML(r io.Reader, opts HTMLOptions) (string, error) {
	return defaultConverter.FromHTML(r, opts)
}

// HTMLToMarkdown converts an HTML string to Markdown.
func HTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, &md.Options{
		StrongDelimiter:  "**",
		EmDelimiter:      "_",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
	})
	converter.Use(plugin.Strikethrough("~~"))
	converter.Remove("script", "style", "noscript")

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func selectToMarkdown(r io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		html, err := goquery.OuterHtml(s)
		if err == nil {
			parts = append(parts, html)
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("no html extracted for selector: %s", selector)
	}

	return HTMLToMarkdown(strings.Join(parts, "\n"))
}

func articleToMarkdown(r io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(r, baseURL)
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}

	return HTMLToMarkdown(article.Content)
}
