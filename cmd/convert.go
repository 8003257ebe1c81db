package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/convert"
	"github.com/zjrosen/wamark/internal/markup"
)

var convertCmd = &cobra.Command{
	Use:   "convert [text]",
	Short: "Convert Markdown or HTML to WhatsApp markup",
	Long: `Convert Markdown or HTML into WhatsApp markup.

HTML is converted to Markdown first. Use --selector to keep only matching
elements, or --article to extract the readable content of a full page.

Examples:
  wamark convert '**bold** and ~~gone~~'
  curl -s https://example.com/post | wamark convert --from html --article --base-url https://example.com/post
  wamark convert --from html --selector '.message' < panel.html`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "markdown", "input format: markdown or html")
	convertCmd.Flags().String("selector", "", "CSS selector to extract from HTML input")
	convertCmd.Flags().Bool("article", false, "extract the main article from an HTML page")
	convertCmd.Flags().String("base-url", "", "base URL for resolving relative links with --article")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	dialect, err := markup.ParseDialect(cfg.Markup.Dialect)
	if err != nil {
		return err
	}
	conv := convert.New(dialect)

	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	var out string
	switch strings.ToLower(from) {
	case "markdown", "md":
		out = conv.FromMarkdown(text)
	case "html":
		opts, err := htmlOptions(cmd)
		if err != nil {
			return err
		}
		out, err = conv.FromHTML(strings.NewReader(text), opts)
		if err != nil {
			return fmt.Errorf("converting html: %w", err)
		}
	default:
		return fmt.Errorf("unknown input format %q (want markdown or html)", from)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func htmlOptions(cmd *cobra.Command) (convert.HTMLOptions, error) {
	selector, _ := cmd.Flags().GetString("selector")
	article, _ := cmd.Flags().GetBool("article")
	opts := convert.HTMLOptions{Selector: selector, Article: article}

	if raw, _ := cmd.Flags().GetString("base-url"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid --base-url: %w", err)
		}
		opts.BaseURL = u
	}
	return opts, nil
}
