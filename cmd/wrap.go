package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/presentation"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [text]",
	Short: "Wrap a selection with a formatting delimiter",
	Long: `Apply the editor's selection-wrap action to text.

Offsets are rune positions. Out-of-range offsets are clamped and reversed
offsets are swapped. Use --style to pick the dialect's delimiter for a style
instead of passing --delim.

Table output prints the wrapped text only. JSON and YAML output include the
new selection.

Examples:
  wamark wrap --start 0 --end 5 --delim '*' 'hello world'
  wamark wrap --start 6 --end 11 --style mono -o json 'hello world'`,
	RunE: runWrap,
}

func init() {
	wrapCmd.Flags().Int("start", 0, "selection start (rune offset)")
	wrapCmd.Flags().Int("end", 0, "selection end (rune offset)")
	wrapCmd.Flags().String("delim", "", "delimiter to insert around the selection")
	wrapCmd.Flags().String("style", "", "bold, italic, strike or mono (uses the dialect's delimiter)")
	wrapCmd.MarkFlagsMutuallyExclusive("delim", "style")
	addOutputFlag(wrapCmd)
	rootCmd.AddCommand(wrapCmd)
}

func runWrap(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}
	delim, err := wrapDelimiter(cmd)
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")

	wrapped, newStart, newEnd := markup.Wrap(text, start, end, delim)

	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}
	return formatter.FormatWrap(presentation.WrapDTO{
		Text:      wrapped,
		Selection: markup.Selection{Start: newStart, End: newEnd},
	})
}

func wrapDelimiter(cmd *cobra.Command) (string, error) {
	if delim, _ := cmd.Flags().GetString("delim"); delim != "" {
		return delim, nil
	}
	name, _ := cmd.Flags().GetString("style")
	if name == "" {
		return "", fmt.Errorf("one of --delim or --style is required")
	}
	style, err := markup.ParseStyle(name)
	if err != nil {
		return "", err
	}
	dialect, err := markup.ParseDialect(cfg.Markup.Dialect)
	if err != nil {
		return "", err
	}
	delim := dialect.Delimiter(style)
	if delim == "" {
		return "", fmt.Errorf("style %q has no delimiter", name)
	}
	return delim, nil
}
