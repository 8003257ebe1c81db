package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [text]",
	Short: "Render markup to the terminal, Markdown, HTML or plain text",
	Long: `Render WhatsApp markup in one of the supported formats.

Formats: ansi, glamour, markdown (md), html, plain (text).
Without --format the output is ansi on a terminal and plain otherwise.
Empty input renders the configured placeholder.

Examples:
  wamark render '*Order* _shipped_'
  wamark render --format html < message.txt
  wamark render --format glamour --width 60 'see ~old~ *new*'`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("format", "f", "", "output format (default: ansi on a terminal, plain otherwise)")
	renderCmd.Flags().IntP("width", "w", 0, "wrap width for ansi and glamour output (overrides ui.preview_width)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")

	out, err := newApp(width).renderer.Render(cmd.Context(), text, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return err
}

// resolveFormat reads --format, defaulting to ANSI only for terminals.
func resolveFormat(cmd *cobra.Command) (render.Format, error) {
	raw, _ := cmd.Flags().GetString("format")
	if raw != "" {
		return render.ParseFormat(raw)
	}
	if isTerminal(cmd.OutOrStdout()) {
		return render.FormatANSI, nil
	}
	return render.FormatPlain, nil
}
