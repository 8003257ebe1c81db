package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/presentation"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Split text into styled segments",
	Long: `Parse WhatsApp markup and print the resulting segments.

The text comes from the arguments or, when none are given, from stdin.

Examples:
  wamark parse 'a *b* c'
  echo '_hi_ ~there~' | wamark parse -o json
  wamark parse -o yaml --dialect compact 'run ` + "`make`" + `'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		formatter, err := formatterFor(cmd)
		if err != nil {
			return err
		}

		segments := newApp(0).renderer.Segments(cmd.Context(), text)
		return formatter.FormatSegments(presentation.FromSegments(segments))
	},
}

func init() {
	addOutputFlag(parseCmd)
	rootCmd.AddCommand(parseCmd)
}
