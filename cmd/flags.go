package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/flags"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show feature flags and whether they are on",
	Long: `List the built-in feature flags with their effective values. Set them in the
flags section of the config file, for example:

  flags:
    glamour-preview: true`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := flags.New(cfg.Flags)
		for _, name := range flags.Known() {
			state := "off"
			if reg.Enabled(name) {
				state = "on"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, state); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}
