package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/config"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

const themeSample = "*bold* _italic_ ~strike~ ```mono```"

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme presets, or save one to the config file",
	Long: `List the built-in theme presets with a sample of each markup style.

Examples:
  wamark themes
  wamark themes --use dracula`,
	RunE: runThemes,
}

var dialectCmd = &cobra.Command{
	Use:   "dialect [whatsapp|compact]",
	Short: "Show or save the markup dialect",
	Long: `Without arguments, print the active dialect. With one, save it to the
config file. The whatsapp dialect uses ` + "```triple```" + ` backticks for monospace;
compact uses single backticks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDialect,
}

func init() {
	themesCmd.Flags().String("use", "", "save this preset as theme.preset in the config file")
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(dialectCmd)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	if name, _ := cmd.Flags().GetString("use"); name != "" {
		if _, ok := styles.Presets[name]; !ok {
			return fmt.Errorf("unknown theme preset %q (available: %v)", name, styles.PresetNames())
		}
		theme := cfg.Theme
		theme.Preset = name
		if err := config.SaveTheme(configFilePath, theme); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
		log.Info(log.CatConfig, "theme saved", "preset", name, "path", configFilePath)
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s in %s\n", name, configFilePath)
		return err
	}

	// Restore the configured theme after previewing each preset.
	defer func() { _ = styles.ApplyTheme(cfg.Theme.StylesConfig()) }()

	active := cfg.Theme.Preset
	if active == "" {
		active = "default"
	}
	sample := markup.Parse(themeSample)
	nameStyle := lipgloss.NewStyle().Bold(true).Width(16)
	for _, name := range styles.PresetNames() {
		preset := styles.Presets[name]
		if err := styles.ApplyTheme(styles.ThemeConfig{Preset: name}); err != nil {
			return err
		}
		marker := " "
		if name == active {
			marker = "*"
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n    %s\n",
			marker, nameStyle.Render(name), styles.MutedStyle.Render(preset.Description),
			render.Terminal(sample, 0))
		if err != nil {
			return err
		}
	}
	return nil
}

func runDialect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cfg.Markup.Dialect)
		return err
	}
	d, err := markup.ParseDialect(args[0])
	if err != nil {
		return err
	}
	if err := config.SaveMarkupDialect(configFilePath, string(d)); err != nil {
		return fmt.Errorf("saving dialect: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Dialect set to %s in %s\n", d, configFilePath)
	return err
}
