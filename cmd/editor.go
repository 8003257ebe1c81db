package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/ui/editor"
)

// runEditor runs the editor full screen and returns its final state.
func runEditor(ctx context.Context, a *app, ecfg editor.Config) (editor.Model, error) {
	zone.NewGlobal()
	defer zone.Close()

	ecfg.Renderer = a.renderer
	ecfg.Flags = a.flags
	ecfg.ShowStatusBar = cfg.UI.ShowStatusBar

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	// Keep stdout free for the final text when it is piped.
	if !isTerminal(os.Stdout) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	if !isTerminal(os.Stdin) {
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(editor.New(ctx, ecfg), opts...)

	log.Info(log.CatUI, "editor starting", "template", ecfg.Create.Name)
	final, err := p.Run()
	if err != nil {
		return editor.Model{}, fmt.Errorf("running editor: %w", err)
	}
	m, ok := final.(editor.Model)
	if !ok {
		return editor.Model{}, fmt.Errorf("unexpected editor model %T", final)
	}
	return m, nil
}

// runScratchEditor opens an unsaved buffer seeded from the arguments and
// prints its final text on exit so the result can be piped.
func runScratchEditor(cmd *cobra.Command, args []string) error {
	a := newApp(0)
	defer a.Close()

	body := ""
	if len(args) > 0 {
		var err error
		if body, err = readText(cmd, args); err != nil {
			return err
		}
	}

	m, err := runEditor(cmd.Context(), a, editor.Config{Body: body})
	if err != nil {
		return err
	}
	if !isTerminal(cmd.OutOrStdout()) && m.Text() != "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), m.Text())
	}
	return err
}
