package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/watcher"
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Render a file, optionally re-rendering whenever it changes",
	Long: `Render the markup in FILE. With --watch the preview is redrawn every time
the file is saved, so any editor can be used alongside it. Press Ctrl+C to stop.

Examples:
  wamark preview message.txt
  wamark preview --watch --format glamour message.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("watch", false, "re-render when the file changes")
	previewCmd.Flags().StringP("format", "f", "", "output format (default: ansi on a terminal, plain otherwise)")
	previewCmd.Flags().IntP("width", "w", 0, "wrap width for ansi and glamour output")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")
	renderer := newApp(width).renderer
	path := args[0]
	out := cmd.OutOrStdout()

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return renderFile(cmd.Context(), out, renderer, path, format, false)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFile(ctx, out, renderer, path, format, isTerminal(out))
}

// watchFile renders path once, then again after every debounced change,
// until ctx is cancelled.
func watchFile(ctx context.Context, out io.Writer, renderer *render.Renderer, path string, format render.Format, clear bool) error {
	if err := renderFile(ctx, out, renderer, path, format, clear); err != nil {
		return err
	}

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	defer func() {
		if err := w.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "stopping watcher", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			log.Debug(log.CatWatcher, "file changed", "path", path)
			if err := renderFile(ctx, out, renderer, path, format, clear); err != nil {
				// A file caught mid-write should not end the session.
				log.ErrorErr(log.CatWatcher, "re-render failed", err, "path", path)
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func renderFile(ctx context.Context, out io.Writer, renderer *render.Renderer, path string, format render.Format, clear bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	rendered, err := renderer.Render(ctx, strings.TrimSuffix(string(data), "\n"), format)
	if err != nil {
		return err
	}
	if clear {
		_, _ = io.WriteString(out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(rendered, "\n"))
	return err
}
