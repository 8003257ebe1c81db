package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/wamark/internal/config"
	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".wamark/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// configFilePath is the file settings are saved back to.
	configFilePath string
	logCleanup     func()
)

var rootCmd = &cobra.Command{
	Use:   "wamark",
	Short: "WhatsApp-style markup formatter and template editor",
	Long: `wamark parses, renders and edits text written in WhatsApp inline markup
(*bold*, _italic_, ~strike~, ` + "```mono```" + `) and manages message templates.

Run without arguments to open a scratch editor with a live preview.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
	RunE: runScratchEditor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .wamark/config.yaml, then ~/.config/wamark/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from WAMARK_LOG, default debug.log)")
	rootCmd.PersistentFlags().String("dialect", "", "markup dialect: whatsapp or compact (overrides config)")
}

// setup loads configuration, validates it and applies the theme before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	v := newViper()
	loaded, path, err := loadConfig(v, cfgFile)
	if err != nil {
		return err
	}
	if d, _ := cmd.Flags().GetString("dialect"); d != "" {
		loaded.Markup.Dialect = d
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(loaded.Theme.StylesConfig()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	cfg = loaded
	configFilePath = path
	log.Info(log.CatConfig, "config loaded", "path", path, "dialect", cfg.Markup.Dialect)
	return nil
}

func initLogging() error {
	if logCleanup != nil {
		return nil
	}
	debug := os.Getenv("WAMARK_DEBUG") != "" || debugFlag
	if !debug {
		return nil
	}
	logPath := os.Getenv("WAMARK_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "wamark")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "wamark starting", "version", version, "logPath", logPath)
	return nil
}

// newViper uses "::" as the key delimiter so dotted color tokens such as
// "markup.bold" stay single keys.
func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetEnvPrefix("WAMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer("::", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := config.Defaults()
	v.SetDefault("markup::dialect", defaults.Markup.Dialect)
	v.SetDefault("markup::placeholder", defaults.Markup.Placeholder)
	v.SetDefault("markup::cache_ttl", defaults.Markup.CacheTTL)
	v.SetDefault("ui::markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("ui::preview_width", defaults.UI.PreviewWidth)
	v.SetDefault("ui::show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("storage::db_path", defaults.Storage.DBPath)
	v.SetDefault("tracing::enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing::exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing::otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", defaults.Tracing.SampleRate)
	return v
}

// loadConfig resolves the config file and unmarshals it over the defaults.
//
// Lookup order:
//  1. explicit path (--config)
//  2. .wamark/config.yaml (current directory)
//  3. ~/.config/wamark/config.yaml (user config)
//
// When nothing is found a commented default is written to .wamark/config.yaml.
// It returns the path settings should be saved to.
func loadConfig(v *viper.Viper, explicit string) (config.Config, string, error) {
	switch {
	case explicit != "":
		v.SetConfigFile(explicit)
	case fileExists(localConfigPath):
		v.SetConfigFile(localConfigPath)
	default:
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "wamark"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		// If write fails, just continue with defaults (no config file)
		if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
			v.SetConfigFile(localConfigPath)
			_ = v.ReadInConfig()
		}
	}

	loaded := config.Defaults()
	if err := v.Unmarshal(&loaded); err != nil {
		return config.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}

	path := v.ConfigFileUsed()
	if path == "" {
		path = localConfigPath
	}
	return loaded, path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
