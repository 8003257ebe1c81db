// Package config provides configuration types and defaults for wamark.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/wamark/internal/log"
	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/render"
	"github.com/zjrosen/wamark/internal/tracing"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

// Config holds all configuration options for wamark.
type Config struct {
	Markup  MarkupConfig    `mapstructure:"markup"`
	UI      UIConfig        `mapstructure:"ui"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	Storage StorageConfig   `mapstructure:"storage"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// MarkupConfig controls parsing and the preview fallback text.
type MarkupConfig struct {
	Dialect     string        `mapstructure:"dialect"`     // "whatsapp" (default) or "compact"
	Placeholder string        `mapstructure:"placeholder"` // shown when the input is empty
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`   // 0 disables the parse cache
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or a glamour JSON path
	PreviewWidth  int    `mapstructure:"preview_width"`  // 0 wraps to the pane width
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     markup:
	//       bold: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "markup.bold": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// StylesConfig converts to the styles package representation.
func (t ThemeConfig) StylesConfig() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// StorageConfig locates the template database.
type StorageConfig struct {
	// DBPath is the SQLite file. Default: ~/.wamark/wamark.db
	DBPath string `mapstructure:"db_path"`
}

// TracingConfig holds tracing configuration for template operations.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/wamark/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// TracingOptions converts to the tracing package configuration.
func (t TracingConfig) TracingOptions() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	cfg.SampleRate = t.SampleRate
	return cfg
}

// RenderOptions converts the markup and ui sections to renderer options.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		Dialect:       markup.Dialect(c.Markup.Dialect),
		Placeholder:   c.Markup.Placeholder,
		Width:         c.UI.PreviewWidth,
		MarkdownStyle: c.UI.MarkdownStyle,
		CacheTTL:      c.Markup.CacheTTL,
	}
}

// DefaultTracesFilePath returns ~/.config/wamark/traces/traces.jsonl, or empty
// if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wamark", "traces", "traces.jsonl")
}

// DefaultDBPath returns ~/.wamark/wamark.db, or empty if the home directory
// is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wamark", "wamark.db")
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if err := ValidateMarkup(c.Markup); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := styles.ApplyTheme(c.Theme.StylesConfig()); err != nil {
		styles.ResetTheme()
		return fmt.Errorf("theme: %w", err)
	}
	styles.ResetTheme()
	return ValidateTracing(c.Tracing)
}

// ValidateMarkup checks the dialect and cache TTL.
func ValidateMarkup(m MarkupConfig) error {
	if m.Dialect != "" && !markup.Dialect(m.Dialect).IsValid() {
		return fmt.Errorf("markup.dialect must be %q or %q, got %q",
			markup.DialectWhatsApp, markup.DialectCompact, m.Dialect)
	}
	if m.CacheTTL < 0 {
		return fmt.Errorf("markup.cache_ttl must not be negative, got %s", m.CacheTTL)
	}
	return nil
}

// ValidateUI checks the preview width.
func ValidateUI(ui UIConfig) error {
	if ui.PreviewWidth < 0 {
		return fmt.Errorf("ui.preview_width must not be negative, got %d", ui.PreviewWidth)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Markup: MarkupConfig{
			Dialect:     string(markup.DefaultDialect),
			Placeholder: "Type a message",
			CacheTTL:    5 * time.Minute,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			PreviewWidth:  0,
			ShowStatusBar: true,
		},
		Storage: StorageConfig{
			DBPath: DefaultDBPath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# wamark configuration

# Markup parsing
markup:
  dialect: whatsapp          # "whatsapp" (` + "```mono```" + `) or "compact" (` + "`mono`" + `)
  placeholder: Type a message  # rendered when the input is empty
  cache_ttl: 5m              # parse cache lifetime, 0 disables it

# UI settings
ui:
  markdown_style: dark       # glamour style: "dark", "light" or a JSON style path
  preview_width: 0           # wrap preview output at this width (0 = pane width)
  show_status_bar: true      # character and variable counts in the editor

# Theme configuration
theme:
  # Use a preset (run 'wamark themes' to see available presets):
  # preset: dracula
  #
  # Available presets:
  #   default        - Default wamark theme
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   markup.bold: "#FFFFFF"
  #   markup.mono: "#94E2D5"
  #   editor.selection: "#45475A"

# Template storage
storage:
  # db_path: ~/.wamark/wamark.db

# Tracing for template operations
# tracing:
#   enabled: false                 # default: false
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/wamark/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # for the otlp exporter
#   sample_rate: 1.0               # 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   glamour-preview: false   # render the editor preview through glamour
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
