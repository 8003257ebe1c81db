package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wamark/internal/markup"
	"github.com/zjrosen/wamark/internal/ui/styles"
)

func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0644))

	// "::" keeps dotted color tokens like "markup.bold" as single keys.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "whatsapp", cfg.Markup.Dialect)
	require.Equal(t, "Type a message", cfg.Markup.Placeholder)
	require.Equal(t, 5*time.Minute, cfg.Markup.CacheTTL)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.True(t, cfg.UI.ShowStatusBar)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	defaults := Defaults()
	require.Equal(t, defaults.Markup, cfg.Markup)
	require.Equal(t, defaults.UI, cfg.UI)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
markup:
  dialect: compact
  cache_ttl: 30s
ui:
  preview_width: 48
storage:
  db_path: /tmp/templates.db
flags:
  glamour-preview: true
`)
	require.Equal(t, "compact", cfg.Markup.Dialect)
	require.Equal(t, 30*time.Second, cfg.Markup.CacheTTL)
	require.Equal(t, "Type a message", cfg.Markup.Placeholder, "unset keys keep defaults")
	require.Equal(t, 48, cfg.UI.PreviewWidth)
	require.Equal(t, "/tmp/templates.db", cfg.Storage.DBPath)
	require.True(t, cfg.Flags["glamour-preview"])

	opts := cfg.RenderOptions()
	require.Equal(t, markup.DialectCompact, opts.Dialect)
	require.Equal(t, 48, opts.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad dialect", func(c *Config) { c.Markup.Dialect = "slack" }, "markup.dialect"},
		{"negative ttl", func(c *Config) { c.Markup.CacheTTL = -time.Second }, "markup.cache_ttl"},
		{"negative width", func(c *Config) { c.UI.PreviewWidth = -1 }, "ui.preview_width"},
		{"unknown preset", func(c *Config) { c.Theme.Preset = "solarized" }, "unknown theme preset"},
		{"bad color", func(c *Config) { c.Theme.Colors = map[string]any{"markup.bold": "red"} }, "invalid hex color"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"otlp without endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_LeavesThemeUntouched(t *testing.T) {
	t.Cleanup(styles.ResetTheme)

	cfg := Defaults()
	cfg.Theme.Preset = "dracula"
	require.NoError(t, cfg.Validate())
	require.Equal(t, styles.DefaultPreset.Colors[styles.TokenTextPrimary], styles.TextPrimaryColor.Dark)
}

func TestThemeConfig_NestedAndDottedColors(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nord
  colors:
    markup.bold: "#FF0000"
    status:
      error: "#00FF00"
`)
	require.Equal(t, map[string]string{
		"markup.bold":  "#FF0000",
		"status.error": "#00FF00",
	}, cfg.Theme.FlattenedColors())

	t.Cleanup(styles.ResetTheme)
	require.NoError(t, styles.ApplyTheme(cfg.Theme.StylesConfig()))
	require.Equal(t, "#FF0000", styles.MarkupBoldColor.Dark)
	require.Equal(t, "#00FF00", styles.StatusErrorColor.Dark)
	require.Equal(t, styles.NordPreset.Colors[styles.TokenTextPrimary], styles.TextPrimaryColor.Dark)
}

func TestTracingOptions(t *testing.T) {
	cfg := Defaults().Tracing
	cfg.Enabled = true
	cfg.FilePath = "/tmp/t.jsonl"

	opts := cfg.TracingOptions()
	require.True(t, opts.Enabled)
	require.Equal(t, "file", opts.Exporter)
	require.Equal(t, "/tmp/t.jsonl", opts.FilePath)
	require.Equal(t, "wamark", opts.ServiceName)
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
