package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_Default(t *testing.T) {
	t.Cleanup(ResetTheme)

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenMarkupMono], MarkupMonoColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	t.Cleanup(ResetTheme)

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "dracula"}))
	require.Equal(t, "#FF79C6", MarkupBoldColor.Dark)
	require.Equal(t, "#FF79C6", MarkupBoldColor.Light)
	require.Equal(t, StatusErrorColor, ToastBorderErrorColor)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	t.Cleanup(ResetTheme)

	err := ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"markup.bold": "#00FF00"},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", MarkupBoldColor.Dark)
	require.Equal(t, NordPreset.Colors[TokenMarkupItalic], MarkupItalicColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	t.Cleanup(ResetTheme)

	tests := []struct {
		name string
		cfg  ThemeConfig
		want string
	}{
		{"unknown preset", ThemeConfig{Preset: "solarized-ish"}, "unknown theme preset"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"markup.blink": "#FFF"}}, "unknown color token"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"markup.bold": "red"}}, "invalid hex color"},
		{"short hex", ThemeConfig{Colors: map[string]string{"markup.bold": "#12"}}, "invalid hex color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyTheme_RunsRebuilders(t *testing.T) {
	t.Cleanup(ResetTheme)

	saved := styleRebuilders
	t.Cleanup(func() { styleRebuilders = saved })

	var seen string
	RegisterStyleRebuilder(func() { seen = MarkupStrikeColor.Dark })

	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"markup.strike": "#ABCDEF"}}))
	require.Equal(t, "#ABCDEF", seen)
}

func TestPresets_CoverEveryToken(t *testing.T) {
	for _, name := range PresetNames() {
		preset := Presets[name]
		for _, token := range AllTokens() {
			_, ok := preset.Colors[token]
			require.Truef(t, ok, "preset %s missing %s", name, token)
		}
		for token, hex := range preset.Colors {
			require.Truef(t, isValidHexColor(hex), "preset %s token %s: %s", name, token, hex)
		}
	}
}

func TestPresetNames_Sorted(t *testing.T) {
	require.Equal(t, []string{"default", "dracula", "high-contrast", "nord"}, PresetNames())
}
