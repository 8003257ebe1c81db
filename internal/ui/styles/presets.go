// Package styles contains Lip Gloss style definitions.
package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"dracula":       DraculaPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// PresetNames returns the preset names sorted alphabetically.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset matches the Dark values in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default wamark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault:   "#696969",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenMarkupBold:   "#FFFFFF",
		TokenMarkupItalic: "#DDDDDD",
		TokenMarkupStrike: "#999999",
		TokenMarkupMono:   "#94E2D5",
		TokenMarkupMonoBg: "#313244",

		TokenSelectionBg: "#45475A",

		TokenButtonText:     "#FFFFFF",
		TokenButtonBg:       "#2D3436",
		TokenButtonActiveBg: "#3498DB",
	},
}

// DraculaPreset is a dark theme with vibrant colors.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2",
		TokenTextMuted:       "#6272A4",
		TokenTextPlaceholder: "#6272A4",

		TokenBorderDefault:   "#44475A",
		TokenBorderHighlight: "#BD93F9",

		TokenStatusSuccess: "#50FA7B",
		TokenStatusWarning: "#F1FA8C",
		TokenStatusError:   "#FF5555",

		TokenMarkupBold:   "#FF79C6",
		TokenMarkupItalic: "#F1FA8C",
		TokenMarkupStrike: "#6272A4",
		TokenMarkupMono:   "#8BE9FD",
		TokenMarkupMonoBg: "#282A36",

		TokenSelectionBg: "#44475A",

		TokenButtonText:     "#F8F8F2",
		TokenButtonBg:       "#44475A",
		TokenButtonActiveBg: "#BD93F9",
	},
}

// NordPreset is an arctic, north-bluish palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextMuted:       "#4C566A",
		TokenTextPlaceholder: "#616E88",

		TokenBorderDefault:   "#4C566A",
		TokenBorderHighlight: "#88C0D0",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenMarkupBold:   "#ECEFF4",
		TokenMarkupItalic: "#D8DEE9",
		TokenMarkupStrike: "#4C566A",
		TokenMarkupMono:   "#8FBCBB",
		TokenMarkupMonoBg: "#3B4252",

		TokenSelectionBg: "#434C5E",

		TokenButtonText:     "#ECEFF4",
		TokenButtonBg:       "#3B4252",
		TokenButtonActiveBg: "#5E81AC",
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextMuted:       "#BBBBBB",
		TokenTextPlaceholder: "#BBBBBB",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderHighlight: "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenMarkupBold:   "#FFFFFF",
		TokenMarkupItalic: "#FFFFFF",
		TokenMarkupStrike: "#BBBBBB",
		TokenMarkupMono:   "#00FFFF",
		TokenMarkupMonoBg: "#000000",

		TokenSelectionBg: "#0000FF",

		TokenButtonText:     "#000000",
		TokenButtonBg:       "#BBBBBB",
		TokenButtonActiveBg: "#FFFF00",
	},
}
