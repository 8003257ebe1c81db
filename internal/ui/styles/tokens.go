// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Markup preview
	TokenMarkupBold   ColorToken = "markup.bold"
	TokenMarkupItalic ColorToken = "markup.italic"
	TokenMarkupStrike ColorToken = "markup.strike"
	TokenMarkupMono   ColorToken = "markup.mono"
	TokenMarkupMonoBg ColorToken = "markup.mono.bg"

	// Editor
	TokenSelectionBg ColorToken = "editor.selection"

	// Toolbar
	TokenButtonText     ColorToken = "button.text"
	TokenButtonBg       ColorToken = "button.bg"
	TokenButtonActiveBg ColorToken = "button.active"
)

// AllTokens returns every known color token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,
		TokenTextPlaceholder,
		TokenBorderDefault,
		TokenBorderHighlight,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenMarkupBold,
		TokenMarkupItalic,
		TokenMarkupStrike,
		TokenMarkupMono,
		TokenMarkupMonoBg,
		TokenSelectionBg,
		TokenButtonText,
		TokenButtonBg,
		TokenButtonActiveBg,
	}
}

func isValidToken(t ColorToken) bool {
	for _, known := range AllTokens() {
		if known == t {
			return true
		}
	}
	return false
}
