// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty preview placeholder

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Markup colors (WhatsApp preview)
	MarkupBoldColor   = lipgloss.AdaptiveColor{Light: "#111111", Dark: "#FFFFFF"}
	MarkupItalicColor = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#DDDDDD"}
	MarkupStrikeColor = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#999999"}
	MarkupMonoColor   = lipgloss.AdaptiveColor{Light: "#0B6E4F", Dark: "#94E2D5"}
	MarkupMonoBgColor = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#313244"}

	// Editor selection highlight
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#BBD6FB", Dark: "#45475A"}

	// Toolbar button colors
	ButtonTextColor      = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonBgColor        = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonActiveBgColor  = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonDisabledBgColor = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Styles below are rebuilt by rebuildStyles after a theme is applied.

	MarkupBoldStyle   lipgloss.Style
	MarkupItalicStyle lipgloss.Style
	MarkupStrikeStyle lipgloss.Style
	MarkupMonoStyle   lipgloss.Style

	PlaceholderStyle lipgloss.Style
	MutedStyle       lipgloss.Style
	SelectionStyle   lipgloss.Style
	CursorStyle      lipgloss.Style

	ButtonStyle       lipgloss.Style
	ButtonActiveStyle lipgloss.Style

	StatusSuccessStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every Style from the current color variables.
func rebuildStyles() {
	MarkupBoldStyle = lipgloss.NewStyle().Bold(true).Foreground(MarkupBoldColor)
	MarkupItalicStyle = lipgloss.NewStyle().Italic(true).Foreground(MarkupItalicColor)
	MarkupStrikeStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(MarkupStrikeColor)
	MarkupMonoStyle = lipgloss.NewStyle().Foreground(MarkupMonoColor).Background(MarkupMonoBgColor)

	PlaceholderStyle = lipgloss.NewStyle().Italic(true).Foreground(TextPlaceholderColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	baseButton := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ButtonTextColor)
	ButtonStyle = baseButton.Background(ButtonBgColor)
	ButtonActiveStyle = baseButton.Background(ButtonActiveBgColor).Underline(true)

	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}
