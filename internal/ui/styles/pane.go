package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPane renders lines inside a rounded border with the title embedded in
// the top edge: ╭─ Title (hint) ─────╮
//
// The body is padded or cut to height rows. Each row is truncated to the inner
// width so the right border always aligns. A height of 0 keeps every row.
func RenderPane(lines []string, title, hint string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderHighlightFocusColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	innerWidth := max(width-2, 1)

	if height > 0 {
		rows := max(height-2, 1)
		if len(lines) > rows {
			lines = lines[:rows]
		}
		for len(lines) < rows {
			lines = append(lines, "")
		}
	}

	var b strings.Builder
	b.WriteString(buildTopBorder(title, hint, innerWidth, borderStyle, titleStyle, hintStyle))
	b.WriteString("\n")

	side := borderStyle.Render(borderVertical)
	for _, line := range lines {
		line = TruncateString(line, innerWidth)
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(side + line + side + "\n")
	}

	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

func buildTopBorder(title, hint string, innerWidth int, borderStyle, titleStyle, hintStyle lipgloss.Style) string {
	plain := borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)

	// "─ " before and " ─" after is the minimum frame around a title.
	if title == "" || innerWidth < 4 {
		return plain
	}

	available := innerWidth - 4
	label := TruncateString(title, available)
	var hintText string
	if hint != "" && lipgloss.Width(label)+lipgloss.Width(hint)+3 <= available {
		hintText = "(" + hint + ")"
	}

	used := lipgloss.Width(label)
	if hintText != "" {
		used += 1 + lipgloss.Width(hintText)
	}
	dashes := max(innerWidth-3-used, 0)

	top := borderStyle.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(label)
	if hintText != "" {
		top += " " + hintStyle.Render(hintText)
	}
	return top + borderStyle.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
}
