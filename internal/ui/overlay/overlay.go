// Package overlay draws one rendered block over another, keeping the ANSI
// styling of both. The editor uses it for toasts and the log panel.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors the foreground inside the background area.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the background area and where the foreground goes.
type Config struct {
	Width    int
	Height   int
	Position Position
	// Margin keeps Top and Bottom placements this many rows from the edge.
	Margin int
}

// Place draws fg over bg. The background is padded to cfg.Height rows.
// A foreground larger than the area is anchored at the top-left corner.
func Place(cfg Config, fg, bg string) string {
	if fg == "" {
		return bg
	}

	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = Splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// Splice replaces the cells of line from column x onward with fg. Cells of
// line past the end of fg are kept.
func Splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.Margin
	case Bottom:
		y = cfg.Height - fgHeight - cfg.Margin
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
