package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/wamark/internal/ui/styles"
)

// visualLine is one screen row of the buffer after soft wrapping.
type visualLine struct {
	start, end int // rune offsets into the buffer, end exclusive
}

// layoutLines soft-wraps the buffer to width cells. Every logical line yields
// at least one row, so an empty buffer has one empty row.
func layoutLines(text []rune, width int) []visualLine {
	width = max(width, 1)
	var rows []visualLine

	start, cells := 0, 0
	for i, r := range text {
		if r == '\n' {
			rows = append(rows, visualLine{start, i})
			start, cells = i+1, 0
			continue
		}
		w := runewidth.RuneWidth(r)
		if cells+w > width && i > start {
			rows = append(rows, visualLine{start, i})
			start, cells = i, 0
		}
		cells += w
	}
	return append(rows, visualLine{start, len(text)})
}

// cursorRow returns the row index holding the cursor. A cursor exactly at a
// soft-wrap boundary belongs to the following row.
func cursorRow(rows []visualLine, cursor int) int {
	for i, row := range rows {
		if cursor < row.end || (cursor == row.end && (i == len(rows)-1 || rows[i+1].start > row.end)) {
			if cursor >= row.start {
				return i
			}
		}
	}
	return len(rows) - 1
}

// renderBuffer draws height rows of the buffer, scrolled so the cursor is
// visible. The cursor is shown as a reversed cell and the selection with the
// selection background.
func renderBuffer(b Buffer, width, height int, focused bool) []string {
	rows := layoutLines(b.text, width)
	cur := cursorRow(rows, b.cursor)

	first := 0
	if height > 0 && cur >= height {
		first = cur - height + 1
	}
	last := len(rows)
	if height > 0 {
		last = min(last, first+height)
	}

	sel := b.Selection()
	out := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		row := rows[i]
		var sb strings.Builder
		for pos := row.start; pos < row.end; pos++ {
			ch := string(b.text[pos])
			switch {
			case focused && pos == b.cursor:
				sb.WriteString(styles.CursorStyle.Render(ch))
			case pos >= sel.Start && pos < sel.End:
				sb.WriteString(styles.SelectionStyle.Render(ch))
			default:
				sb.WriteString(ch)
			}
		}
		if focused && i == cur && b.cursor == row.end {
			sb.WriteString(styles.CursorStyle.Render(" "))
		}
		out = append(out, sb.String())
	}
	return out
}
