package editor

import (
	"slices"
	"strings"

	"github.com/zjrosen/wamark/internal/markup"
)

// Buffer is the editable message text. Offsets are runes. The selection runs
// from anchor to cursor; they are equal when nothing is selected.
//
// Every mutation allocates fresh storage, so copies of a Buffer never share
// state after an edit.
type Buffer struct {
	text   []rune
	cursor int
	anchor int
}

// NewBuffer returns a buffer holding text with the cursor at the end.
func NewBuffer(text string) Buffer {
	r := []rune(text)
	return Buffer{text: r, cursor: len(r), anchor: len(r)}
}

func (b Buffer) Text() string { return string(b.text) }
func (b Buffer) Len() int     { return len(b.text) }
func (b Buffer) Cursor() int  { return b.cursor }

// Selection returns the ordered selection range.
func (b Buffer) Selection() markup.Selection {
	return markup.Selection{Start: b.anchor, End: b.cursor}.Normalize(len(b.text))
}

// HasSelection reports whether any text is selected.
func (b Buffer) HasSelection() bool {
	return b.anchor != b.cursor
}

// Select sets anchor and cursor directly. Out-of-range values are clamped.
func (b *Buffer) Select(anchor, cursor int) {
	b.anchor = clamp(anchor, 0, len(b.text))
	b.cursor = clamp(cursor, 0, len(b.text))
}

// SelectAll selects the whole text, cursor at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

func (b *Buffer) moveTo(pos int, extend bool) {
	b.cursor = clamp(pos, 0, len(b.text))
	if !extend {
		b.anchor = b.cursor
	}
}

// Left moves one rune left. Without extend, an active selection collapses to
// its start instead.
func (b *Buffer) Left(extend bool) {
	if !extend && b.HasSelection() {
		b.moveTo(b.Selection().Start, false)
		return
	}
	b.moveTo(b.cursor-1, extend)
}

// Right moves one rune right, or collapses a selection to its end.
func (b *Buffer) Right(extend bool) {
	if !extend && b.HasSelection() {
		b.moveTo(b.Selection().End, false)
		return
	}
	b.moveTo(b.cursor+1, extend)
}

// Home moves to the start of the cursor's line.
func (b *Buffer) Home(extend bool) {
	b.moveTo(b.lineStart(b.cursor), extend)
}

// End moves to the end of the cursor's line.
func (b *Buffer) End(extend bool) {
	b.moveTo(b.lineEnd(b.cursor), extend)
}

// Up moves to the previous line, keeping the column where possible.
func (b *Buffer) Up(extend bool) {
	start := b.lineStart(b.cursor)
	if start == 0 {
		b.moveTo(0, extend)
		return
	}
	col := b.cursor - start
	prevStart := b.lineStart(start - 1)
	b.moveTo(min(prevStart+col, start-1), extend)
}

// Down moves to the next line, keeping the column where possible.
func (b *Buffer) Down(extend bool) {
	end := b.lineEnd(b.cursor)
	if end == len(b.text) {
		b.moveTo(end, extend)
		return
	}
	col := b.cursor - b.lineStart(b.cursor)
	nextStart := end + 1
	b.moveTo(min(nextStart+col, b.lineEnd(nextStart)), extend)
}

// Insert replaces the selection (if any) with s.
func (b *Buffer) Insert(s string) {
	sel := b.Selection()
	ins := []rune(s)
	b.text = slices.Concat(b.text[:sel.Start], ins, b.text[sel.End:])
	b.moveTo(sel.Start+len(ins), false)
}

// Backspace deletes the selection, or the rune before the cursor.
func (b *Buffer) Backspace() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.cursor == 0 {
		return
	}
	b.text = slices.Concat(b.text[:b.cursor-1], b.text[b.cursor:])
	b.moveTo(b.cursor-1, false)
}

// DeleteForward deletes the selection, or the rune after the cursor.
func (b *Buffer) DeleteForward() {
	if b.HasSelection() {
		b.Insert("")
		return
	}
	if b.cursor == len(b.text) {
		return
	}
	b.text = slices.Concat(b.text[:b.cursor], b.text[b.cursor+1:])
}

// Wrap applies the dialect delimiter for style around the selection. The same
// characters stay selected and the selection keeps its direction.
func (b *Buffer) Wrap(style markup.Style, d markup.Dialect) {
	forward := b.anchor <= b.cursor
	text, sel := markup.WrapStyle(string(b.text), markup.Selection{Start: b.anchor, End: b.cursor}, style, d)
	b.text = []rune(text)
	if forward {
		b.anchor, b.cursor = sel.Start, sel.End
	} else {
		b.anchor, b.cursor = sel.End, sel.Start
	}
}

// LineCol returns the zero-based line and rune column of the cursor.
func (b Buffer) LineCol() (line, col int) {
	line = strings.Count(string(b.text[:b.cursor]), "\n")
	return line, b.cursor - b.lineStart(b.cursor)
}

func (b Buffer) lineStart(pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if b.text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func (b Buffer) lineEnd(pos int) int {
	for i := pos; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
