package markup

import "unicode/utf8"

// Selection is a half-open range of rune offsets into a text buffer.
type Selection struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Normalize clamps both bounds to [0, length] and orders them.
func (s Selection) Normalize(length int) Selection {
	s.Start = clamp(s.Start, 0, length)
	s.End = clamp(s.End, 0, length)
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Wrap surrounds text[start:end] with delimiter and shifts both bounds past
// the opening delimiter, so the same characters stay selected.
//
// Offsets are counted in runes. Out-of-range bounds are clamped to the text
// and reversed bounds are swapped; Wrap never panics.
//
// Bytes outside the inserted delimiters are copied unchanged, including
// invalid UTF-8, which counts as one rune per byte.
func Wrap(text string, start, end int, delimiter string) (string, int, int) {
	sel := Selection{Start: start, End: end}.Normalize(utf8.RuneCountInString(text))
	lo := byteOffset(text, sel.Start)
	hi := lo + byteOffset(text[lo:], sel.End-sel.Start)

	before, selected, after := text[:lo], text[lo:hi], text[hi:]

	shift := utf8.RuneCountInString(delimiter)
	return before + delimiter + selected + delimiter + after, sel.Start + shift, sel.End + shift
}

// WrapSelection is Wrap for a Selection value.
func WrapSelection(text string, sel Selection, delimiter string) (string, Selection) {
	out, start, end := Wrap(text, sel.Start, sel.End, delimiter)
	return out, Selection{Start: start, End: end}
}

// WrapStyle wraps the selection with the dialect's delimiter for style.
// StylePlain leaves the text and selection unchanged apart from clamping.
func WrapStyle(text string, sel Selection, style Style, d Dialect) (string, Selection) {
	delim := d.Delimiter(style)
	if delim == "" {
		return text, sel.Normalize(utf8.RuneCountInString(text))
	}
	return WrapSelection(text, sel, delim)
}

// byteOffset returns the byte index of the n-th rune in s.
func byteOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
