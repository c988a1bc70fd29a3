package movement

import "unicode/utf8"

// DefaultPairs lists the bracket pairs TextBrackets matches by default,
// each opening rune followed by its closing rune.
const DefaultPairs = "()[]{}<>"

// TextBrackets matches brackets by scanning text and counting nesting
// depth. It does not know about strings or comments.
type TextBrackets struct {
	Text Text
	// Pairs lists opening and closing runes in alternation. Empty means
	// DefaultPairs.
	Pairs string
}

// NewTextBrackets returns a bracket matcher over text.
func NewTextBrackets(text Text) TextBrackets {
	return TextBrackets{Text: text}
}

// partner returns the other half of a bracket pair and whether r opens it.
func (b TextBrackets) partner(r rune) (other rune, opening, ok bool) {
	pairs := b.Pairs
	if pairs == "" {
		pairs = DefaultPairs
	}
	runes := []rune(pairs)
	for i := 0; i+1 < len(runes); i += 2 {
		switch r {
		case runes[i]:
			return runes[i+1], true, true
		case runes[i+1]:
			return runes[i], false, true
		}
	}
	return 0, false, false
}

// MatchingPair returns the bracket matching the one at offset.
func (b TextBrackets) MatchingPair(offset int) (int, bool) {
	n := b.Text.Len()
	if offset < 0 || offset >= n {
		return offset, false
	}
	r, _ := utf8.DecodeRuneInString(b.Text.Slice(offset, min(offset+utf8.UTFMax, n)))
	other, opening, ok := b.partner(r)
	if !ok {
		return offset, false
	}
	if opening {
		return b.scanForward(offset, r, other)
	}
	return b.scanBackward(offset, r, other)
}

// NextUnmatched returns the next closing c whose opening bracket is before
// offset.
func (b TextBrackets) NextUnmatched(offset int, c rune) (int, bool) {
	open, opening, ok := b.partner(c)
	if !ok || opening {
		return offset, false
	}
	return b.scanForward(offset, open, c)
}

// PreviousUnmatched returns the previous opening c whose closing bracket
// is after offset.
func (b TextBrackets) PreviousUnmatched(offset int, c rune) (int, bool) {
	closing, opening, ok := b.partner(c)
	if !ok || !opening {
		return offset, false
	}
	return b.scanBackward(offset, closing, c)
}

// scanForward returns the first target after offset not balanced by a
// nested open.
func (b TextBrackets) scanForward(offset int, open, target rune) (int, bool) {
	n := b.Text.Len()
	if offset >= n {
		return offset, false
	}
	s := b.Text.Slice(offset, n)
	_, i := utf8.DecodeRuneInString(s)

	depth := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case target:
			if depth == 0 {
				return offset + i, true
			}
			depth--
		case open:
			depth++
		}
		i += size
	}
	return offset, false
}

// scanBackward returns the last target before offset not balanced by a
// nested close.
func (b TextBrackets) scanBackward(offset int, closing, target rune) (int, bool) {
	if offset <= 0 {
		return offset, false
	}
	s := b.Text.Slice(0, offset)

	depth := 0
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		switch r {
		case target:
			if depth == 0 {
				return i, true
			}
			depth--
		case closing:
			depth++
		}
	}
	return offset, false
}
