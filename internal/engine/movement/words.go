package movement

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

// TextWords finds word boundaries by scanning text. A word is a run of
// letters, digits and underscores, or a run of other non-blank
// characters. With BigWord, any run of non-blank characters is a word.
// Runes listed in Separators always end a word.
type TextWords struct {
	Text       Text
	BigWord    bool
	Separators string
}

// NewTextWords returns word boundaries over text.
func NewTextWords(text Text) TextWords {
	return TextWords{Text: text}
}

func (w TextWords) class(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case w.BigWord:
		return classWord
	case strings.ContainsRune(w.Separators, r):
		return classPunct
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	}
	return classPunct
}

// NextWordStart skips the rest of the current word and any blanks after it.
func (w TextWords) NextWordStart(offset int) int {
	n := w.Text.Len()
	if offset >= n {
		return n
	}
	offset = max(offset, 0)
	s := w.Text.Slice(offset, n)

	i := 0
	r, size := utf8.DecodeRuneInString(s)
	if cls := w.class(r); cls != classSpace {
		for i < len(s) {
			r, size = utf8.DecodeRuneInString(s[i:])
			if w.class(r) != cls {
				break
			}
			i += size
		}
	}
	for i < len(s) {
		r, size = utf8.DecodeRuneInString(s[i:])
		if w.class(r) != classSpace {
			break
		}
		i += size
	}
	return offset + i
}

// PrevWordStart skips blanks before offset and returns the start of the
// word before them.
func (w TextWords) PrevWordStart(offset int) int {
	if offset <= 0 {
		return 0
	}
	s := w.Text.Slice(0, offset)

	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if w.class(r) != classSpace {
			break
		}
		i -= size
	}
	if i == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	cls := w.class(r)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if w.class(r) != cls {
			break
		}
		i -= size
	}
	return i
}

// NextWordEnd returns the last character of the word that ends after
// offset, skipping blanks.
func (w TextWords) NextWordEnd(offset int) int {
	n := w.Text.Len()
	if offset >= n {
		return n
	}
	offset = max(offset, 0)
	s := w.Text.Slice(offset, n)

	// Step off the current character so that repeated calls advance.
	_, i := utf8.DecodeRuneInString(s)
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if w.class(r) != classSpace {
			break
		}
		i += size
	}
	if i >= len(s) {
		return n
	}

	r, _ := utf8.DecodeRuneInString(s[i:])
	cls := w.class(r)
	for {
		_, size := utf8.DecodeRuneInString(s[i:])
		next := i + size
		if next >= len(s) {
			return offset + i
		}
		nr, _ := utf8.DecodeRuneInString(s[next:])
		if w.class(nr) != cls {
			return offset + i
		}
		i = next
	}
}
