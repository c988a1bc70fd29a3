package find

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/delta"
)

// Text is the document a search runs over. *buffer.Snapshot implements it.
type Text interface {
	Len() int
	Slice(start, end int) string
	LineOfOffset(offset int) int
	OffsetOfLine(line int) int
}

// Options controls how a pattern matches.
type Options struct {
	CaseSensitive bool
	Regex         bool
	WholeWords    bool
}

// Find holds the active search and the occurrences found so far. The zero
// value has no pattern and finds nothing.
//
// Find is not safe for concurrent use.
type Find struct {
	pattern string
	opts    Options
	re      *regexp.Regexp

	occurrences *cursor.Selection
}

// New returns a Find with no pattern.
func New() *Find {
	return &Find{occurrences: cursor.NewSelection()}
}

// Set replaces the pattern and options and discards all occurrences. An
// empty pattern clears the search. A pattern that does not compile leaves
// the previous search in place.
func (f *Find) Set(pattern string, opts Options) error {
	if pattern == "" {
		f.Clear()
		return nil
	}

	expr := pattern
	if !opts.Regex {
		expr = regexp.QuoteMeta(pattern)
	}
	flags := "(?m)"
	if !opts.CaseSensitive {
		flags = "(?mi)"
	}
	re, err := regexp.Compile(flags + expr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	f.pattern = pattern
	f.opts = opts
	f.re = re
	f.occurrences = cursor.NewSelection()
	return nil
}

// Clear removes the pattern and all occurrences.
func (f *Find) Clear() {
	f.pattern = ""
	f.opts = Options{}
	f.re = nil
	f.occurrences = cursor.NewSelection()
}

// Pattern returns the current pattern.
func (f *Find) Pattern() string {
	return f.pattern
}

// Options returns the current options.
func (f *Find) Options() Options {
	return f.opts
}

// IsActive reports whether a pattern is set.
func (f *Find) IsActive() bool {
	return f.re != nil
}

// Occurrences returns the occurrences found so far, sorted by offset. The
// selection must not be modified.
func (f *Find) Occurrences() *cursor.Selection {
	if f.occurrences == nil {
		f.occurrences = cursor.NewSelection()
	}
	return f.occurrences
}

// UpdateFind searches the lines covering [start, end) of text and records
// every match as an occurrence.
func (f *Find) UpdateFind(text Text, start, end int) {
	if f.re == nil {
		return
	}
	ws, we := lineWindow(text, start, end)
	occ := f.Occurrences()
	for _, m := range f.matches(text, ws, we) {
		occ.AddRangeDistinct(m)
	}
}

// UpdateHighlights maps the occurrences through d, an edit that turned the
// previous text into text, and searches the edited lines again.
func (f *Find) UpdateHighlights(text Text, d *delta.Delta) {
	if f.re == nil || d.IsIdentity() {
		return
	}
	iv, newLen := d.Summary()
	ws, we := lineWindow(text, iv.Start, iv.Start+newLen)

	moved := f.Occurrences().ApplyDeltaDistinct(d, false, cursor.DriftOutside)
	kept := cursor.NewSelection()
	for _, r := range moved.Regions() {
		switch {
		case r.IsCaret():
			// The edit deleted the whole occurrence.
		case r.Min() < we && r.Max() > ws:
			ws, we = min(ws, r.Min()), max(we, r.Max())
		default:
			kept.AddRangeDistinct(r)
		}
	}
	for _, m := range f.matches(text, ws, we) {
		kept.AddRangeDistinct(m)
	}
	f.occurrences = kept
}

// Next returns the first match starting after offset, or with reverse the
// last match starting before it. With wrap the search continues from the
// other end of the document.
func (f *Find) Next(text Text, offset int, reverse, wrap bool) (cursor.SelRegion, bool) {
	if f.re == nil {
		return cursor.SelRegion{}, false
	}
	all := f.matches(text, 0, text.Len())
	if len(all) == 0 {
		return cursor.SelRegion{}, false
	}

	if reverse {
		for i := len(all) - 1; i >= 0; i-- {
			if all[i].Min() < offset {
				return all[i], true
			}
		}
		if wrap {
			return all[len(all)-1], true
		}
		return cursor.SelRegion{}, false
	}

	for _, m := range all {
		if m.Min() > offset {
			return m, true
		}
	}
	if wrap {
		return all[0], true
	}
	return cursor.SelRegion{}, false
}

// IsMatchingWholeWords reports whether [start, end) is neither preceded
// nor followed by a word character.
func IsMatchingWholeWords(text Text, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text.Slice(max(start-utf8.UTFMax, 0), start))
		if isWordChar(r) {
			return false
		}
	}
	if end < text.Len() {
		r, _ := utf8.DecodeRuneInString(text.Slice(end, end+utf8.UTFMax))
		if isWordChar(r) {
			return false
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// matches returns the non-empty matches inside [start, end) as forward
// regions.
func (f *Find) matches(text Text, start, end int) []cursor.SelRegion {
	var out []cursor.SelRegion
	for _, loc := range f.re.FindAllStringIndex(text.Slice(start, end), -1) {
		s, e := start+loc[0], start+loc[1]
		if s == e {
			continue
		}
		if f.opts.WholeWords && !IsMatchingWholeWords(text, s, e) {
			continue
		}
		out = append(out, cursor.NewRegion(s, e))
	}
	return out
}

// lineWindow widens [start, end) to whole lines, including the newline
// that ends the last one.
func lineWindow(text Text, start, end int) (int, int) {
	n := text.Len()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	ws := text.OffsetOfLine(text.LineOfOffset(start))
	we := text.OffsetOfLine(text.LineOfOffset(end) + 1)
	return ws, max(we, end)
}
