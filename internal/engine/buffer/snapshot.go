package buffer

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// Snapshot is a read-only view of a document at one revision. It is safe
// for concurrent use and does not change when the document is edited.
type Snapshot struct {
	text       rope.Rope
	revision   uint64
	tabWidth   int
	numLines   int
	maxLineLen int
}

// NewSnapshot returns a snapshot of text outside any document, used by
// tools that measure standalone text.
func NewSnapshot(text string, tabWidth int) *Snapshot {
	r := rope.FromString(text)
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	var lc lineCache
	lc.rescan(r)
	return &Snapshot{text: r, tabWidth: tabWidth, numLines: lc.numLines, maxLineLen: lc.maxLen}
}

// Rope returns the text as a rope.
func (s *Snapshot) Rope() rope.Rope {
	return s.text
}

// Text returns the full text.
func (s *Snapshot) Text() string {
	return s.text.String()
}

// Slice returns the text in [start, end), clamped.
func (s *Snapshot) Slice(start, end int) string {
	return s.text.Slice(start, end)
}

// Len returns the length in bytes.
func (s *Snapshot) Len() int {
	return s.text.Len()
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return s.text.IsEmpty()
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// TabWidth returns the tab width used for display columns.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// NumLines returns the number of lines.
func (s *Snapshot) NumLines() int {
	return s.numLines
}

// MaxLineLen returns the byte length of the longest line.
func (s *Snapshot) MaxLineLen() int {
	return s.maxLineLen
}

// ByteAt returns the byte at offset.
func (s *Snapshot) ByteAt(offset int) (byte, bool) {
	return s.text.ByteAt(offset)
}

// RuneAt returns the rune starting at offset and its size, or
// utf8.RuneError and 0 when offset is out of range.
func (s *Snapshot) RuneAt(offset int) (rune, int) {
	if offset < 0 || offset >= s.text.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.text.Slice(offset, offset+utf8.UTFMax))
}

// LineOfOffset returns the line containing offset, clamped.
func (s *Snapshot) LineOfOffset(offset int) int {
	return s.text.LineOfOffset(offset)
}

// OffsetOfLine returns the offset where line starts, clamped.
func (s *Snapshot) OffsetOfLine(line int) int {
	return s.text.OffsetOfLine(line)
}

// LineEndOffset returns the offset of the end of line, before its newline.
func (s *Snapshot) LineEndOffset(line int) int {
	return s.text.LineEndOffset(line)
}

// LineContent returns the text of line without its newline.
func (s *Snapshot) LineContent(line int) string {
	return s.text.LineText(line)
}

// OffsetToPoint converts an offset to a line and byte column.
func (s *Snapshot) OffsetToPoint(offset int) Point {
	line := s.text.LineOfOffset(offset)
	offset = min(max(offset, 0), s.text.Len())
	return Point{Line: line, Column: offset - s.text.OffsetOfLine(line)}
}

// PointToOffset converts a line and byte column to an offset. The column
// is clamped to the line.
func (s *Snapshot) PointToOffset(p Point) int {
	start := s.text.OffsetOfLine(p.Line)
	end := s.text.LineEndOffset(p.Line)
	return min(start+max(p.Column, 0), end)
}

// OffsetToPointUTF16 converts an offset to a line and UTF-16 column.
func (s *Snapshot) OffsetToPointUTF16(offset int) PointUTF16 {
	p := s.OffsetToPoint(offset)
	start := s.text.OffsetOfLine(p.Line)
	col := 0
	for _, r := range s.text.Slice(start, start+p.Column) {
		col += utf16Len(r)
	}
	return PointUTF16{Line: p.Line, Column: col}
}

// PointUTF16ToOffset converts a line and UTF-16 column to an offset. A
// column inside a surrogate pair or past the line end is clamped.
func (s *Snapshot) PointUTF16ToOffset(p PointUTF16) int {
	start := s.text.OffsetOfLine(p.Line)
	units := 0
	for i, r := range s.LineContent(p.Line) {
		units += utf16Len(r)
		if units > p.Column {
			return start + i
		}
	}
	return s.text.LineEndOffset(p.Line)
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// ColOfOffset returns the display column of offset on its line. Tabs
// advance to the next tab stop; other grapheme clusters take their
// terminal width.
func (s *Snapshot) ColOfOffset(offset int) int {
	line := s.text.LineOfOffset(offset)
	start := s.text.OffsetOfLine(line)
	col := 0
	s.eachGrapheme(line, func(off, c, width int) bool {
		if start+off >= offset {
			return false
		}
		col = c + width
		return true
	})
	return col
}

// OffsetOfLineCol returns the offset of the grapheme at display column col
// on line. Columns past the end of the line map to the line end; a column
// inside a wide character maps to its start.
func (s *Snapshot) OffsetOfLineCol(line, col int) int {
	start := s.text.OffsetOfLine(line)
	result := s.text.LineEndOffset(line)
	s.eachGrapheme(line, func(off, c, width int) bool {
		if c+width > col {
			result = start + off
			return false
		}
		return true
	})
	return result
}

// LineDisplayWidth returns the display width of line.
func (s *Snapshot) LineDisplayWidth(line int) int {
	return s.ColOfOffset(s.text.LineEndOffset(line))
}

// eachGrapheme calls fn for each grapheme cluster of line with its byte
// offset in the line, its starting display column and its width, until fn
// returns false.
func (s *Snapshot) eachGrapheme(line int, fn func(off, col, width int) bool) {
	rest := s.LineContent(line)
	off, col, state := 0, 0, -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width := runewidth.StringWidth(cluster)
		if cluster == "\t" {
			width = s.tabWidth - col%s.tabWidth
		}
		if !fn(off, col, width) {
			return
		}
		off += len(cluster)
		col += width
	}
}

// FirstNonBlank returns the offset of the first character of line that is
// not a space or a tab, or the line end.
func (s *Snapshot) FirstNonBlank(line int) int {
	start := s.text.OffsetOfLine(line)
	for i, c := range []byte(s.LineContent(line)) {
		if c != ' ' && c != '\t' {
			return start + i
		}
	}
	return s.text.LineEndOffset(line)
}

// NextGraphemeOffset returns the offset count grapheme clusters after
// offset without passing limit. An offset already at or past limit is
// returned unchanged.
func (s *Snapshot) NextGraphemeOffset(offset, count, limit int) int {
	limit = min(limit, s.text.Len())
	if offset >= limit {
		return offset
	}
	rest := s.text.Slice(offset, limit)
	state := -1
	for i := 0; i < count && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// PrevGraphemeOffset returns the offset count grapheme clusters before
// offset without passing limit. An offset already at or before limit is
// returned unchanged.
func (s *Snapshot) PrevGraphemeOffset(offset, count, limit int) int {
	limit = max(limit, 0)
	offset = min(offset, s.text.Len())
	// Segment one line at a time, from its start, so that only the text
	// being crossed is scanned.
	for count > 0 && offset > limit {
		from := max(limit, s.text.OffsetOfLine(s.text.LineOfOffset(offset-1)))
		bounds := graphemeBounds(s.text.Slice(from, offset), from)
		if count <= len(bounds) {
			return bounds[len(bounds)-count]
		}
		count -= len(bounds)
		offset = from
	}
	return offset
}

// graphemeBounds returns the start offset of every grapheme cluster of
// text, which begins at base.
func graphemeBounds(text string, base int) []int {
	var bounds []int
	state := -1
	for text != "" {
		bounds = append(bounds, base)
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		base += len(cluster)
	}
	return bounds
}
