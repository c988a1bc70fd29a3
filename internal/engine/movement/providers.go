package movement

// Metrics answers line and column questions about a document. All offsets
// are bytes and out-of-range arguments clamp. *buffer.Snapshot implements
// Metrics.
type Metrics interface {
	Len() int
	NumLines() int
	LineOfOffset(offset int) int
	OffsetOfLine(line int) int
	// LineEndOffset returns the end of line before its newline.
	LineEndOffset(line int) int
	// ColOfOffset returns the display column of offset on its line.
	ColOfOffset(offset int) int
	// OffsetOfLineCol returns the offset at display column col of line,
	// clamped to the line end.
	OffsetOfLineCol(line, col int) int
	FirstNonBlank(line int) int
	NextGraphemeOffset(offset, count, limit int) int
	PrevGraphemeOffset(offset, count, limit int) int
}

// Text gives read access to document text.
type Text interface {
	Len() int
	Slice(start, end int) string
}

// WordBoundaries finds word boundaries. Each method maps an offset to an
// offset and returns the document bounds when no word is found.
type WordBoundaries interface {
	// NextWordStart returns the start of the next word after offset.
	NextWordStart(offset int) int
	// PrevWordStart returns the start of the word before offset.
	PrevWordStart(offset int) int
	// NextWordEnd returns the offset of the last character of the word
	// ending after offset.
	NextWordEnd(offset int) int
}

// BracketMatcher finds matching and enclosing brackets.
type BracketMatcher interface {
	// MatchingPair returns the offset of the bracket matching the one at
	// offset.
	MatchingPair(offset int) (int, bool)
	// NextUnmatched returns the offset of the next c after offset that
	// closes a pair opened before offset.
	NextUnmatched(offset int, c rune) (int, bool)
	// PreviousUnmatched returns the offset of the previous c before offset
	// that opens a pair closed after offset.
	PreviousUnmatched(offset int, c rune) (int, bool)
}
