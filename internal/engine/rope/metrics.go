package rope

import "strings"

// TextSummary holds aggregated metrics for a span of text.
// Summaries form a monoid under Add, which is how internal nodes cache the
// metrics of their subtrees.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Lines is the number of '\n' characters.
	Lines int

	// LongestLine is the byte length of the longest line, newline excluded.
	LongestLine int

	// FirstLineLen is the byte length of the first line.
	FirstLineLen int

	// LastLineLen is the byte length of the last line.
	LastLineLen int
}

// Add combines two adjacent summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines + other.Lines,
	}

	// The last line of s and the first line of other join into one line.
	joined := s.LastLineLen + other.FirstLineLen
	result.LongestLine = max(s.LongestLine, other.LongestLine, joined)

	if s.Lines == 0 {
		result.FirstLineLen = joined
	} else {
		result.FirstLineLen = s.FirstLineLen
	}
	if other.Lines == 0 {
		result.LastLineLen = joined
	} else {
		result.LastLineLen = other.LastLineLen
	}

	return result
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s)}
	if len(s) == 0 {
		return sum
	}

	lineStart := 0
	for {
		idx := strings.IndexByte(s[lineStart:], '\n')
		if idx < 0 {
			break
		}
		if sum.Lines == 0 {
			sum.FirstLineLen = idx
		}
		sum.LongestLine = max(sum.LongestLine, idx)
		sum.Lines++
		lineStart += idx + 1
	}

	sum.LastLineLen = len(s) - lineStart
	sum.LongestLine = max(sum.LongestLine, sum.LastLineLen)
	if sum.Lines == 0 {
		sum.FirstLineLen = sum.LastLineLen
	}
	return sum
}

// findNthNewline returns the byte index of the nth (1-indexed) newline in s,
// or -1 if s has fewer than n newlines.
func findNthNewline(s string, n int) int {
	if n <= 0 {
		return -1
	}
	pos := 0
	for {
		idx := strings.IndexByte(s[pos:], '\n')
		if idx < 0 {
			return -1
		}
		n--
		if n == 0 {
			return pos + idx
		}
		pos += idx + 1
	}
}
