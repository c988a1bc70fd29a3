package subset

import "fmt"

// Matcher selects positions by count.
type Matcher int

const (
	// Zero matches positions with count zero.
	Zero Matcher = iota
	// NonZero matches positions with a non-zero count.
	NonZero
	// All matches every position.
	All
)

func (m Matcher) matches(count int) bool {
	switch m {
	case Zero:
		return count == 0
	case NonZero:
		return count != 0
	default:
		return true
	}
}

// Builder constructs a Subset from left to right.
type Builder struct {
	segments []Segment
	totalLen int
}

// PushSegment appends a run of n positions with the given count,
// coalescing with the previous run when the counts agree.
func (b *Builder) PushSegment(n, count int) {
	if n <= 0 {
		return
	}
	if last := len(b.segments) - 1; last >= 0 && b.segments[last].Count == count {
		b.segments[last].Len += n
	} else {
		b.segments = append(b.segments, Segment{Len: n, Count: count})
	}
	b.totalLen += n
}

// PadToLen extends the space with zero positions up to n.
func (b *Builder) PadToLen(n int) {
	if n > b.totalLen {
		b.PushSegment(n-b.totalLen, 0)
	}
}

// AddRange marks [start, end) with count. Ranges must be added in order.
func (b *Builder) AddRange(start, end, count int) {
	if start < b.totalLen {
		panic(fmt.Sprintf("subset: range start %d before builder end %d", start, b.totalLen))
	}
	b.PadToLen(start)
	b.PushSegment(end-start, count)
}

// Len returns the length of the space built so far.
func (b *Builder) Len() int {
	return b.totalLen
}

// Build returns the subset. The builder must not be reused.
func (b *Builder) Build() Subset {
	return Subset{segments: b.segments}
}
