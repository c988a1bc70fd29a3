// Package subset implements run-length markings over a coordinate space.
//
// A Subset assigns a count to every position of a space of fixed length.
// The revision engine uses subsets over the union space (visible text plus
// tombstones) to record which positions an edit inserted or deleted. A
// position is "in" the subset when its count is non-zero.
//
// Binary operations require both operands to cover spaces of the same
// length; a mismatch is a programming error and panics.
package subset

import (
	"fmt"
	"strings"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// Segment is a run of Len positions sharing the same Count.
type Segment struct {
	Len   int
	Count int
}

// Subset is an immutable run-length marking.
type Subset struct {
	segments []Segment
}

// New returns the empty subset over a space of length n.
func New(n int) Subset {
	var b Builder
	b.PadToLen(n)
	return b.Build()
}

// Len returns the length of the space the subset covers.
func (s Subset) Len() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.Len
	}
	return total
}

// IsEmpty reports whether no position is in the subset.
func (s Subset) IsEmpty() bool {
	for _, seg := range s.segments {
		if seg.Count != 0 {
			return false
		}
	}
	return true
}

// Segments returns a copy of the segments.
func (s Subset) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// Count returns how many positions satisfy m.
func (s Subset) Count(m Matcher) int {
	total := 0
	for _, seg := range s.segments {
		if m.matches(seg.Count) {
			total += seg.Len
		}
	}
	return total
}

// LenAfterDelete returns the length of the space once the subset is
// removed from it.
func (s Subset) LenAfterDelete() int {
	return s.Count(Zero)
}

// Union sums the counts of two subsets.
func (s Subset) Union(other Subset) Subset {
	var b Builder
	for _, z := range s.zip(other) {
		b.PushSegment(z.Len, z.ACount+z.BCount)
	}
	return b.Build()
}

// Subtract removes the counts of other from s.
// Every count of other must be covered by s.
func (s Subset) Subtract(other Subset) Subset {
	var b Builder
	for _, z := range s.zip(other) {
		if z.ACount < z.BCount {
			panic(fmt.Sprintf("subset: subtract count would go negative (%d - %d)", z.ACount, z.BCount))
		}
		b.PushSegment(z.Len, z.ACount-z.BCount)
	}
	return b.Build()
}

// Bitxor computes the per-position xor of counts.
func (s Subset) Bitxor(other Subset) Subset {
	var b Builder
	for _, z := range s.zip(other) {
		b.PushSegment(z.Len, z.ACount^z.BCount)
	}
	return b.Build()
}

// Complement maps zero counts to one and everything else to zero.
func (s Subset) Complement() Subset {
	var b Builder
	for _, seg := range s.segments {
		c := 0
		if seg.Count == 0 {
			c = 1
		}
		b.PushSegment(seg.Len, c)
	}
	return b.Build()
}

// TransformExpand maps s into the larger space described by other.
// The zero positions of other are the space of s; the non-zero positions
// of other are inserted with count zero.
func (s Subset) TransformExpand(other Subset) Subset {
	return s.transform(other, false)
}

// TransformUnion is TransformExpand, except that the positions inserted
// from other keep their counts.
func (s Subset) TransformUnion(other Subset) Subset {
	return s.transform(other, true)
}

func (s Subset) transform(other Subset, union bool) Subset {
	var b Builder
	segs := s.segments
	var cur Segment

	for _, oseg := range other.segments {
		if oseg.Count > 0 {
			c := 0
			if union {
				c = oseg.Count
			}
			b.PushSegment(oseg.Len, c)
			continue
		}

		remaining := oseg.Len
		for remaining > 0 {
			if cur.Len == 0 {
				if len(segs) == 0 {
					panic("subset: transform target has more zero positions than the source length")
				}
				cur, segs = segs[0], segs[1:]
			}
			n := min(cur.Len, remaining)
			b.PushSegment(n, cur.Count)
			remaining -= n
			cur.Len -= n
		}
	}

	if cur.Len != 0 || len(segs) != 0 {
		panic("subset: transform target has fewer zero positions than the source length")
	}
	return b.Build()
}

// TransformShrink removes the positions marked by other from the space of
// s.
func (s Subset) TransformShrink(other Subset) Subset {
	var b Builder
	for _, z := range s.zip(other) {
		if z.BCount == 0 {
			b.PushSegment(z.Len, z.ACount)
		}
	}
	return b.Build()
}

// Range is a half-open interval of positions.
type Range struct {
	Start, End int
}

// Ranges returns the maximal intervals whose counts satisfy m.
func (s Subset) Ranges(m Matcher) []Range {
	var out []Range
	pos := 0
	for _, seg := range s.segments {
		if m.matches(seg.Count) {
			if n := len(out); n > 0 && out[n-1].End == pos {
				out[n-1].End += seg.Len
			} else {
				out = append(out, Range{pos, pos + seg.Len})
			}
		}
		pos += seg.Len
	}
	return out
}

// ComplementRanges returns the intervals of zero count.
func (s Subset) ComplementRanges() []Range {
	return s.Ranges(Zero)
}

// DeleteFrom returns r without the positions in the subset.
func (s Subset) DeleteFrom(r rope.Rope) rope.Rope {
	if s.Len() != r.Len() {
		panic(fmt.Sprintf("subset: length %d does not match rope length %d", s.Len(), r.Len()))
	}
	var b rope.Builder
	for _, rg := range s.ComplementRanges() {
		b.WriteRope(r.Subseq(rg.Start, rg.End))
	}
	return b.Build()
}

// DeleteFromString is DeleteFrom for plain strings.
func (s Subset) DeleteFromString(str string) string {
	if s.Len() != len(str) {
		panic(fmt.Sprintf("subset: length %d does not match string length %d", s.Len(), len(str)))
	}
	var sb strings.Builder
	for _, rg := range s.ComplementRanges() {
		sb.WriteString(str[rg.Start:rg.End])
	}
	return sb.String()
}

// Equal reports whether both subsets have the same counts everywhere.
func (s Subset) Equal(other Subset) bool {
	a, b := s.normalized(), other.normalized()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Subset) normalized() []Segment {
	var b Builder
	for _, seg := range s.segments {
		b.PushSegment(seg.Len, seg.Count)
	}
	return b.segments
}

// String renders the subset with '-' for zero positions and '#' for
// non-zero ones. Intended for tests and debugging.
func (s Subset) String() string {
	var sb strings.Builder
	for _, seg := range s.segments {
		ch := "-"
		if seg.Count != 0 {
			ch = "#"
		}
		sb.WriteString(strings.Repeat(ch, seg.Len))
	}
	return sb.String()
}
