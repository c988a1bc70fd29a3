package subset

import "fmt"

// zipSegment is a run over which both zipped subsets have constant counts.
type zipSegment struct {
	Len    int
	ACount int
	BCount int
}

func (s Subset) zip(other Subset) []zipSegment {
	if s.Len() != other.Len() {
		panic(fmt.Sprintf("subset: length mismatch %d != %d", s.Len(), other.Len()))
	}

	out := make([]zipSegment, 0, len(s.segments)+len(other.segments))
	a, b := s.segments, other.segments
	var ca, cb Segment
	for {
		if ca.Len == 0 {
			if len(a) == 0 {
				break
			}
			ca, a = a[0], a[1:]
		}
		if cb.Len == 0 {
			cb, b = b[0], b[1:]
		}
		n := min(ca.Len, cb.Len)
		out = append(out, zipSegment{Len: n, ACount: ca.Count, BCount: cb.Count})
		ca.Len -= n
		cb.Len -= n
	}
	return out
}

// Mapper translates offsets of the full space into offsets counting only
// positions that satisfy a matcher. Queries must be non-decreasing.
type Mapper struct {
	ranges   []Range
	idx      int
	consumed int
	last     int
}

// Mapper returns a Mapper for positions satisfying m.
func (s Subset) Mapper(m Matcher) *Mapper {
	return &Mapper{ranges: s.Ranges(m)}
}

// DocIndexToSubset returns the number of matching positions before i.
func (mp *Mapper) DocIndexToSubset(i int) int {
	if i < mp.last {
		panic(fmt.Sprintf("subset: mapper queried out of order (%d after %d)", i, mp.last))
	}
	mp.last = i
	for mp.idx < len(mp.ranges) && mp.ranges[mp.idx].End <= i {
		mp.consumed += mp.ranges[mp.idx].End - mp.ranges[mp.idx].Start
		mp.idx++
	}
	if mp.idx < len(mp.ranges) && mp.ranges[mp.idx].Start < i {
		return mp.consumed + i - mp.ranges[mp.idx].Start
	}
	return mp.consumed
}
