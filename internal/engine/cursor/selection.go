package cursor

import (
	"slices"
	"sort"
	"strings"
)

// Selection is an ordered set of regions. Regions added with AddRegion are
// kept sorted and merged so that no two overlap or touch. Regions added
// with AddRangeDistinct are kept sorted but only overlapping ones are
// replaced.
// A Selection is not safe for concurrent use.
type Selection struct {
	regions      []SelRegion
	lastInserted int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// NewCaretSelection returns a selection holding a caret at offset.
func NewCaretSelection(offset int) *Selection {
	return &Selection{regions: []SelRegion{Caret(offset)}}
}

// NewRegionSelection returns a selection holding the given region.
func NewRegionSelection(start, end int) *Selection {
	return &Selection{regions: []SelRegion{NewRegion(start, end)}}
}

// FromRegions builds a selection by adding each region in turn.
func FromRegions(regions ...SelRegion) *Selection {
	s := &Selection{}
	for _, r := range regions {
		s.AddRegion(r)
	}
	return s
}

// Regions returns the regions in order. The slice must not be modified.
func (s *Selection) Regions() []SelRegion {
	return s.regions
}

// Len returns the number of regions.
func (s *Selection) Len() int {
	return len(s.regions)
}

// IsEmpty reports whether the selection holds no regions.
func (s *Selection) IsEmpty() bool {
	return len(s.regions) == 0
}

// IsCaret reports whether every region is a caret.
func (s *Selection) IsCaret() bool {
	for _, r := range s.regions {
		if !r.IsCaret() {
			return false
		}
	}
	return true
}

// First returns the first region.
func (s *Selection) First() (SelRegion, bool) {
	if len(s.regions) == 0 {
		return SelRegion{}, false
	}
	return s.regions[0], true
}

// Last returns the last region.
func (s *Selection) Last() (SelRegion, bool) {
	if len(s.regions) == 0 {
		return SelRegion{}, false
	}
	return s.regions[len(s.regions)-1], true
}

// LastInserted returns the region most recently added.
func (s *Selection) LastInserted() (SelRegion, bool) {
	if s.lastInserted >= len(s.regions) {
		return s.Last()
	}
	return s.regions[s.lastInserted], true
}

// MinOffset returns the lowest offset covered, or 0 when empty.
func (s *Selection) MinOffset() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[0].Min()
}

// MaxOffset returns the highest offset covered, or 0 when empty.
func (s *Selection) MaxOffset() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[len(s.regions)-1].Max()
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	return &Selection{regions: slices.Clone(s.regions), lastInserted: s.lastInserted}
}

// Clear removes every region.
func (s *Selection) Clear() {
	s.regions = s.regions[:0]
	s.lastInserted = 0
}

// search returns the index of the first region whose max is at or after
// offset, or Len when there is none.
func (s *Selection) search(offset int) int {
	if len(s.regions) == 0 || offset > s.regions[len(s.regions)-1].Max() {
		return len(s.regions)
	}
	return sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Max() >= offset
	})
}

// searchMin returns the index of the first region whose min is at or
// after offset, or Len when there is none.
func (s *Selection) searchMin(offset int) int {
	if len(s.regions) == 0 || offset > s.regions[len(s.regions)-1].Min() {
		return len(s.regions)
	}
	return sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].Min() >= offset
	})
}

// AddRegion inserts r, merging it with every region it overlaps or touches.
func (s *Selection) AddRegion(r SelRegion) {
	ix := s.search(r.Min())
	if ix == len(s.regions) {
		s.regions = append(s.regions, r)
		s.lastInserted = ix
		return
	}

	end := ix
	if s.regions[ix].Min() <= r.Min() {
		if s.regions[ix].shouldMerge(r) {
			r = s.regions[ix].Merge(r)
		} else {
			ix++
		}
		end++
	}
	for end < len(s.regions) && r.shouldMerge(s.regions[end]) {
		r = r.Merge(s.regions[end])
		end++
	}

	if ix == end {
		s.regions = slices.Insert(s.regions, ix, r)
	} else {
		s.regions = slices.Replace(s.regions, ix, end, r)
	}
	s.lastInserted = ix
}

// AddRangeDistinct inserts r without merging. A region equal to r or
// overlapping its start is left in place and returned instead; otherwise
// every region overlapping r is replaced by it. It returns the bounds of
// the region now covering r.Min.
func (s *Selection) AddRangeDistinct(r SelRegion) (int, int) {
	ix := s.search(r.Min())
	if ix < len(s.regions) && s.regions[ix].Max() == r.Min() {
		ix++
	}
	if ix < len(s.regions) {
		occ := s.regions[ix]
		same := occ.Min() == r.Min() && occ.Max() == r.Max()
		overlapsStart := r.Min() >= occ.Min() && occ.Max() > r.Min()
		if same || overlapsStart {
			return occ.Min(), occ.Max()
		}
	}

	last := s.search(r.Max())
	if last < len(s.regions) && s.regions[last].Min() < r.Max() {
		last++
	}
	if last < ix {
		last = ix
	}
	s.regions = slices.Replace(s.regions, ix, last, r)
	s.lastInserted = ix
	return r.Min(), r.Max()
}

// DeleteRange removes the regions intersecting [start, end]. Regions
// merely touching the range are removed only when deleteAdjacent is set.
func (s *Selection) DeleteRange(start, end int, deleteAdjacent bool) {
	first := s.search(start)
	last := s.search(end)
	if first >= len(s.regions) {
		return
	}
	if !deleteAdjacent && s.regions[first].Max() == start {
		first++
	}
	if last < len(s.regions) {
		m := s.regions[last].Min()
		if (deleteAdjacent && m <= end) || (!deleteAdjacent && m < end) {
			last++
		}
	}
	if first >= last {
		return
	}
	s.regions = slices.Delete(s.regions, first, last)
	if s.lastInserted >= len(s.regions) {
		s.lastInserted = 0
	}
}

// RegionsInRange returns the regions intersecting or touching
// [start, end]. The slice must not be modified.
func (s *Selection) RegionsInRange(start, end int) []SelRegion {
	first := s.search(start)
	last := s.search(end)
	if last < len(s.regions) && s.regions[last].Min() <= end {
		last++
	}
	return s.regions[first:last]
}

// FullRegionsInRange returns the regions lying entirely within
// [start, end]. The slice must not be modified.
func (s *Selection) FullRegionsInRange(start, end int) []SelRegion {
	first := s.searchMin(start)
	last := first
	for last < len(s.regions) && s.regions[last].Max() <= end {
		last++
	}
	return s.regions[first:last]
}

// Carets returns the moving side of every region.
func (s *Selection) Carets() []int {
	out := make([]int, len(s.regions))
	for i, r := range s.regions {
		out[i] = r.End
	}
	return out
}

// Collapse returns a selection holding a caret at the moving side of every
// region.
func (s *Selection) Collapse() *Selection {
	out := NewSelection()
	for _, r := range s.regions {
		out.AddRegion(Caret(r.End).WithHoriz(r.Horiz))
	}
	return out
}

// Equals reports whether both selections hold the same regions.
func (s *Selection) Equals(other *Selection) bool {
	if other == nil || len(s.regions) != len(other.regions) {
		return false
	}
	for i, r := range s.regions {
		if !r.Equals(other.regions[i]) {
			return false
		}
	}
	return true
}

// String renders the regions separated by spaces.
func (s *Selection) String() string {
	parts := make([]string, len(s.regions))
	for i, r := range s.regions {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
