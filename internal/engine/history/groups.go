package history

import (
	"slices"
	"strconv"
	"strings"
)

// GroupSet is a set of undo group ids. The zero value is an empty set.
type GroupSet map[int]struct{}

// NewGroupSet returns a set holding ids.
func NewGroupSet(ids ...int) GroupSet {
	s := make(GroupSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set.
func (s GroupSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Clone returns a copy of the set.
func (s GroupSet) Clone() GroupSet {
	c := make(GroupSet, len(s)+1)
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// With returns a copy of the set with id added.
func (s GroupSet) With(id int) GroupSet {
	c := s.Clone()
	c[id] = struct{}{}
	return c
}

// Without returns a copy of the set with id removed.
func (s GroupSet) Without(id int) GroupSet {
	c := s.Clone()
	delete(c, id)
	return c
}

// SymmetricDifference returns the ids in exactly one of the two sets.
func (s GroupSet) SymmetricDifference(other GroupSet) GroupSet {
	out := make(GroupSet)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	for id := range other {
		if !s.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Min returns the lowest id in the set.
func (s GroupSet) Min() (int, bool) {
	first := true
	lowest := 0
	for id := range s {
		if first || id < lowest {
			lowest = id
			first = false
		}
	}
	return lowest, !first
}

// Sorted returns the ids in ascending order.
func (s GroupSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// String renders the set as {1, 2, 3}.
func (s GroupSet) String() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
