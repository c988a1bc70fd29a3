package buffer

import "fmt"

// Point is a line and byte column. Both are 0-indexed.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	return comparePoints(p.Line, p.Column, other.Line, other.Column)
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// PointUTF16 is a line and a column counted in UTF-16 code units, the unit
// used by language servers.
type PointUTF16 struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p PointUTF16) String() string {
	return fmt.Sprintf("(%d:%d utf16)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p PointUTF16) Compare(other PointUTF16) int {
	return comparePoints(p.Line, p.Column, other.Line, other.Column)
}

func comparePoints(l1, c1, l2, c2 int) int {
	switch {
	case l1 < l2:
		return -1
	case l1 > l2:
		return 1
	case c1 < c2:
		return -1
	case c1 > c2:
		return 1
	}
	return 0
}
