package cursor

import "fmt"

// ColKind selects how a ColPosition resolves on a line.
type ColKind uint8

const (
	// ColAt targets a display column.
	ColAt ColKind = iota
	// ColFirstNonBlank targets the first non-blank character of the line.
	ColFirstNonBlank
	// ColStart targets the start of the line.
	ColStart
	// ColEnd targets the end of the line.
	ColEnd
)

// ColPosition is the horizontal target remembered across vertical moves.
type ColPosition struct {
	Kind ColKind
	Col  int // display column, used with ColAt
}

// Col returns a ColPosition targeting display column col.
func Col(col int) *ColPosition {
	return &ColPosition{Kind: ColAt, Col: col}
}

// ColFirstNonBlankPosition returns a ColPosition targeting the first
// non-blank character.
func ColFirstNonBlankPosition() *ColPosition {
	return &ColPosition{Kind: ColFirstNonBlank}
}

// ColStartPosition returns a ColPosition targeting the line start.
func ColStartPosition() *ColPosition {
	return &ColPosition{Kind: ColStart}
}

// ColEndPosition returns a ColPosition targeting the line end.
func ColEndPosition() *ColPosition {
	return &ColPosition{Kind: ColEnd}
}

// String returns a short description of the position.
func (c ColPosition) String() string {
	switch c.Kind {
	case ColFirstNonBlank:
		return "first-non-blank"
	case ColStart:
		return "start"
	case ColEnd:
		return "end"
	default:
		return fmt.Sprintf("col %d", c.Col)
	}
}

// SelRegion is one selected region. Start is the fixed side and End the
// moving side, so a region with Start > End is a backward selection. A
// region with Start == End is a caret.
// SelRegion is a value type; methods never modify the receiver.
type SelRegion struct {
	Start int
	End   int

	// Horiz is the sticky column for vertical movement, or nil.
	Horiz *ColPosition
}

// NewRegion creates a region from start to end.
func NewRegion(start, end int) SelRegion {
	return SelRegion{Start: start, End: end}
}

// Caret creates a caret at offset.
func Caret(offset int) SelRegion {
	return SelRegion{Start: offset, End: offset}
}

// WithHoriz returns a copy of r carrying the sticky column horiz.
func (r SelRegion) WithHoriz(horiz *ColPosition) SelRegion {
	r.Horiz = horiz
	return r
}

// Min returns the lower bound of the region.
func (r SelRegion) Min() int {
	return min(r.Start, r.End)
}

// Max returns the upper bound of the region.
func (r SelRegion) Max() int {
	return max(r.Start, r.End)
}

// Len returns the number of bytes covered by the region.
func (r SelRegion) Len() int {
	return r.Max() - r.Min()
}

// IsCaret reports whether the region is empty.
func (r SelRegion) IsCaret() bool {
	return r.Start == r.End
}

// IsForward reports whether the moving side is not before the fixed side.
func (r SelRegion) IsForward() bool {
	return r.End >= r.Start
}

// Contains reports whether offset lies in [Min, Max).
func (r SelRegion) Contains(offset int) bool {
	return offset >= r.Min() && offset < r.Max()
}

// shouldMerge reports whether other, which starts at or after r, must be
// merged with r. Regions merge when they overlap or touch.
func (r SelRegion) shouldMerge(other SelRegion) bool {
	return other.Min() <= r.Max()
}

// Merge returns the smallest region covering r and other. The result is
// forward when either source is forward, carets included, and carries no
// sticky column.
func (r SelRegion) Merge(other SelRegion) SelRegion {
	lo := min(r.Min(), other.Min())
	hi := max(r.Max(), other.Max())

	if r.IsForward() || other.IsForward() {
		return SelRegion{Start: lo, End: hi}
	}
	return SelRegion{Start: hi, End: lo}
}

// Clamp returns r with both sides clamped to [0, maxOffset].
func (r SelRegion) Clamp(maxOffset int) SelRegion {
	r.Start = clampOffset(r.Start, maxOffset)
	r.End = clampOffset(r.End, maxOffset)
	return r
}

// Equals reports whether both regions have the same sides. The sticky
// column is ignored.
func (r SelRegion) Equals(other SelRegion) bool {
	return r.Start == other.Start && r.End == other.End
}

// String returns the region as [start, end).
func (r SelRegion) String() string {
	if r.IsCaret() {
		return fmt.Sprintf("Caret(%d)", r.Start)
	}
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

func clampOffset(offset, maxOffset int) int {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
