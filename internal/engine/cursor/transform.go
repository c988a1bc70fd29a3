package cursor

import "github.com/dshills/inkwell/internal/engine/delta"

// InsertDrift decides on which side of text inserted exactly at a region
// boundary the boundary ends up.
type InsertDrift uint8

const (
	// DriftDefault uses the caller's after flag for both sides.
	DriftDefault InsertDrift = iota
	// DriftInside grows the region to cover text inserted at its edges.
	DriftInside
	// DriftOutside keeps text inserted at the edges outside the region.
	DriftOutside
)

// String returns the drift name.
func (d InsertDrift) String() string {
	switch d {
	case DriftInside:
		return "inside"
	case DriftOutside:
		return "outside"
	default:
		return "default"
	}
}

// ApplyDelta returns a new selection with every region mapped through d.
// Carets always use after; non-caret regions follow drift. Sticky columns
// are dropped. Regions that meet after the edit are merged.
func (s *Selection) ApplyDelta(d *delta.Delta, after bool, drift InsertDrift) *Selection {
	out := NewSelection()
	for _, r := range s.regions {
		out.AddRegion(transformRegion(r, d, after, drift))
	}
	return out
}

// ApplyDeltaDistinct is ApplyDelta without merging; regions that collapse
// onto an existing one are dropped instead.
func (s *Selection) ApplyDeltaDistinct(d *delta.Delta, after bool, drift InsertDrift) *Selection {
	out := NewSelection()
	for _, r := range s.regions {
		out.AddRangeDistinct(transformRegion(r, d, after, drift))
	}
	return out
}

func transformRegion(r SelRegion, d *delta.Delta, after bool, drift InsertDrift) SelRegion {
	startAfter, endAfter := after, after
	if !r.IsCaret() {
		forward := r.Start < r.End
		switch drift {
		case DriftInside:
			startAfter, endAfter = !forward, forward
		case DriftOutside:
			startAfter, endAfter = forward, !forward
		}
	}
	return NewRegion(d.Transform(r.Start, startAfter), d.Transform(r.End, endAfter))
}
