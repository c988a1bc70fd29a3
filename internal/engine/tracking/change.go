package tracking

import (
	"fmt"
	"strings"

	"github.com/dshills/inkwell/internal/engine/delta"
)

// ChangeType categorizes the type of a change.
type ChangeType uint8

const (
	// ChangeInsert indicates text was inserted (OldText is empty).
	ChangeInsert ChangeType = iota

	// ChangeDelete indicates text was deleted (NewText is empty).
	ChangeDelete

	// ChangeReplace indicates text was replaced.
	ChangeReplace
)

// String returns a human-readable representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Change is one contiguous replacement made by an edit.
type Change struct {
	Type ChangeType

	// Range is the affected range in the text before the edit.
	Range Range

	// NewRange is the affected range in the text after the edit.
	NewRange Range

	OldText string
	NewText string

	// Revision is the document revision the edit produced.
	Revision uint64
}

// Text is the document content a delta applies to.
type Text interface {
	Slice(start, end int) string
}

// ChangesFromDelta splits d into Changes. before is the text d was applied
// to; it supplies the removed text.
func ChangesFromDelta(before Text, d *delta.Delta, revision uint64) []Change {
	var out []Change
	shift := 0
	for _, dc := range d.Changes() {
		c := Change{
			Range:    Range{Start: dc.Start, End: dc.End},
			NewRange: Range{Start: dc.Start + shift, End: dc.Start + shift + len(dc.Text)},
			NewText:  dc.Text,
			Revision: revision,
		}
		if dc.End > dc.Start {
			c.OldText = before.Slice(dc.Start, dc.End)
		}
		switch {
		case c.OldText == "":
			c.Type = ChangeInsert
		case c.NewText == "":
			c.Type = ChangeDelete
		default:
			c.Type = ChangeReplace
		}
		shift += len(dc.Text) - (dc.End - dc.Start)
		out = append(out, c)
	}
	return out
}

func shorten(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert %q at %d", shorten(c.NewText, 20), c.Range.Start)
	case ChangeDelete:
		return fmt.Sprintf("Delete %q at %v", shorten(c.OldText, 20), c.Range)
	case ChangeReplace:
		return fmt.Sprintf("Replace %q with %q at %v", shorten(c.OldText, 10), shorten(c.NewText, 10), c.Range)
	default:
		return "Unknown change"
	}
}

// Delta returns how many bytes the change added. Negative means the text
// shrank.
func (c Change) Delta() int {
	return len(c.NewText) - len(c.OldText)
}

// Invert returns a change that undoes c.
func (c Change) Invert() Change {
	inv := Change{
		Type:     ChangeReplace,
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
		Revision: c.Revision,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	}
	return inv
}

// ChangeSet is an ordered run of changes between two revisions.
type ChangeSet struct {
	Changes []Change

	// StartRevision is the revision before any changes.
	StartRevision uint64

	// EndRevision is the revision after all changes.
	EndRevision uint64
}

// NewChangeSet creates an empty change set starting at the given revision.
func NewChangeSet(startRevision uint64) *ChangeSet {
	return &ChangeSet{
		StartRevision: startRevision,
		EndRevision:   startRevision,
	}
}

// Add appends a change to the set.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
	cs.EndRevision = c.Revision
}

// Len returns the number of changes.
func (cs *ChangeSet) Len() int {
	return len(cs.Changes)
}

// IsEmpty reports whether there are no changes.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Changes) == 0
}

// TotalDelta returns the total byte delta of all changes.
func (cs *ChangeSet) TotalDelta() int {
	var n int
	for _, c := range cs.Changes {
		n += c.Delta()
	}
	return n
}

// Summary returns a human-readable summary of the changes.
func (cs *ChangeSet) Summary() string {
	if cs.IsEmpty() {
		return "no changes"
	}

	var inserts, deletes, replaces int
	var added, removed int
	for _, c := range cs.Changes {
		switch c.Type {
		case ChangeInsert:
			inserts++
		case ChangeDelete:
			deletes++
		case ChangeReplace:
			replaces++
		}
		added += len(c.NewText)
		removed += len(c.OldText)
	}

	var parts []string
	if inserts > 0 {
		parts = append(parts, fmt.Sprintf("%d inserts", inserts))
	}
	if deletes > 0 {
		parts = append(parts, fmt.Sprintf("%d deletes", deletes))
	}
	if replaces > 0 {
		parts = append(parts, fmt.Sprintf("%d replaces", replaces))
	}
	return fmt.Sprintf("%s (+%d/-%d bytes)", strings.Join(parts, ", "), added, removed)
}
