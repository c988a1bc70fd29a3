package buffer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/rope"
)

// Edit replaces every region of Selection with Text. A caret region
// inserts Text at its offset.
type Edit struct {
	Selection *cursor.Selection
	Text      string
}

// NewInsert returns an edit inserting text at offset.
func NewInsert(offset int, text string) Edit {
	return Edit{Selection: cursor.NewCaretSelection(offset), Text: text}
}

// NewReplace returns an edit replacing [start, end) with text.
func NewReplace(start, end int, text string) Edit {
	return Edit{Selection: cursor.NewRegionSelection(start, end), Text: text}
}

// NewDelete returns an edit deleting [start, end).
func NewDelete(start, end int) Edit {
	return NewReplace(start, end, "")
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	return fmt.Sprintf("Edit(%v, %q)", e.Selection, e.Text)
}

// Pending is a change that has been computed but not committed. It lets an
// owner inspect the delta and decide whether to commit it. A Pending is
// only valid until the next committed change.
type Pending struct {
	base     uint64
	step     history.Step
	delta    *delta.Delta
	composed composed
}

// Delta returns the change to the visible text.
func (p *Pending) Delta() *delta.Delta {
	return p.delta
}

// EditType returns the edit type the change is recorded under.
func (p *Pending) EditType() history.EditType {
	return p.step.EditType
}

// Revision returns the log entry the change will append.
func (p *Pending) Revision() history.Revision {
	return p.composed.rev
}

type interval struct {
	start, end int
	text       rope.Rope
}

// BuildDelta collects every region of every edit into one delta against
// the current text. Offsets past the end are clamped. Regions are ordered
// by (min, max), keeping input order for ties; regions that overlap are
// rejected with ErrOverlappingEdits.
func (d *Data) BuildDelta(edits []Edit) (*delta.Delta, error) {
	n := d.text.Len()
	var ivs []interval
	for _, e := range edits {
		if e.Selection == nil {
			continue
		}
		text := rope.FromString(e.Text)
		for _, r := range e.Selection.Regions() {
			r = r.Clamp(n)
			ivs = append(ivs, interval{start: r.Min(), end: r.Max(), text: text})
		}
	}

	slices.SortStableFunc(ivs, func(a, b interval) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(a.end, b.end)
	})

	b := delta.NewBuilder(n)
	last := 0
	for i, iv := range ivs {
		if i > 0 && iv.start < last {
			return nil, fmt.Errorf("[%d, %d) overlaps an edit ending at %d: %w", iv.start, iv.end, last, ErrOverlappingEdits)
		}
		b.Replace(iv.start, iv.end, iv.text)
		last = iv.end
	}
	return b.Build(), nil
}

// PrepareEdit computes, without committing, the change that EditMultiple
// would make.
func (d *Data) PrepareEdit(edits []Edit, editType history.EditType) (*Pending, error) {
	dl, err := d.BuildDelta(edits)
	if err != nil {
		return nil, err
	}
	return d.PrepareDelta(dl, editType), nil
}

// PrepareDelta computes, without committing, the change applying dl with
// the given edit type. dl must be based on the current text.
func (d *Data) PrepareDelta(dl *delta.Delta, editType history.EditType) *Pending {
	step := d.log.PlanEdit(editType)
	return &Pending{
		base:     d.revCounter,
		step:     step,
		delta:    dl,
		composed: d.mkNewRev(step.Group, dl),
	}
}

// EditMultiple applies all edits as one change in one undo group and
// returns the delta against the previous text.
func (d *Data) EditMultiple(edits []Edit, editType history.EditType) (*delta.Delta, error) {
	p, err := d.PrepareEdit(edits, editType)
	if err != nil {
		return nil, err
	}
	d.commitFresh(p)
	return p.delta, nil
}

// Commit applies a pending change. It fails with ErrStalePending when
// another change was committed after p was prepared.
func (d *Data) Commit(p *Pending) error {
	if p.base != d.revCounter {
		return fmt.Errorf("prepared at revision %d, now %d: %w", p.base, d.revCounter, ErrStalePending)
	}
	d.commitFresh(p)
	return nil
}

// applyEdit installs the new state and refreshes the line caches.
func (d *Data) applyEdit(dl *delta.Delta, c composed) {
	d.bumpRevision()

	iv, newLen := dl.Summary()
	oldEndLine := d.text.LineOfOffset(iv.End) + 1

	d.text = c.text
	d.tombstones = c.tombstones
	d.deletesFromUnion = c.deletes

	startLine := d.text.LineOfOffset(iv.Start)
	newEndLine := d.text.LineOfOffset(iv.Start+newLen) + 1
	d.lastInval = InvalLines{
		StartLine:  startLine,
		InvalCount: oldEndLine - startLine,
		NewCount:   newEndLine - startLine,
	}
	d.lines.update(d.text, d.lastInval)
}
