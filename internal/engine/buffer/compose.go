package buffer

import (
	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/engine/subset"
)

// composed is the outcome of composing a change against the current state.
type composed struct {
	rev        history.Revision
	text       rope.Rope
	tombstones rope.Rope
	deletes    subset.Subset
}

// mkNewRev composes d, an edit of the visible text, into a new revision in
// undo group group. Inserts and deletes are recorded in the union space as
// it stands after the edit, so the revision stays replayable whatever is
// tombstoned later.
func (d *Data) mkNewRev(group int, dl *delta.Delta) composed {
	ins, dels := dl.Factor()

	unionIns := ins.TransformExpand(d.deletesFromUnion, true)
	newDeletes := dels.TransformExpand(d.deletesFromUnion)
	newInserts := unionIns.InsertedSubset()
	if !newInserts.IsEmpty() {
		newDeletes = newDeletes.TransformExpand(newInserts)
	}

	textIns := unionIns.TransformShrink(d.deletesFromUnion)
	textWithInserts := textIns.Apply(d.text)
	rebased := d.deletesFromUnion.TransformExpand(newInserts)

	// An edit landing in an undone group is born deleted.
	var nextDeletes subset.Subset
	if d.log.IsUndone(group) {
		nextDeletes = rebased.Union(newInserts)
	} else {
		nextDeletes = rebased.Union(newDeletes)
	}

	text, tombstones := shuffle(textWithInserts, d.tombstones, rebased, nextDeletes)

	head := d.log.Head()
	return composed{
		rev: history.Revision{
			Num:          d.revCounter + 1,
			MaxUndoSoFar: max(group, head.MaxUndoSoFar),
			Edit: history.EditContents{
				UndoGroup: group,
				Inserts:   newInserts,
				Deletes:   newDeletes,
			},
		},
		text:       text,
		tombstones: tombstones,
		deletes:    nextDeletes,
	}
}

// shuffle moves text between the visible rope and the tombstones so that
// exactly the positions outside newDeletes are visible.
func shuffle(text, tombstones rope.Rope, oldDeletes, newDeletes subset.Subset) (rope.Rope, rope.Rope) {
	newText := delta.Synthesize(tombstones, oldDeletes, newDeletes).Apply(text)
	return newText, shuffleTombstones(text, tombstones, oldDeletes, newDeletes)
}

// shuffleTombstones computes the tombstones for newDeletes. It is the
// mirror image of the visible text shuffle: tombstones are the complement.
func shuffleTombstones(text, tombstones rope.Rope, oldDeletes, newDeletes subset.Subset) rope.Rope {
	move := delta.Synthesize(text, oldDeletes.Complement(), newDeletes.Complement())
	return move.Apply(tombstones)
}
