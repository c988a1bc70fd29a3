package buffer

import (
	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/history"
)

// PrepareUndo computes, without committing, the change that Undo would
// make. It reports false when there is nothing to undo.
func (d *Data) PrepareUndo() (*Pending, bool) {
	step, ok := d.log.PlanUndo()
	if !ok {
		return nil, false
	}
	return d.prepareToggle(step), true
}

// PrepareRedo computes, without committing, the change that Redo would
// make. It reports false when there is nothing to redo.
func (d *Data) PrepareRedo() (*Pending, bool) {
	step, ok := d.log.PlanRedo()
	if !ok {
		return nil, false
	}
	return d.prepareToggle(step), true
}

// Undo reverts the newest applied undo group and returns the delta against
// the previous text, or nil when there is nothing to undo.
func (d *Data) Undo() *delta.Delta {
	p, ok := d.PrepareUndo()
	if !ok {
		return nil
	}
	d.commitFresh(p)
	return p.delta
}

// Redo reapplies the oldest undone group and returns the delta against the
// previous text, or nil when there is nothing to redo.
func (d *Data) Redo() *delta.Delta {
	p, ok := d.PrepareRedo()
	if !ok {
		return nil
	}
	d.commitFresh(p)
	return p.delta
}

// commitFresh commits a change prepared against the current revision.
func (d *Data) commitFresh(p *Pending) {
	d.log.Commit(p.step, p.composed.rev)
	d.applyEdit(p.delta, p.composed)
}

// prepareToggle computes the change moving the undone set to step.Undone.
// The undo is computed against the current undone set; the log switches to
// the new one when the step is committed.
func (d *Data) prepareToggle(step history.Step) *Pending {
	contents, deletes := d.log.ComputeUndo(step.Undone, d.deletesFromUnion)
	dl := delta.Synthesize(d.tombstones, d.deletesFromUnion, deletes)

	head := d.log.Head()
	return &Pending{
		base:  d.revCounter,
		step:  step,
		delta: dl,
		composed: composed{
			rev: history.Revision{
				Num:          d.revCounter + 1,
				MaxUndoSoFar: head.MaxUndoSoFar,
				Edit:         contents,
			},
			text:       dl.Apply(d.text),
			tombstones: shuffleTombstones(d.text, d.tombstones, d.deletesFromUnion, deletes),
			deletes:    deletes,
		},
	}
}
