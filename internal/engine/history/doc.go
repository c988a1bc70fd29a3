// Package history keeps the revision log of a buffer and the undo
// bookkeeping that goes with it.
//
// # Revisions
//
// Every committed change appends a Revision. An edit records the positions
// it inserted and deleted as subsets of the union space (visible text plus
// tombstones) as it stood right after the edit. An undo or redo records the
// undo groups it toggled and the xor of the deletion subset before and
// after, which keeps the log small.
//
// # Undo groups
//
// Edits are collected into undo groups. Consecutive edits of a kind that
// coalesces (typing characters, deleting characters) share a group, so one
// undo reverts one user action. Because revisions stay valid in union
// space, any combination of groups can be undone, not only the most recent
// one:
//
//	step := log.PlanEdit(history.EditInsertChars)
//	// ... build the revision for step.Group ...
//	log.Commit(step, rev)
//
//	if step, ok := log.PlanUndo(); ok {
//		contents, deletes := log.ComputeUndo(step.Undone, current)
//		// ... apply deletes ...
//	}
//
// The live undo stack lists the groups reachable by undo and redo in
// creation order. An edit made after undoing truncates the groups that
// could have been redone; history never branches.
//
// A Log is not safe for concurrent use. The owning buffer serializes
// access.
package history
