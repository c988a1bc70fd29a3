// Package cursor provides the selection model for text editing.
//
// A SelRegion is a pair of byte offsets. Start is the fixed side and End is
// the moving side where typing happens, so a region whose Start is after
// its End is a backward selection. When Start == End the region is a caret.
// A region may carry a sticky column (Horiz) so that vertical movement
// through short lines returns to the column the user started from.
//
// A Selection keeps its regions sorted by offset. AddRegion merges regions
// that overlap or touch:
//
//	sel := cursor.NewRegionSelection(3, 5)
//	sel.AddRegion(cursor.NewRegion(5, 7)) // sel is now [3, 7)
//
// After an edit, ApplyDelta maps every region through the edit's delta.
// The InsertDrift policy decides whether text typed at the edge of a
// non-caret region extends the region or stays outside it.
//
// Region values are immutable. A Selection is not safe for concurrent use
// and should be protected by its owner.
package cursor
