// Package buffer provides the revision engine of a document: the visible
// text, the deleted text kept for undo, and the log of every change.
//
// The buffer package provides:
//
//   - Atomic multi-cursor edits: every region of every selection passed to
//     EditMultiple is applied as one change in one undo group
//   - Undo and redo of undo groups in any combination, computed over the
//     union of visible and deleted text
//   - Incrementally maintained line count and longest line
//   - A revision counter readable from any goroutine
//   - Immutable snapshots with line, column and grapheme metrics
//
// Basic usage:
//
//	data := buffer.NewDataFromString("aaaaa")
//
//	// Insert "X" at both ends in one undo group
//	sel := cursor.FromRegions(cursor.Caret(0), cursor.Caret(5))
//	data.EditMultiple([]buffer.Edit{{Selection: sel, Text: "X"}}, history.EditInsertChars)
//	// data.Text() == "XaaaaX"
//
//	data.Undo() // "aaaaa"
//	data.Redo() // "XaaaaX"
//
// Preparing and committing:
//
// A change can be prepared without being applied. The owner may inspect
// the pending delta and then commit it or drop it:
//
//	p, err := data.PrepareEdit(edits, history.EditPaste)
//	if err == nil && accept(p.Delta()) {
//	    data.Commit(p)
//	}
//
// Thread Safety:
//
// Data has a single writer and is not safe for concurrent use, except for
// Revision, which reads an atomic counter. Snapshots hold immutable text
// and may be passed to other goroutines; comparing Snapshot.Revision with
// Data.Revision tells whether work done on a snapshot is stale.
package buffer
