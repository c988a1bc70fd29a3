// Package engine provides Engine, the editable document at the heart of
// inkwell.
//
// An Engine wraps a revision engine (package buffer) and owns the state
// that must follow every change: the multi-cursor selection, the active
// search and a change tracker. All operations are thread-safe.
//
// # Editing
//
// Every change goes through the same path. The change is prepared against
// the current revision, the Listener is asked whether to apply it, and if
// it agrees the change is committed, the selection and search occurrences
// are mapped through the resulting delta, and the listener is notified:
//
//	e := engine.New(engine.WithContent("hello"), engine.WithListener(l))
//	d, err := e.EditMultiple([]engine.Edit{buffer.NewInsert(5, "!")}, history.EditInsertChars)
//	e.Undo()
//	e.Redo()
//
// An edit touching several regions is one undo group and one revision.
// Consecutive typing coalesces into one group; BreakUndoGroup ends it.
//
// # Background work
//
// Snapshots are immutable and can be read from any goroutine. Background
// runs a function on a snapshot and reports ErrStaleRevision when the
// document moved on before the result was ready:
//
//	var words int
//	err := <-e.Background(ctx, func(ctx context.Context, s *engine.Snapshot) error {
//	    words = len(strings.Fields(s.Text()))
//	    return nil
//	})
//
// # Selection, movement and search
//
// Move resolves a movement for every region of the selection. SetFind
// searches the document; occurrences are kept up to date across edits and
// FindNext selects the next one.
package engine
