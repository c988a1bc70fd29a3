package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrEditRejected indicates the listener declined an edit.
	ErrEditRejected = errors.New("edit rejected by listener")

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrStaleRevision indicates the document changed while background
	// work was running on an older snapshot.
	ErrStaleRevision = errors.New("document changed since snapshot")
)
