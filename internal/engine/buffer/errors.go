package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOverlappingEdits is returned when two regions of one EditMultiple
	// call overlap. Touching regions and coincident carets are allowed.
	ErrOverlappingEdits = errors.New("edit regions overlap")

	// ErrStalePending is returned when committing a pending change that
	// was prepared against an older revision.
	ErrStalePending = errors.New("pending change prepared against an older revision")

	// ErrRevisionNotFound is returned when a revision is not in the log.
	ErrRevisionNotFound = errors.New("revision not found")
)
