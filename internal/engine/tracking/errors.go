package tracking

import "errors"

// Errors returned by tracking operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrRevisionNotFound = errors.New("revision not stored")
)
