package movement

import "errors"

// Movement parsing errors.
var (
	// ErrUnknownMovement is returned when parsing an unrecognized movement.
	ErrUnknownMovement = errors.New("unknown movement")

	// ErrInvalidArgument is returned when a movement argument is missing
	// or malformed.
	ErrInvalidArgument = errors.New("invalid movement argument")
)
