package find

import "errors"

// ErrInvalidPattern is returned when a search pattern does not compile.
var ErrInvalidPattern = errors.New("invalid search pattern")
