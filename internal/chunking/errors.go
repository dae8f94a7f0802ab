package chunking

import "errors"

var (
	// ErrUnknownStrategy is returned for a strategy name outside the registry.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidParameter is returned when a size parameter cannot drive a chunker.
	ErrInvalidParameter = errors.New("invalid parameter")
)
