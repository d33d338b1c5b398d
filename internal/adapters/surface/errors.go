package surface

import "errors"

// Sentinel kinds for surface errors.
var (
	ErrDuplicateEvent  = errors.New("event already on surface")
	ErrUnknownEvent    = errors.New("event not on surface")
	ErrSessionNotFound = errors.New("session not found")
)
