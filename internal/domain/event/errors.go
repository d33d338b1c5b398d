package event

import (
	"errors"
)

// Sentinel error kinds for record coercion. These allow errors.Is/As from callers.
var (
	ErrBlankTitle       = errors.New("blank title")
	ErrMissingStart     = errors.New("missing start")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)
