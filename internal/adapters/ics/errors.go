package ics

import "errors"

// Sentinel kinds for calendar exchange errors.
var (
	ErrParse = errors.New("parsing calendar payload failed")
)
