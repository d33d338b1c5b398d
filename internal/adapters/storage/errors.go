package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrRead        = errors.New("storage read failed")
	ErrWrite       = errors.New("storage write failed")
)
