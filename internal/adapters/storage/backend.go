// Package storage implements the persistence bridge: the full event set is
// serialized to a JSON array and kept under the single key "events" in a
// key-value backend, the way the original web widget used the browser's
// localStorage slot.
package storage

import "context"

// EventsKey is the storage slot the event payload lives under. There is no
// versioning and no migration path; the payload is rewritten wholesale.
const EventsKey = "events"

// Backend provides read/overwrite access to one key-value namespace.
type Backend interface {
	// Read returns the payload stored under key.
	// Returns ErrKeyNotFound when the key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write overwrites the payload stored under key.
	Write(ctx context.Context, key string, data []byte) error
}
