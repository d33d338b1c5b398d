package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend is a map-backed Backend for tests and the demo driver.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte

	readErr  error
	writeErr error
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Read returns the payload stored under key.
func (b *MemoryBackend) Read(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.readErr != nil {
		return nil, b.readErr
	}
	data, ok := b.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Write overwrites the payload stored under key.
func (b *MemoryBackend) Write(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	b.data[key] = cp
	return nil
}

// FailReads makes subsequent reads return err. Nil restores normal behavior.
func (b *MemoryBackend) FailReads(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readErr = err
}

// FailWrites makes subsequent writes return err. Nil restores normal behavior.
func (b *MemoryBackend) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

// Peek returns the stored payload without the Backend error contract, for
// assertions in tests.
func (b *MemoryBackend) Peek(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	return data, ok
}
