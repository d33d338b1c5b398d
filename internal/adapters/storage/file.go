package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps one file per key under a data directory. Writes go
// through a temp file, fsync, and rename so a crash mid-write never leaves
// a half-written payload behind.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the data directory if needed and returns a backend
// rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating %q: %w", ErrWrite, dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Read returns the payload stored under key.
func (b *FileBackend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrRead, key, err)
	}
	return data, nil
}

// Write atomically overwrites the payload stored under key.
func (b *FileBackend) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrWrite, key, err)
	}
	return nil
}

// path maps a key to its file under the data directory.
func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}
