// Package store persists favorites, the product cache and check history on a
// pluggable key-value backend.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("not found")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// KeyValueStore stores opaque values under (bucket, key).
type KeyValueStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, value []byte) error
	Delete(ctx context.Context, bucket, key string) error
	// Keys returns the bucket's keys in ascending order.
	Keys(ctx context.Context, bucket string) ([]string, error)
	Close() error
}

// Open returns the backend named by backend. path is a directory for the file
// backend and a database file for sqlite; memory ignores it.
func Open(backend, path string) (KeyValueStore, error) {
	switch backend {
	case BackendFile:
		return NewFileKV(path)
	case BackendSQLite:
		return NewSQLiteKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// ValidateKey rejects names that are empty or could escape a bucket directory.
// Barcodes, uuids and the history sequence keys all pass.
func ValidateKey(kind, name string) error {
	if name == "" {
		return fmt.Errorf("store: %s is empty", kind)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("store: invalid %s %q", kind, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("store: invalid %s %q: character %q not allowed", kind, name, r)
		}
	}
	return nil
}

func validate(bucket, key string) error {
	if err := ValidateKey("bucket", bucket); err != nil {
		return err
	}
	return ValidateKey("key", key)
}
