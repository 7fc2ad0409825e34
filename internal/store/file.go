package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const fileExt = ".yaml"

// FileKV stores each value as <root>/<bucket>/<key>.yaml.
type FileKV struct {
	root string
	mu   sync.Mutex
}

// NewFileKV returns a file backend rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: file backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating %q: %w", dir, err)
	}
	return &FileKV{root: dir}, nil
}

func (f *FileKV) path(bucket, key string) string {
	return filepath.Join(f.root, bucket, key+fileExt)
}

func (f *FileKV) Get(_ context.Context, bucket, key string) ([]byte, error) {
	if err := validate(bucket, key); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("store: %s/%s: %w", bucket, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put writes value atomically via a temp file and rename.
func (f *FileKV) Put(_ context.Context, bucket, key string, value []byte) error {
	if err := validate(bucket, key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Join(f.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating bucket dir: %w", err)
	}

	dest := f.path(bucket, key)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("store: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: renaming %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (f *FileKV) Delete(_ context.Context, bucket, key string) error {
	if err := validate(bucket, key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: %s/%s: %w", bucket, key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: deleting %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (f *FileKV) Keys(_ context.Context, bucket string) ([]string, error) {
	if err := ValidateKey("bucket", bucket); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(f.root, bucket))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: listing %s: %w", bucket, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileKV) Close() error { return nil }
