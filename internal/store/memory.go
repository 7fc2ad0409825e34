package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, bucket, key string) ([]byte, error) {
	if err := validate(bucket, key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("store: %s/%s: %w", bucket, key, ErrNotFound)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) Put(_ context.Context, bucket, key string, value []byte) error {
	if err := validate(bucket, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[bucket] = b
	}
	v := make([]byte, len(value))
	copy(v, value)
	b[key] = v
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, bucket, key string) error {
	if err := validate(bucket, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[bucket][key]; !ok {
		return fmt.Errorf("store: %s/%s: %w", bucket, key, ErrNotFound)
	}
	delete(m.buckets[bucket], key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, bucket string) ([]string, error) {
	if err := ValidateKey("bucket", bucket); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.buckets[bucket]))
	for k := range m.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKV) Close() error { return nil }
