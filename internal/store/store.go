package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shahar-caura/glutenguard/internal/classify"
	"gopkg.in/yaml.v3"
)

const (
	bucketFavorites = "favorites"
	bucketCache     = "cache"
	bucketHistory   = "history"
)

// Record is a product snapshot kept as a favorite or cache entry.
type Record struct {
	Barcode         string          `yaml:"barcode" json:"barcode"`
	Name            string          `yaml:"name" json:"name"`
	Brand           string          `yaml:"brand,omitempty" json:"brand,omitempty"`
	IngredientsText string          `yaml:"ingredients_text" json:"ingredients_text"`
	ImageURL        string          `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	Allergens       []string        `yaml:"allergens,omitempty" json:"allergens,omitempty"`
	Traces          []string        `yaml:"traces,omitempty" json:"traces,omitempty"`
	Labels          []string        `yaml:"labels,omitempty" json:"labels,omitempty"`
	Result          classify.Result `yaml:"result" json:"result"`
	SavedAt         time.Time       `yaml:"saved_at" json:"saved_at"`
	CachedAt        time.Time       `yaml:"cached_at,omitempty" json:"cached_at,omitempty"`
}

// HistoryEntry summarises one past check.
type HistoryEntry struct {
	ID        string          `yaml:"id" json:"id"`
	Source    string          `yaml:"source" json:"source"`
	Query     string          `yaml:"query" json:"query"`
	Name      string          `yaml:"name,omitempty" json:"name,omitempty"`
	Status    classify.Status `yaml:"status" json:"status"`
	CheckedAt time.Time       `yaml:"checked_at" json:"checked_at"`
}

// Options tunes cache expiry and history retention.
type Options struct {
	CacheTTL     time.Duration
	HistoryLimit int
}

// Store exposes favorites, the product cache and history on top of a
// KeyValueStore. Records are stored as YAML documents.
type Store struct {
	kv   KeyValueStore
	opts Options
	now  func() time.Time

	// historyMu serialises append+trim so concurrent checks don't over-trim.
	historyMu sync.Mutex
}

// New returns a Store over kv. A zero CacheTTL disables expiry; a zero
// HistoryLimit keeps every entry.
func New(kv KeyValueStore, opts Options) *Store {
	return &Store{kv: kv, opts: opts, now: time.Now}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) getRecord(ctx context.Context, bucket, key string) (*Record, error) {
	data, err := s.kv.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("store: parsing %s/%s: %w", bucket, key, err)
	}
	return &rec, nil
}

func (s *Store) putRecord(ctx context.Context, bucket, key string, rec Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshaling %s/%s: %w", bucket, key, err)
	}
	return s.kv.Put(ctx, bucket, key, data)
}

// GetFavorite returns the favorite saved under key.
func (s *Store) GetFavorite(ctx context.Context, key string) (*Record, error) {
	return s.getRecord(ctx, bucketFavorites, key)
}

// SetFavorite saves rec under key, stamping SavedAt when unset.
func (s *Store) SetFavorite(ctx context.Context, key string, rec Record) error {
	if rec.SavedAt.IsZero() {
		rec.SavedAt = s.now().UTC()
	}
	return s.putRecord(ctx, bucketFavorites, key, rec)
}

// RemoveFavorite deletes the favorite under key.
func (s *Store) RemoveFavorite(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, bucketFavorites, key)
}

// ListFavorites returns every favorite, most recently saved first.
func (s *Store) ListFavorites(ctx context.Context) ([]Record, error) {
	keys, err := s.kv.Keys(ctx, bucketFavorites)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		rec, err := s.getRecord(ctx, bucketFavorites, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// GetCached returns the cache entry for key, or ErrNotFound if it is missing
// or older than the cache TTL.
func (s *Store) GetCached(ctx context.Context, key string) (*Record, error) {
	rec, err := s.getRecord(ctx, bucketCache, key)
	if err != nil {
		return nil, err
	}
	if s.expired(rec) {
		return nil, fmt.Errorf("store: cache/%s expired: %w", key, ErrNotFound)
	}
	return rec, nil
}

// SetCached stores rec under key with CachedAt set to now.
func (s *Store) SetCached(ctx context.Context, key string, rec Record) error {
	now := s.now().UTC()
	rec.CachedAt = now
	if rec.SavedAt.IsZero() {
		rec.SavedAt = now
	}
	return s.putRecord(ctx, bucketCache, key, rec)
}

// CleanupCache deletes expired entries and entries that no longer parse.
// Returns the number deleted.
func (s *Store) CleanupCache(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, bucketCache)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, k := range keys {
		rec, err := s.getRecord(ctx, bucketCache, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err == nil && !s.expired(rec) {
			continue
		}
		if err := s.kv.Delete(ctx, bucketCache, k); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

// ClearCache deletes every cache entry and returns how many were removed.
func (s *Store) ClearCache(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, bucketCache)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, k := range keys {
		if err := s.kv.Delete(ctx, bucketCache, k); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) expired(rec *Record) bool {
	if s.opts.CacheTTL <= 0 {
		return false
	}
	return s.now().Sub(rec.CachedAt) > s.opts.CacheTTL
}

// AppendHistory records e and drops the oldest entries beyond the history limit.
func (s *Store) AppendHistory(ctx context.Context, e HistoryEntry) error {
	if e.CheckedAt.IsZero() {
		e.CheckedAt = s.now().UTC()
	}
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: marshaling history entry: %w", err)
	}

	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	// Zero-padded nanoseconds keep lexical key order chronological.
	key := fmt.Sprintf("%020d", e.CheckedAt.UnixNano())
	if e.ID != "" {
		key += "-" + e.ID
	}
	if err := s.kv.Put(ctx, bucketHistory, key, data); err != nil {
		return err
	}

	if s.opts.HistoryLimit <= 0 {
		return nil
	}
	keys, err := s.kv.Keys(ctx, bucketHistory)
	if err != nil {
		return err
	}
	for _, k := range keys[:max(0, len(keys)-s.opts.HistoryLimit)] {
		if err := s.kv.Delete(ctx, bucketHistory, k); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

// History returns stored entries, newest first.
func (s *Store) History(ctx context.Context) ([]HistoryEntry, error) {
	keys, err := s.kv.Keys(ctx, bucketHistory)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		data, err := s.kv.Get(ctx, bucketHistory, keys[i])
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var e HistoryEntry
		if err := yaml.Unmarshal(data, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
