package phrases

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Provider hands out the current Set. Readers never block; a reload swaps the
// whole Set at once so a classification never sees half of an update.
type Provider struct {
	current atomic.Pointer[Set]
	logger  *slog.Logger
}

// NewProvider returns a Provider serving initial.
func NewProvider(initial *Set, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{logger: logger}
	p.current.Store(initial)
	return p
}

// Current returns the active Set.
func (p *Provider) Current() *Set {
	return p.current.Load()
}

// Replace installs s as the active Set.
func (p *Provider) Replace(s *Set) {
	p.current.Store(s)
}

// Watch reloads path whenever it changes and calls onReload (may be nil) with
// each Set that validates. A file that fails to load is logged and the
// previous Set stays active. Blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors and
// deploy tools that replace the file via rename are picked up.
func (p *Provider) Watch(ctx context.Context, path string, onReload func(*Set)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("phrases: creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("phrases: resolving %q: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("phrases: watching %q: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			s, err := LoadFile(abs)
			if err != nil {
				// Rename-away leaves nothing to read until the new file lands.
				p.logger.Warn("phrases: reload failed, keeping current lists",
					"path", abs, "version", p.Current().Version, "error", err)
				continue
			}
			if prev := p.Current(); prev != nil && prev.Version == s.Version && equalSets(prev, s) {
				continue
			}

			p.Replace(s)
			p.logger.Info("phrases: reloaded", "path", abs, "version", s.Version,
				"gluten", len(s.Gluten), "ambiguous", len(s.Ambiguous))
			if onReload != nil {
				onReload(s)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Error("phrases: watcher error", "error", err)
		}
	}
}

func equalSets(a, b *Set) bool {
	return slices.Equal(a.Gluten, b.Gluten) && slices.Equal(a.Ambiguous, b.Ambiguous)
}
