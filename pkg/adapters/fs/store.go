// Package fs implements core.Store on the local filesystem: every key is a
// JSON file inside one directory.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/twodo/pkg/core"
)

// SlotExt is the file extension of a stored key.
const SlotExt = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures that are otherwise only logged.
	ErrorHandler func(error)
	// Debounce is the quiet period before a watched change is reported. Zero means 50ms.
	Debounce time.Duration
}

// Store implements core.Store using one file per key.
type Store struct {
	Path   string
	config Config
	cache  *cache

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// NewStore creates a new filesystem-backed store. No I/O happens until Initialize.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Store{
		Path:   config.Path,
		config: config,
		cache:  newCache(),
	}
}

// Initialize makes sure the store directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Get reads the file behind key. Unchanged files are served from the cache.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	fullPath, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if entry, hit := s.cache.Get(key, info.ModTime(), info.Size()); hit {
		return slices.Clone(entry.Data), nil
	}

	data, err := os.ReadFile(fullPath)
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	s.cache.Set(key, &cacheEntry{Data: slices.Clone(data), ModTime: info.ModTime(), Size: info.Size()})
	return data, nil
}

// Set writes value atomically to the file behind key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	fullPath, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(fullPath, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.cache.Delete(key)
	s.config.Logger.Debug("slot written", "key", key, "bytes", len(value))
	return nil
}

// Remove deletes the file behind key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	fullPath, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	s.cache.Delete(key)
	return nil
}

// Keys lists the stored keys matching pattern, sorted.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	var keys []string
	seen := make(map[string]bool)
	for _, e := range entries {
		key, ok := keyFromFile(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		seen[key] = true
		if pattern != "" {
			if match, _ := doublestar.Match(pattern, key); !match {
				continue
			}
		}
		keys = append(keys, key)
	}
	s.cache.Prune(seen)

	slices.Sort(keys)
	return keys, nil
}

// filename maps a key to its file. Keys are plain file stems.
func (s *Store) filename(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Path, key+SlotExt), nil
}

// ValidateKey rejects keys that cannot be used as a file stem inside the store.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", core.ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", core.ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", core.ErrInvalidKey, key)
	case strings.HasPrefix(key, TempFilePrefix):
		return fmt.Errorf("%w: %q uses the reserved prefix", core.ErrInvalidKey, key)
	}
	return nil
}

// keyFromFile is the inverse of filename for directory entries.
func keyFromFile(name string) (string, bool) {
	if !strings.HasSuffix(name, SlotExt) || strings.HasPrefix(name, TempFilePrefix) {
		return "", false
	}
	key := strings.TrimSuffix(name, SlotExt)
	if ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// Watch emits an event whenever a key matching pattern is written or removed
// by any process, until ctx is done. The channel is closed when watching stops.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	events := make(chan core.Event)
	w := newSlotWatcher(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	return events, nil
}

// IsReadOnly reports whether writes are refused.
func (s *Store) IsReadOnly() bool {
	return s.config.ReadOnly
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
