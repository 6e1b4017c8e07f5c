// Package memory provides an in-process core.Store, the equivalent of a
// browser key-value slot that lives only as long as the process.
package memory

import (
	"context"
	"slices"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/patrickmn/go-cache"

	"github.com/aretw0/twodo/pkg/core"
)

// Store implements core.Store on top of go-cache with expiry disabled.
type Store struct {
	cache    *cache.Cache
	readOnly bool
}

// Option configures a Store.
type Option func(*Store)

// WithReadOnly makes Set and Remove fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(s *Store) {
		s.readOnly = enabled
	}
}

// NewStore creates an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		cache: cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize is a no-op; the store is ready on creation.
func (s *Store) Initialize(ctx context.Context) error { return nil }

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrInvalidKey
	}
	x, found := s.cache.Get(key)
	if !found {
		return nil, core.ErrNotFound
	}
	return slices.Clone(x.([]byte)), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.cache.Set(key, slices.Clone(value), cache.NoExpiration)
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.cache.Delete(key)
	return nil
}

// Keys lists keys matching pattern in sorted order.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	items := s.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, k); !ok {
				continue
			}
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Keys     int  `json:"keys"`
	ReadOnly bool `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{Keys: s.cache.ItemCount(), ReadOnly: s.readOnly}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ core.Store = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
