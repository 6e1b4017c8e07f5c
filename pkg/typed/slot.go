// Package typed turns raw key-value slots into typed JSON values.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/introspection"

	"github.com/aretw0/twodo/pkg/core"
)

// Slot wraps one key of a core.Store to provide type-safe access.
// Values are JSON encoded, the same layout a browser localStorage mirror uses.
type Slot[T any] struct {
	store core.Store
	key   string
}

// NewSlot creates a typed view of key in store.
func NewSlot[T any](store core.Store, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Key returns the slot key.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load reads and decodes the slot. found is false when the key is absent.
// A value that does not decode returns an error wrapping core.ErrCorruptSlot.
func (s *Slot[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, core.ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("failed to read slot %q: %w", s.key, err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("%w: slot %q: %v", core.ErrCorruptSlot, s.key, err)
	}
	return v, true, nil
}

// Store encodes v and writes it to the slot.
func (s *Slot[T]) Store(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal slot %q: %w", s.key, err)
	}
	return s.store.Set(ctx, s.key, data)
}

// Clear removes the slot.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, s.key)
}

// SlotState exposes the slot for observability.
type SlotState struct {
	Key       string `json:"key"`
	StoreType string `json:"store_type"`
	Store     any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Slot[T]) State() any {
	state := SlotState{Key: s.key, StoreType: "store"}
	if comp, ok := s.store.(introspection.Component); ok {
		state.StoreType = comp.ComponentType()
	}
	if in, ok := s.store.(introspection.Introspectable); ok {
		state.Store = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Slot[T]) ComponentType() string {
	return "slot"
}

// NoteSlot is the slot type the note service persists to.
type NoteSlot = Slot[[]core.Note]

var _ core.NoteSlot = (*NoteSlot)(nil)
