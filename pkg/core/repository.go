package core

import (
	"context"
	"fmt"
	"time"
)

// Store is a key-value slot store: the place the note list is mirrored to.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism (filesystem, memory, Redis).
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists the stored keys matching a glob pattern ("" matches all).
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Initialize ensures the underlying storage is ready (e.g. create directories, ping a server).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by stores that can report changes made by other writers.
type Watchable interface {
	// Watch emits events for keys matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// EventType represents the type of change in a store.
type EventType string

const (
	EventSet    EventType = "SET"
	EventRemove EventType = "REMOVE"
)

// Event represents a change of one key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
	// Origin identifies the writer when the store can tell; empty otherwise.
	Origin string
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s @ %s", e.Type, e.Key, time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339))
}

// NoteSlot is the typed slot holding the note list.
type NoteSlot interface {
	// Load returns the stored notes; found is false when nothing was stored yet.
	Load(ctx context.Context) (notes []Note, found bool, err error)
	// Store replaces the stored notes.
	Store(ctx context.Context, notes []Note) error
}
