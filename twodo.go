package twodo

import (
	"log/slog"
	"time"

	"github.com/aretw0/twodo/internal/platform"
	"github.com/aretw0/twodo/pkg/core"
)

// --- Types ---

// Note is a public alias for the core note record.
type Note = core.Note

// Service is a public alias for the note service.
type Service = core.Service

// Query selects the visible notes of a View.
type Query = core.Query

// --- Configuration ---

// Option defines a functional option for configuring twodo.
type Option = platform.Option

// WithLogger sets the logger for the service and its store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom key-value store.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the store adapter by name ("fs", "memory", "redis").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithKey sets the slot key the notes are stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithSystemDir sets the hidden directory name (e.g. ".twodo").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithRedisURL sets the connection string used by the redis adapter.
func WithRedisURL(url string) Option {
	return platform.WithRedisURL(url)
}

// WithMustExist ensures the workspace has been initialized already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly refuses every write to the store.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety toggles the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLocation sets the time zone deadlines are interpreted in.
func WithLocation(loc *time.Location) Option {
	return platform.WithLocation(loc)
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New opens the workspace at path and loads its notes.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init creates (or opens) the store for the workspace at path.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// FindRoot walks up from path to the nearest initialized workspace.
func FindRoot(path string) (string, error) {
	return platform.FindRoot(path)
}
