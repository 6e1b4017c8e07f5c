package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/twodo/pkg/core"
)

// Defaults.
const (
	DefaultSystemDir = ".twodo"
	DefaultKey       = "notes"
	DefaultAdapter   = "fs"
)

// options holds the internal configuration for the twodo service.
type options struct {
	store     core.Store
	logger    *slog.Logger
	adapter   string
	key       string
	systemDir string
	redisURL  string

	mustExist bool
	readOnly  bool
	forceTemp bool
	devSafety bool

	location *time.Location
	clock    func() time.Time
}

// Option defines a functional option for configuring twodo.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   DefaultAdapter,
		key:       DefaultKey,
		systemDir: DefaultSystemDir,
		devSafety: true,
		location:  time.UTC,
	}
}

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger for the service and the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom store (e.g. mock, preconfigured Redis).
// If provided, the adapter setting is ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the store adapter by name: "fs", "memory" or "redis".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithKey sets the slot key the note list is stored under. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithSystemDir sets the hidden directory the fs adapter keeps slots in.
// Defaults to ".twodo".
func WithSystemDir(name string) Option {
	return func(o *options) {
		if name != "" {
			o.systemDir = name
		}
	}
}

// WithRedisURL sets the connection string for the "redis" adapter.
func WithRedisURL(url string) Option {
	return func(o *options) {
		o.redisURL = url
	}
}

// WithMustExist requires the workspace to be initialized already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly makes the built-in adapters (fs, memory, redis) refuse every
// write with core.ErrReadOnly. A store passed through WithStore is used as given.
// The dev sandbox is bypassed since nothing can be damaged.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run`.
// By default (true) the workspace is re-rooted into a temporary directory.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithLocation sets the time zone date-only deadlines are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithClock replaces time.Now for expiry and creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
