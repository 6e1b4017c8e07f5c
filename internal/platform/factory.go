package platform

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/twodo/pkg/adapters/fs"
	"github.com/aretw0/twodo/pkg/adapters/memory"
	"github.com/aretw0/twodo/pkg/adapters/redis"
	"github.com/aretw0/twodo/pkg/core"
	"github.com/aretw0/twodo/pkg/typed"
)

// New opens the workspace at root, reads the note slot and returns a ready Service.
//
//	svc, err := twodo.New(".", twodo.WithMustExist(true))
func New(root string, opts ...Option) (*core.Service, error) {
	o := resolveOptions(opts)

	store, err := initStore(root, o)
	if err != nil {
		return nil, err
	}

	serviceOpts := []core.ServiceOption{
		core.WithServiceLogger(o.logger),
		core.WithLocation(o.location),
	}
	if o.clock != nil {
		serviceOpts = append(serviceOpts, core.WithClock(o.clock))
	}

	svc := core.NewService(typed.NewSlot[[]core.Note](store, o.key), serviceOpts...)
	if err := svc.Load(context.Background()); err != nil {
		if o.store == nil {
			closeStore(store)
		}
		return nil, err
	}
	return svc, nil
}

// Init builds and initializes the configured store without loading notes.
func Init(root string, opts ...Option) (core.Store, error) {
	return initStore(root, resolveOptions(opts))
}

func initStore(root string, o *options) (core.Store, error) {
	if o.store != nil {
		if err := o.store.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return o.store, nil
	}

	store, err := buildStore(root, o)
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(context.Background()); err != nil {
		closeStore(store)
		return nil, err
	}
	return store, nil
}

// buildStore constructs the configured adapter without touching storage.
func buildStore(root string, o *options) (core.Store, error) {
	var store core.Store
	switch o.adapter {
	case "fs":
		store = newFSStore(root, o)
	case "memory":
		store = memory.NewStore(memory.WithReadOnly(o.readOnly))
	case "redis":
		if o.redisURL == "" {
			return nil, fmt.Errorf("redis adapter needs a url")
		}
		rs, err := redis.NewStore(redis.Config{URL: o.redisURL, Logger: o.logger, ReadOnly: o.readOnly})
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	return store, nil
}

// closeStore releases stores that hold connections (redis).
func closeStore(store core.Store) {
	if c, ok := store.(io.Closer); ok {
		c.Close()
	}
}

// newFSStore resolves the workspace path, applying the dev sandbox.
func newFSStore(root string, o *options) *fs.Store {
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolvePath(root, useTemp)

	if useTemp {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", root, "resolved_path", resolved)
	} else if IsDevRun() && bypassSafety {
		o.logger.Debug("bypassing dev sandbox", "path", resolved, "read_only", o.readOnly)
	}

	return fs.NewStore(fs.Config{
		Path:      filepath.Join(resolved, o.systemDir),
		MustExist: o.mustExist,
		ReadOnly:  o.readOnly,
		Logger:    o.logger,
	})
}
