package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/twodo/pkg/core"
)

// slotWatcher follows the store directory and reports slot changes.
// It runs as a lifecycle worker so its status shows up in introspection.
type slotWatcher struct {
	*worker.BaseWorker
	store   *Store
	pattern string
	out     chan<- core.Event

	fsw      *fsnotify.Watcher
	debounce *debouncer
	cancel   context.CancelFunc
}

func newSlotWatcher(store *Store, pattern string, out chan<- core.Event) *slotWatcher {
	return &slotWatcher{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		out:        out,
	}
}

// Start registers the store directory with fsnotify and launches the loop.
// The out channel is closed when the loop ends.
func (w *slotWatcher) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st := w.State().Status; st != worker.StatusCreated && st != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", st)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(w.store.Path); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.store.Path, err)
	}

	w.fsw = fsw
	w.debounce = newDebouncer(w.store.config.Debounce)
	w.store.setWatcherActive(true)

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(loopCtx, w.loop)
}

func (w *slotWatcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *slotWatcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{worker.MetadataType: string(worker.TypeGoroutine)}
	})
}

func (w *slotWatcher) loop(ctx context.Context) (err error) {
	log := w.store.config.Logger
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watcher panic: %v", r)
			log.Error("watcher panic", "error", err)
		}
		w.cancel()
		w.fsw.Close()
		// nothing may still be sending when out is closed
		w.debounce.stopAndWait(5 * time.Second)
		w.store.setWatcherActive(false)
		close(w.out)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case fe, ok := <-w.fsw.Events:
			if !ok {
				return w.closedErr(ctx, "events")
			}
			log.Debug("fs event", "name", fe.Name, "op", fe.Op.String())
			if e, ok := w.translate(fe); ok {
				w.store.cache.Delete(e.Key)
				w.emit(ctx, e)
			}

		case ferr, ok := <-w.fsw.Errors:
			if !ok {
				return w.closedErr(ctx, "errors")
			}
			log.Error("fsnotify error", "error", ferr)
			if h := w.store.config.ErrorHandler; h != nil {
				h(ferr)
			}
		}
	}
}

func (w *slotWatcher) closedErr(ctx context.Context, which string) error {
	if w.StopRequested || ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("fsnotify %s channel closed", which)
}

// translate maps a filesystem event to a slot event. Non-slot files, keys
// outside the pattern and chmod-only events are dropped.
func (w *slotWatcher) translate(fe fsnotify.Event) (core.Event, bool) {
	key, ok := keyFromFile(filepath.Base(fe.Name))
	if !ok {
		return core.Event{}, false
	}
	if w.pattern != "" {
		if match, _ := doublestar.Match(w.pattern, key); !match {
			return core.Event{}, false
		}
	}

	e := core.Event{Key: key, Timestamp: time.Now().Unix()}
	switch {
	case fe.Has(fsnotify.Create), fe.Has(fsnotify.Write):
		e.Type = core.EventSet
	case fe.Has(fsnotify.Remove), fe.Has(fsnotify.Rename):
		e.Type = core.EventRemove
	default:
		return core.Event{}, false
	}
	return e, true
}

// emit delivers e after the debounce window unless the loop has ended.
func (w *slotWatcher) emit(ctx context.Context, e core.Event) {
	w.debounce.add(e, func(e core.Event) {
		select {
		case w.out <- e:
			w.store.recordEvent()
		case <-ctx.Done():
		}
	})
}
