package fs

import (
	"sync"
	"time"

	"github.com/aretw0/twodo/pkg/core"
)

// debouncer coalesces bursts of events per key: only the last event seen
// within the window is delivered.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

// add schedules deliver for e, replacing any event still pending for the same key.
func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[e.Key] = e
	if t, ok := d.timers[e.Key]; ok && t.Stop() {
		// the stopped timer never runs, so its slot in the group is released here
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timers[e.Key] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, ok := d.pending[e.Key]
		delete(d.pending, e.Key)
		delete(d.timers, e.Key)
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			deliver(ev)
		}
	})
}

// stopAndWait refuses new events, cancels pending ones and waits up to
// timeout for deliveries already running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
