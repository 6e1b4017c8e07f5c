// Package lifecycle adapts store change events to github.com/aretw0/lifecycle.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/twodo/pkg/core"
)

// changeSource forwards core.Event values, which satisfy lifecycle.Event via String.
type changeSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps a store watch channel as a lifecycle.Source.
// Events() closes once the watch channel closes or the Start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &changeSource{in: events, out: make(chan lifecycle.Event)}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *changeSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.in:
		}
		if !ok {
			return nil
		}

		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
