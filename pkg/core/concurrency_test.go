package core_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/twodo/pkg/core"
)

func TestService_ConcurrentCallers(t *testing.T) {
	svc, slot := newService(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Add(ctx, fmt.Sprintf("task %d", i), "", "2030-01-01")
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_ = svc.View(core.Query{Filter: "task"})
			_ = svc.Notes()
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, svc.Len())
	assert.Len(t, slot.notes, workers)
}

func TestService_ConcurrentEdits(t *testing.T) {
	const n = 8
	notes := make([]core.Note, n)
	for i := range notes {
		notes[i] = note(fmt.Sprintf("note %d", i), false, "2030-01-01")
	}
	svc, _ := newService(t, notes...)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < 50; r++ {
				_, err := svc.Edit(ctx, i, core.Draft{Title: fmt.Sprintf("edited %d", i), Deadline: "2030-01-02"})
				assert.NoError(t, err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < 50; r++ {
				if _, err := svc.StartEdit((i + 1) % n); err == nil {
					svc.CancelEdit()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, svc.Len())
	for i, got := range svc.Notes() {
		assert.Equal(t, fmt.Sprintf("edited %d", i), got.Title)
		assert.Equal(t, "2030-01-02", got.Deadline)
	}
}
