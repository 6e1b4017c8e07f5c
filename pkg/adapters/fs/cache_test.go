package fs

import (
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	c := newCache()
	mtime := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	c.Set("notes", &cacheEntry{Data: []byte(`[]`), ModTime: mtime, Size: 2})

	t.Run("Hit On Same Attributes", func(t *testing.T) {
		entry, ok := c.Get("notes", mtime, 2)
		if !ok {
			t.Fatal("expected cache hit")
		}
		if string(entry.Data) != `[]` {
			t.Errorf("unexpected data %s", entry.Data)
		}
	})

	t.Run("Miss On Changed File", func(t *testing.T) {
		if _, ok := c.Get("notes", mtime.Add(time.Second), 2); ok {
			t.Error("expected miss for newer mtime")
		}
		if _, ok := c.Get("notes", mtime, 3); ok {
			t.Error("expected miss for different size")
		}
		if _, ok := c.Get("other", mtime, 2); ok {
			t.Error("expected miss for unknown key")
		}
	})

	t.Run("Prune And Delete", func(t *testing.T) {
		c.Set("archive", &cacheEntry{ModTime: mtime})
		c.Prune(map[string]bool{"archive": true})
		if c.Len() != 1 {
			t.Fatalf("expected 1 entry after prune, got %d", c.Len())
		}
		c.Delete("archive")
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d", c.Len())
		}
	})
}
