package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/twodo/pkg/adapters/memory"
	"github.com/aretw0/twodo/pkg/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Initialize(ctx))

	t.Run("Missing Key", func(t *testing.T) {
		_, err := s.Get(ctx, "notes")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Set Then Get Copies Value", func(t *testing.T) {
		val := []byte(`[]`)
		require.NoError(t, s.Set(ctx, "notes", val))
		val[0] = 'x'

		got, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)

		got[0] = 'y'
		again, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), again)
	})

	t.Run("Keys With Pattern", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "notes-archive", []byte(`[]`)))
		require.NoError(t, s.Set(ctx, "settings", []byte(`{}`)))

		keys, err := s.Keys(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes", "notes-archive", "settings"}, keys)

		keys, err = s.Keys(ctx, "notes*")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes", "notes-archive"}, keys)

		_, err = s.Keys(ctx, "[")
		assert.Error(t, err)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "settings"))
		require.NoError(t, s.Remove(ctx, "settings"))
		_, err := s.Get(ctx, "settings")
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, memory.StoreState{Keys: 2}, s.State())
	})

	t.Run("Empty Key", func(t *testing.T) {
		assert.ErrorIs(t, s.Set(ctx, "", nil), core.ErrInvalidKey)
	})
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(memory.WithReadOnly(true))

	assert.ErrorIs(t, s.Set(ctx, "notes", []byte(`[]`)), core.ErrReadOnly)
	assert.ErrorIs(t, s.Remove(ctx, "notes"), core.ErrReadOnly)

	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, memory.StoreState{ReadOnly: true}, s.State())
}
