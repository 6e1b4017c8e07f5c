package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/twodo/pkg/adapters/fs"
	"github.com/aretw0/twodo/pkg/core"
)

// setupStore creates an initialized store in a fresh directory.
func setupStore(t *testing.T, opts ...func(*fs.Config)) (*fs.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".twodo")
	cfg := fs.Config{Path: path}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := fs.NewStore(cfg)
	require.NoError(t, store.Initialize(context.Background()))
	return store, path
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		_, path := setupStore(t)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		store := fs.NewStore(fs.Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
		assert.Error(t, store.Initialize(context.Background()))
	})

	t.Run("Fails if Path Is A File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		store := fs.NewStore(fs.Config{Path: file, MustExist: true})
		assert.Error(t, store.Initialize(context.Background()))
	})
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t)

	_, err := store.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, store.Set(ctx, "notes", []byte(`[]`)))
	raw, err := os.ReadFile(filepath.Join(path, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	got, err := store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, store.Set(ctx, "notes", []byte(`[{"title":"a"}]`)))
	got, err = store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"a"}]`, string(got))

	require.NoError(t, store.Remove(ctx, "notes"))
	require.NoError(t, store.Remove(ctx, "notes"), "removing a missing key is fine")
	_, err = store.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_SeesExternalWrites(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t)

	require.NoError(t, store.Set(ctx, "notes", []byte(`[]`)))
	_, err := store.Get(ctx, "notes")
	require.NoError(t, err)

	// Another process rewrites the slot with different content.
	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.json"), []byte(`[{"title":"from elsewhere"}]`), 0644))

	got, err := store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"from elsewhere"}]`, string(got))
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t)

	for _, k := range []string{"notes", "notes-2023", "settings"} {
		require.NoError(t, store.Set(ctx, k, []byte(`[]`)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(path, "README.md"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(path, fs.TempFilePrefix+"123"), nil, 0644))

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "notes-2023", "settings"}, keys)

	keys, err = store.Keys(ctx, "notes-*")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes-2023"}, keys)

	_, err = store.Keys(ctx, "[")
	assert.Error(t, err)
}

func TestStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)

	for _, key := range []string{"", "../escape", `a\b`, ".hidden", fs.TempFilePrefix + "x"} {
		assert.ErrorIs(t, store.Set(ctx, key, nil), core.ErrInvalidKey, key)
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, core.ErrInvalidKey, key)
	}
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := context.Background()
	_, path := setupStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.json"), []byte(`[]`), 0644))

	store := fs.NewStore(fs.Config{Path: path, ReadOnly: true})
	require.NoError(t, store.Initialize(ctx))
	assert.True(t, store.IsReadOnly())

	got, err := store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	assert.ErrorIs(t, store.Set(ctx, "notes", []byte(`[1]`)), core.ErrReadOnly)
	assert.ErrorIs(t, store.Remove(ctx, "notes"), core.ErrReadOnly)

	raw, err := os.ReadFile(filepath.Join(path, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestStore_State(t *testing.T) {
	ctx := context.Background()
	store, path := setupStore(t)
	require.NoError(t, store.Set(ctx, "notes", []byte(`[]`)))
	_, err := store.Get(ctx, "notes")
	require.NoError(t, err)

	state, ok := store.State().(fs.StoreState)
	require.True(t, ok)
	assert.Equal(t, path, state.Path)
	assert.Equal(t, 1, state.CacheSize)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "fs", store.ComponentType())
}
