package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFileStore_Basic(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, store.Set(ctx, "a", `1`))
	require.NoError(t, store.Set(ctx, "b", `"two"`))

	value, ok, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"two"`, value)

	require.NoError(t, store.Del(ctx, "a"))
	_, ok, _ = store.Get(ctx, "a")
	assert.False(t, ok)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	first, err := NewFileStore(path, testLogger())
	require.NoError(t, err)
	NewCharacterStorage(NewAdapter(first, testLogger())).SetName(ctx, "Ann")
	require.NoError(t, first.Close())

	second, err := NewFileStore(path, testLogger())
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	assert.Equal(t, "Ann", NewCharacterStorage(NewAdapter(second, testLogger())).Name(ctx, "Hero"))
}

func TestFileStore_CorruptFile(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(store.Path(), []byte("{{{"), 0o644))

	_, _, err := store.Get(ctx, "a")
	assert.Error(t, err)

	a := NewAdapter(store, testLogger())
	assert.Equal(t, "default", Get(ctx, a, "a", "default"))

	// next write replaces the unreadable file
	Set(ctx, a, "a", "value")
	assert.Equal(t, "value", Get(ctx, a, "a", "default"))
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, fmt.Sprintf("key-%d", i), fmt.Sprintf("%d", i)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		value, ok, err := store.Get(ctx, fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("%d", i), value)
	}
}
