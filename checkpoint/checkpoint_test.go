package checkpoint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *State {
	return &State{
		K:              4,
		LastN:          238117,
		Found:          []uint64{238117},
		TotalChecks:    238117,
		ElapsedSeconds: 12.5,
		Timestamp:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStateClone(t *testing.T) {
	st := sampleState()
	c := st.Clone()
	c.Found[0] = 1
	c.LastN = 2

	assert.Equal(t, uint64(238117), st.Found[0])
	assert.Equal(t, uint64(238117), st.LastN)
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, 4)
	require.ErrorIs(t, err, ErrNotFound)

	st := sampleState()
	require.NoError(t, store.Save(ctx, st))

	got, err := store.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	// Different k stays independent.
	_, err = store.Load(ctx, 5)
	require.ErrorIs(t, err, ErrNotFound)

	// Saves overwrite.
	st.LastN = 250000
	st.TotalChecks = 250000
	require.NoError(t, store.Save(ctx, st))
	got, err = store.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(250000), got.LastN)
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	testStoreRoundTrip(t, store)
}

func TestLocalStoreErrNotFoundIsNotExist(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), 7)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalStoreFilesAreCompressed(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleState()))

	data, err := os.ReadFile(filepath.Join(dir, "sweep_k4.json.zst"))
	require.NoError(t, err)
	// zstd frame magic.
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, data[:4])
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	st := sampleState()
	require.NoError(t, store.Save(context.Background(), st))

	// Mutating the saved value must not leak into the store.
	st.LastN = 1
	got, err := store.Load(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(238117), got.LastN)
}
