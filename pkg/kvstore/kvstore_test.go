// pkg/kvstore/kvstore_test.go
package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("session.token", "abc123"))
	require.NoError(t, store.Set("wishlist.items", `["1","2"]`))

	got, err := store.Get("session.token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	require.NoError(t, store.Delete("session.token"))
	_, err = store.Get("session.token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Close())
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Close())

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFileStoreTreatsMalformedFileAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o600))

	store, err := OpenFileStore(path)
	require.NoError(t, err, "malformed persisted state is discarded, not fatal")
	defer store.Close()

	_, err = store.Get("anything")
	assert.ErrorIs(t, err, ErrNotFound)

	// The store stays usable and durable after the reset.
	require.NoError(t, store.Set("k", "v"))
	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestFileStoreDeleteMissingKeyIsNoOp(t *testing.T) {
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Delete("missing"))
}

func TestFileStoreShrinksOnShorterContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := OpenFileStore(path)
	require.NoError(t, err)

	long := make([]byte, 4096)
	for i := range long {
		long[i] = 'x'
	}
	require.NoError(t, store.Set("k", string(long)))
	require.NoError(t, store.Set("k", "short"))
	require.NoError(t, store.Close())

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "short", got, "stale trailing bytes must be truncated")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("k", "v"))
	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, store.Delete("k"))
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Close())
}
