package cache

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *BadgerStore {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerStore(db)
}

func TestBadgerStoreGetSet(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("page:index")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set("page:index", []byte("<html>rendered</html>"), time.Minute))

	value, err := store.Get("page:index")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>rendered</html>"), value)
}

func TestBadgerStoreErase(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Set("page:index", []byte("stale"), time.Minute))
	require.NoError(t, store.Erase("page:index"))

	_, err := store.Get("page:index")
	assert.ErrorIs(t, err, ErrMiss)

	// Erasing an absent key is not an error.
	assert.NoError(t, store.Erase("page:index"))
}

func TestBadgerStoreClear(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Set("page:index", []byte("a"), time.Minute))
	require.NoError(t, store.Set("page:other", []byte("b"), time.Minute))
	require.NoError(t, store.Clear())

	_, err := store.Get("page:index")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get("page:other")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestBadgerStoreExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TTL expiry in short mode")
	}
	store := setupTestStore(t)

	// Badger tracks expiry with second granularity.
	require.NoError(t, store.Set("page:index", []byte("brief"), time.Second))
	time.Sleep(2100 * time.Millisecond)

	_, err := store.Get("page:index")
	assert.ErrorIs(t, err, ErrMiss)
}
