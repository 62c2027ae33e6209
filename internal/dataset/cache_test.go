package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/config"
	"shopmetrics/pkg/contracts/domain"
)

func TestCache_PutGet(t *testing.T) {
	dir := writeSourceDir(t, nil)
	cache := NewCache(4)
	window := WindowOptions{Year: 2017}

	_, ok := cache.Get(dir, window)
	assert.False(t, ok)

	records := []domain.OrderRecord{{OrderID: "O1", Price: 30}}
	cache.Put(dir, window, records)
	assert.Equal(t, 1, cache.Len())

	got, ok := cache.Get(dir, window)
	require.True(t, ok)
	assert.Equal(t, records, got)

	// a different window is a different entry
	_, ok = cache.Get(dir, WindowOptions{Year: 2018})
	assert.False(t, ok)
}

func TestCache_SourceEditInvalidates(t *testing.T) {
	dir := writeSourceDir(t, nil)
	cache := NewCache(4)
	window := WindowOptions{}

	cache.Put(dir, window, []domain.OrderRecord{{OrderID: "O1"}})

	// touch one source file; the fingerprint no longer matches
	path := filepath.Join(dir, config.OrdersFile)
	require.NoError(t, os.WriteFile(path, []byte("order_id\nO9\n"), 0o644))

	_, ok := cache.Get(dir, window)
	assert.False(t, ok)
	// the stale entry is dropped, not kept around
	assert.Equal(t, 0, cache.Len())
}

func TestCache_PutSkipsUnfingerprintableSources(t *testing.T) {
	cache := NewCache(4)
	cache.Put(t.TempDir(), WindowOptions{}, []domain.OrderRecord{{OrderID: "O1"}})
	assert.Equal(t, 0, cache.Len())
}

func TestCache_EvictsOldest(t *testing.T) {
	dir := writeSourceDir(t, nil)
	cache := NewCache(2)

	cache.Put(dir, WindowOptions{Year: 2016}, nil)
	time.Sleep(2 * time.Millisecond)
	cache.Put(dir, WindowOptions{Year: 2017}, nil)
	time.Sleep(2 * time.Millisecond)
	cache.Put(dir, WindowOptions{Year: 2018}, nil)

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(dir, WindowOptions{Year: 2016})
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = cache.Get(dir, WindowOptions{Year: 2018})
	assert.True(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	dirA := writeSourceDir(t, nil)
	dirB := writeSourceDir(t, nil)
	cache := NewCache(4)

	cache.Put(dirA, WindowOptions{Year: 2017}, nil)
	cache.Put(dirA, WindowOptions{Year: 2018}, nil)
	cache.Put(dirB, WindowOptions{Year: 2017}, nil)
	require.Equal(t, 3, cache.Len())

	cache.Invalidate(dirA)
	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get(dirB, WindowOptions{Year: 2017})
	assert.True(t, ok)

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())
}

func TestNewCache_BoundFallback(t *testing.T) {
	cache := NewCache(0)
	assert.Equal(t, config.DefaultCacheMaxEntries, cache.maxEntries)
}
