package dataset

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"shopmetrics/internal/config"
	"shopmetrics/pkg/contracts/domain"
)

// Cache is an explicit loaded-dataset cache keyed by (source directory,
// window). Entries carry a content fingerprint of the six source files;
// a lookup re-fingerprints the directory so edits on disk surface as
// misses instead of stale data. Invalidation is caller-controlled.
//
// The cache is the one shared mutable structure in the pipeline and guards
// its map with a mutex.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	maxEntries int
}

type cacheEntry struct {
	records     []domain.OrderRecord
	fingerprint string
	storedAt    time.Time
}

// NewCache creates a cache bounded to maxEntries; entries beyond the bound
// evict oldest-first. A non-positive bound falls back to the default.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = config.DefaultCacheMaxEntries
	}
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// Get returns the cached record set for (sourceDir, window) if present and
// the source files are unchanged on disk. The second return reports a hit.
func (c *Cache) Get(sourceDir string, window WindowOptions) ([]domain.OrderRecord, bool) {
	key := cacheKey(sourceDir, window)

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	fp, err := fingerprintSources(sourceDir)
	if err != nil || fp != entry.fingerprint {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return entry.records, true
}

// Put stores a record set for (sourceDir, window), fingerprinting the
// source files as they are now. Put is a no-op when the sources cannot be
// fingerprinted; the next Get simply misses.
func (c *Cache) Put(sourceDir string, window WindowOptions, records []domain.OrderRecord) {
	fp, err := fingerprintSources(sourceDir)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(sourceDir, window)] = &cacheEntry{
		records:     records,
		fingerprint: fp,
		storedAt:    time.Now(),
	}

	for len(c.entries) > c.maxEntries {
		c.evictOldestLocked()
	}
}

// Invalidate drops every entry for a source directory.
func (c *Cache) Invalidate(sourceDir string) {
	prefix := sourceDir + "|"

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func cacheKey(sourceDir string, window WindowOptions) string {
	return sourceDir + "|" + window.String()
}

// fingerprintSources hashes the six source files (name, size, mtime, and
// content) into one digest used for staleness detection.
func fingerprintSources(sourceDir string) (string, error) {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	for _, table := range []string{"orders", "items", "products", "customers", "reviews", "payments"} {
		path := filepath.Join(sourceDir, config.SourceFiles[table])

		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(hasher, "%s|%d|%d|", table, info.Size(), info.ModTime().UnixNano())

		file, err := os.Open(path)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(hasher, file)
		file.Close()
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
