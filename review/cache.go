package review

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/locr-dev/locr/review/models"
)

// CacheEntry is the persisted form of one cached review. Entries are
// never mutated in place: a changed source file produces a new
// fingerprint and therefore a new entry.
type CacheEntry struct {
	Fingerprint string
	Record      *models.ReviewRecord
	CreatedAt   time.Time
}

// CacheStats tracks cache performance for the current process.
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	mutex         sync.RWMutex
}

// ReviewCache is a file-backed mapping from content fingerprint to
// ReviewRecord. One gob-encoded entry per fingerprint, no eviction, no
// TTL; single-process sequential access is assumed.
type ReviewCache struct {
	dir     string
	enabled bool
	stats   *CacheStats
}

// NewReviewCache creates the cache directory if needed. A disabled
// cache misses on every Get and drops every Put.
func NewReviewCache(dir string, enabled bool) (*ReviewCache, error) {
	cache := &ReviewCache{
		dir:     dir,
		enabled: enabled,
		stats:   &CacheStats{},
	}
	if !enabled {
		return cache, nil
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cache.dir = filepath.Join(cwd, ".locr-cache")
	}
	if err := os.MkdirAll(cache.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return cache, nil
}

func (c *ReviewCache) entryPath(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".cache")
}

// Get returns the cached record for a fingerprint. Any read or decode
// failure counts as a miss: the caller proceeds to the model.
func (c *ReviewCache) Get(fingerprint string) (*models.ReviewRecord, bool) {
	if !c.enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.entryPath(fingerprint))
	if err != nil {
		c.recordMiss()
		return nil, false
	}

	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		// Corrupt entry: drop it so the next run rewrites it.
		os.Remove(c.entryPath(fingerprint))
		c.recordMiss()
		return nil, false
	}
	if entry.Record == nil {
		c.recordMiss()
		return nil, false
	}
	// Gob decodes empty slices as nil; restore the four-array shape.
	entry.Record.EnsureCategories()

	c.recordHit()
	return entry.Record, true
}

// Put stores a record under its fingerprint, replacing any previous
// entry wholesale. Failures surface as *CacheIOError and are non-fatal
// to the caller.
func (c *ReviewCache) Put(fingerprint string, record *models.ReviewRecord) error {
	if !c.enabled {
		return nil
	}

	entry := CacheEntry{
		Fingerprint: fingerprint,
		Record:      record,
		CreatedAt:   time.Now(),
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(&entry); err != nil {
		return &CacheIOError{Fingerprint: fingerprint, Op: "encode", Err: err}
	}
	if err := os.WriteFile(c.entryPath(fingerprint), buffer.Bytes(), 0644); err != nil {
		return &CacheIOError{Fingerprint: fingerprint, Op: "write", Err: err}
	}
	return nil
}

// Clear removes every cache entry.
func (c *ReviewCache) Clear() error {
	if !c.enabled || c.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".cache" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to delete cache entry %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Enabled reports whether the cache is active.
func (c *ReviewCache) Enabled() bool { return c.enabled }

// Dir returns the cache directory path.
func (c *ReviewCache) Dir() string { return c.dir }

func (c *ReviewCache) recordHit() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheHits++
}

func (c *ReviewCache) recordMiss() {
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheMisses++
}

// Stats returns cache statistics: process-level hit/miss counters plus
// on-disk entry count and total size.
func (c *ReviewCache) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	stats["cache_enabled"] = c.enabled
	if !c.enabled {
		return stats, nil
	}

	c.stats.mutex.RLock()
	stats["total_requests"] = c.stats.TotalRequests
	stats["cache_hits"] = c.stats.CacheHits
	stats["cache_misses"] = c.stats.CacheMisses
	c.stats.mutex.RUnlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	var count int
	var totalSize int64
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".cache" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		totalSize += info.Size()
	}
	stats["cache_dir"] = c.dir
	stats["cache_files"] = count
	stats["total_size"] = totalSize
	return stats, nil
}
