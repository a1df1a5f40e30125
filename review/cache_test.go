package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locr-dev/locr/review/models"
)

func sampleRecord(sourceFile string) *models.ReviewRecord {
	record := models.NewReviewRecord(sourceFile)
	record.Bugs = []models.Finding{{Line: 2, Code: "x", Description: "bug"}}
	record.Suggestions = []models.Finding{{Line: 4, Code: "y", Description: "idea", Fix: "z"}}
	return record
}

// Test basic cache put/get roundtrip keyed by fingerprint
func TestReviewCache_PutGet(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache, err := NewReviewCache(tempDir, true)
	require.NoError(t, err)

	_, found := cache.Get("fp1")
	assert.False(t, found)

	record := sampleRecord("a.py")
	require.NoError(t, cache.Put("fp1", record))

	cached, found := cache.Get("fp1")
	require.True(t, found)
	assert.Equal(t, record.Bugs, cached.Bugs)
	assert.Equal(t, record.Suggestions, cached.Suggestions)
}

// A disabled cache always misses and drops writes silently
func TestReviewCache_Disabled(t *testing.T) {
	cache, err := NewReviewCache("", false)
	require.NoError(t, err)

	require.NoError(t, cache.Put("fp1", sampleRecord("a.py")))
	_, found := cache.Get("fp1")
	assert.False(t, found)
}

// A corrupt entry counts as a miss and is removed
func TestReviewCache_CorruptEntry(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache, err := NewReviewCache(tempDir, true)
	require.NoError(t, err)

	corruptPath := filepath.Join(tempDir, "fpX.cache")
	require.NoError(t, os.WriteFile(corruptPath, []byte("not gob data"), 0644))

	_, found := cache.Get("fpX")
	assert.False(t, found)

	_, statErr := os.Stat(corruptPath)
	assert.True(t, os.IsNotExist(statErr))
}

// An entry is replaced wholesale when rewritten under the same key
func TestReviewCache_Replace(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache, err := NewReviewCache(tempDir, true)
	require.NoError(t, err)

	require.NoError(t, cache.Put("fp1", sampleRecord("a.py")))

	replacement := models.NewReviewRecord("a.py")
	require.NoError(t, cache.Put("fp1", replacement))

	cached, found := cache.Get("fp1")
	require.True(t, found)
	assert.Empty(t, cached.Bugs)
	assert.Empty(t, cached.Suggestions)
}

// Clear removes every entry; stats reflect the cache state
func TestReviewCache_ClearAndStats(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache, err := NewReviewCache(tempDir, true)
	require.NoError(t, err)

	require.NoError(t, cache.Put("fp1", sampleRecord("a.py")))
	require.NoError(t, cache.Put("fp2", sampleRecord("b.py")))

	stats, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats["cache_files"])

	require.NoError(t, cache.Clear())

	stats, err = cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["cache_files"])

	_, found := cache.Get("fp1")
	assert.False(t, found)
}
