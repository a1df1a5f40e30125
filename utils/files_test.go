package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 500-line file truncates to exactly the review window
func TestReadTruncated_LongFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_utils_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	var b strings.Builder
	for i := 1; i <= 500; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := filepath.Join(tempDir, "long.py")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	source, lineCount, err := ReadTruncated(path)
	require.NoError(t, err)

	assert.Equal(t, MaxReviewLines, lineCount)
	assert.Len(t, strings.Split(source, "\n"), MaxReviewLines)
	assert.True(t, strings.HasSuffix(source, "line 200"))
}

// Short files pass through whole
func TestReadTruncated_ShortFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locr_utils_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "short.py")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\nb = 2\n"), 0644))

	source, lineCount, err := ReadTruncated(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lineCount)
	assert.Equal(t, "a = 1\nb = 2", source)
}

func TestReadTruncated_MissingFile(t *testing.T) {
	_, _, err := ReadTruncated("/nonexistent/file.py")
	assert.Error(t, err)
}

// The trailing newline does not count as a line
func TestTruncateLines_TrailingNewline(t *testing.T) {
	text, count := TruncateLines("a\nb\n", 10)
	assert.Equal(t, 2, count)
	assert.Equal(t, "a\nb", text)

	text, count = TruncateLines("a\nb", 10)
	assert.Equal(t, 2, count)
	assert.Equal(t, "a\nb", text)
}

// Fingerprints are deterministic and content-sensitive
func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("hello"), Fingerprint("hello"))
	assert.NotEqual(t, Fingerprint("hello"), Fingerprint("hello world"))
	assert.Len(t, Fingerprint("hello"), 32)
}
