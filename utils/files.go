package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/zeebo/xxh3"
)

// MaxReviewLines is the truncation window: only the first 200 lines of
// a source file are reviewed. Longer files are silently partial.
const MaxReviewLines = 200

// ReadTruncated reads a file as text and truncates it to the review
// window. Returns the truncated listing and its line count.
func ReadTruncated(path string) (string, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	truncated, lineCount := TruncateLines(string(content), MaxReviewLines)
	return truncated, lineCount, nil
}

// TruncateLines keeps the first maxLines lines of text. A trailing
// newline does not count as an extra line.
func TruncateLines(text string, maxLines int) (string, int) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n"), len(lines)
}

// Fingerprint hashes a truncated source listing into the cache key.
// xxh3-128 keeps keys short and collision-safe for this use.
func Fingerprint(text string) string {
	sum := xxh3.Hash128([]byte(text))
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
}
