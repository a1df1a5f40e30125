package utils

import (
	"path/filepath"
	"strings"
)

// defaultIgnorePatterns keeps VCS metadata, build output, editor state,
// and the reviewer's own artifacts out of the input set.
var defaultIgnorePatterns = []string{
	"locr-config.yml",
	".git",
	".svn",
	".idea",
	".vscode",
	".locr-cache",
	".cache",
	"node_modules",
	"bin",
	"obj",
	"dist",
	"out",
	"code_reviews",
	"*.log",
	"*.bak",
	"*.tmp",
	"*.exe",
	"*.dll",
}

// IsDefaultIgnored reports whether any segment of a relative path
// matches the default ignore patterns.
func IsDefaultIgnored(path string) bool {
	parts := strings.Split(path, string(filepath.Separator))
	for _, part := range parts {
		part = strings.ToLower(part)
		for _, pattern := range defaultIgnorePatterns {
			if strings.HasPrefix(pattern, "*") {
				if strings.HasSuffix(part, strings.TrimPrefix(pattern, "*")) {
					return true
				}
			} else if part == pattern {
				return true
			}
		}
	}
	return false
}

// HasSupportedExtension reports whether a file's extension is in the
// configured allow-set. Matching is case-insensitive.
func HasSupportedExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}
