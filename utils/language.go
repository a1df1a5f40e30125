package utils

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// languageByExtension covers the extensions the reviewer supports out
// of the box; anything else falls back to lexer matching.
var languageByExtension = map[string]string{
	".py":   "Python",
	".js":   "JavaScript",
	".cpp":  "C++",
	".java": "Java",
	".ts":   "TypeScript",
	".html": "HTML",
	".css":  "CSS",
	".go":   "Go",
}

// DetectLanguage maps a file path to the language tag used in the
// review prompt. Unknown files are reviewed as "Unknown" rather than
// skipped; the extension allow-set decides what gets reviewed at all.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if language, ok := languageByExtension[ext]; ok {
		return language
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return lexer.Config().Name
	}
	return "Unknown"
}
