package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"app.py", "Python"},
		{"src/index.js", "JavaScript"},
		{"main.cpp", "C++"},
		{"Server.java", "Java"},
		{"widget.ts", "TypeScript"},
		{"index.html", "HTML"},
		{"style.css", "CSS"},
		{"main.go", "Go"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectLanguage(tt.path), tt.path)
	}
}

func TestDetectLanguage_Unknown(t *testing.T) {
	assert.Equal(t, "Unknown", DetectLanguage("data.xyzqq"))
}
