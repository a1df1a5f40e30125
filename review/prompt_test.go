package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/locr-dev/locr/review/models"
)

// The prompt must be a pure function of the request
func TestBuildPrompt_Deterministic(t *testing.T) {
	req := models.NewReviewRequest("greet.py", "Python", "def greet(name):\n    pass", 2, "abc123")

	first := BuildPrompt(req)
	second := BuildPrompt(req)

	assert.Equal(t, first, second)
}

// The prompt carries the language tag, file name, and source verbatim
func TestBuildPrompt_Contents(t *testing.T) {
	source := "def greet(name):\n    print(\"Hello, \" + name)"
	req := models.NewReviewRequest("greet.py", "Python", source, 2, "abc123")

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Python code")
	assert.Contains(t, prompt, "'greet.py'")
	assert.Contains(t, prompt, source)
	assert.Contains(t, prompt, `"bugs"`)
	assert.Contains(t, prompt, `"quality_issues"`)
	assert.Contains(t, prompt, `"suggestions"`)
	assert.Contains(t, prompt, `"security_concerns"`)
}

// Different requests produce different prompts
func TestBuildPrompt_VariesWithRequest(t *testing.T) {
	a := BuildPrompt(models.NewReviewRequest("a.py", "Python", "x = 1", 1, "f1"))
	b := BuildPrompt(models.NewReviewRequest("b.js", "JavaScript", "let x = 1", 1, "f2"))

	assert.NotEqual(t, a, b)
}
