package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider counts invocations and returns a canned response.
type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) ReviewCompletionRequest(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const greetSource = `def greet(name):
    print("Hello, " + name)
    return None

greet("World")
`

// greetResponse holds one bug at line 2, one quality issue at line 3,
// two suggestions (emitted out of order), and one security concern.
const greetResponse = "```json\n" + `{
  "bugs": [
    {"line": 2, "code": "print(\"Hello, \" + name)", "description": "Concatenation raises TypeError for non-string name"}
  ],
  "quality_issues": [
    {"line": 3, "code": "return None", "description": "Functions return None by default"}
  ],
  "suggestions": [
    {"line": 5, "code": "greet(\"World\")", "fix": "if __name__ == \"__main__\": greet(\"World\")", "description": "Guard the call for importability"},
    {"line": 2, "code": "print(\"Hello, \" + name)", "fix": "print(f\"Hello, {name}\")", "description": "Use an f-string"}
  ],
  "security_concerns": [
    {"line": 1, "code": "def greet(name):", "description": "No validation of name input"}
  ]
}` + "\n```"

func newTestEngine(t *testing.T, provider *stubProvider) (*ReviewEngine, string, string) {
	t.Helper()

	rootDir, err := os.MkdirTemp("", "locr_engine_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(rootDir) })

	outputDir := filepath.Join(rootDir, "code_reviews")
	cacheDir := filepath.Join(rootDir, ".locr-cache")

	cache, err := NewReviewCache(cacheDir, true)
	require.NoError(t, err)

	engine := NewReviewEngine(provider, cache, EngineOptions{
		OutputDir:  outputDir,
		Extensions: []string{".py", ".js"},
		MaxTokens:  1024,
	}, zerolog.Nop()).(*ReviewEngine)

	return engine, rootDir, outputDir
}

// End-to-end: five findings land in the four fixed sections, sorted
func TestReviewEngine_EndToEnd(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "greet.py")
	require.NoError(t, os.WriteFile(filePath, []byte(greetSource), 0644))

	result, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, provider.calls)
	assert.False(t, result.CacheHit)

	record := result.Record
	assert.Len(t, record.Bugs, 1)
	assert.Len(t, record.QualityIssues, 1)
	assert.Len(t, record.Suggestions, 2)
	assert.Len(t, record.SecurityConcerns, 1)
	assert.Equal(t, 2, record.Bugs[0].Line)
	assert.Equal(t, 3, record.QualityIssues[0].Line)

	// Suggestions re-sorted ascending by line.
	assert.Equal(t, 2, record.Suggestions[0].Line)
	assert.Equal(t, 5, record.Suggestions[1].Line)

	text, err := os.ReadFile(result.TextPath)
	require.NoError(t, err)
	rendered := string(text)

	assert.Contains(t, rendered, "Concatenation raises TypeError for non-string name")
	assert.Contains(t, rendered, "Functions return None by default")
	assert.Contains(t, rendered, "Use an f-string")
	assert.Contains(t, rendered, "Guard the call for importability")
	assert.Contains(t, rendered, "No validation of name input")

	// Within the Suggestions section the line-2 entry precedes line 5.
	suggestions := rendered[strings.Index(rendered, "Suggestions:"):strings.Index(rendered, "Security Concerns:")]
	assert.Less(t, strings.Index(suggestions, "Line 2:"), strings.Index(suggestions, "Line 5:"))
}

// A second run over identical content must not re-invoke the model and
// must reproduce the first run's artifacts exactly
func TestReviewEngine_CacheCorrectness(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "greet.py")
	require.NoError(t, os.WriteFile(filePath, []byte(greetSource), 0644))

	first, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls)

	firstJSON, err := os.ReadFile(first.JSONPath)
	require.NoError(t, err)
	firstText, err := os.ReadFile(first.TextPath)
	require.NoError(t, err)

	second, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "second run must not re-invoke the model")
	assert.True(t, second.CacheHit)

	secondJSON, err := os.ReadFile(second.JSONPath)
	require.NoError(t, err)
	secondText, err := os.ReadFile(second.TextPath)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
	assert.Equal(t, firstText, secondText)
}

// Changing the file content produces a new fingerprint and a fresh call
func TestReviewEngine_CacheInvalidatedByContentChange(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "greet.py")
	require.NoError(t, os.WriteFile(filePath, []byte(greetSource), 0644))

	_, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls)

	require.NoError(t, os.WriteFile(filePath, []byte(greetSource+"\nprint('more')\n"), 0644))

	result, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.False(t, result.CacheHit)
}

// A 500-line file is truncated to 200 lines before review
func TestReviewEngine_Truncation(t *testing.T) {
	provider := &stubProvider{response: `{"bugs": [{"line": 199, "code": "a", "description": "in window"}, {"line": 321, "code": "b", "description": "past window"}]}`}
	engine, rootDir, _ := newTestEngine(t, provider)

	var b strings.Builder
	for i := 1; i <= 500; i++ {
		fmt.Fprintf(&b, "line_%d = %d\n", i, i)
	}
	filePath := filepath.Join(rootDir, "long.py")
	require.NoError(t, os.WriteFile(filePath, []byte(b.String()), 0644))

	result, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)

	require.Len(t, result.Record.Bugs, 1)
	assert.Equal(t, 199, result.Record.Bugs[0].Line)
}

// Line numbers are bounded by the fixed review window, not the file's
// own length: models routinely cite lines a finding spans past
func TestReviewEngine_ShortFileKeepsWindowFindings(t *testing.T) {
	provider := &stubProvider{response: `{"bugs": [{"line": 150, "code": "a", "description": "within window"}, {"line": 250, "code": "b", "description": "past window"}]}`}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "tiny.py")
	require.NoError(t, os.WriteFile(filePath, []byte("x = 1\n"), 0644))

	result, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)

	require.Len(t, result.Record.Bugs, 1)
	assert.Equal(t, 150, result.Record.Bugs[0].Line)
}

// An unparsable response still produces artifacts with empty categories
func TestReviewEngine_MalformedResponse(t *testing.T) {
	provider := &stubProvider{response: "This code looks great, no issues found!"}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "ok.py")
	require.NoError(t, os.WriteFile(filePath, []byte("x = 1\n"), 0644))

	result, err := engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)

	record := result.Record
	assert.True(t, record.Malformed)
	assert.Equal(t, 0, record.TotalFindings())

	data, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bugs": []`)

	// Malformed reviews are not cached: the next run retries the model.
	_, err = engine.ReviewFile(context.Background(), filePath)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

// Provider failures surface as typed invocation errors
func TestReviewEngine_ModelInvocationError(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("connection refused")}
	engine, rootDir, _ := newTestEngine(t, provider)

	filePath := filepath.Join(rootDir, "x.py")
	require.NoError(t, os.WriteFile(filePath, []byte("x = 1\n"), 0644))

	_, err := engine.ReviewFile(context.Background(), filePath)

	var invocationErr *ModelInvocationError
	require.ErrorAs(t, err, &invocationErr)
	assert.Equal(t, filePath, invocationErr.Path)
}

// Unreadable files surface as typed read errors
func TestReviewEngine_FileReadError(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, _ := newTestEngine(t, provider)

	_, err := engine.ReviewFile(context.Background(), filepath.Join(rootDir, "missing.py"))

	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, 0, provider.calls)
}

// Run walks the tree, filters by extension, and never aborts on a
// per-file failure
func TestReviewEngine_Run(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, outputDir := newTestEngine(t, provider)

	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "a.py"), []byte("x = 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "b.js"), []byte("let y = 2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "notes.txt"), []byte("not code\n"), 0644))

	summary, err := engine.Run(context.Background(), rootDir)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesProcessed)
	assert.Equal(t, 0, summary.FilesSkipped)
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, 2, summary.Bugs)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4) // JSON + text per reviewed file
}

// Default-ignored directories are pruned during collection
func TestReviewEngine_CollectFilesIgnores(t *testing.T) {
	provider := &stubProvider{response: greetResponse}
	engine, rootDir, _ := newTestEngine(t, provider)

	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "node_modules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "node_modules", "dep.js"), []byte("x\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "app.py"), []byte("x = 1\n"), 0644))

	files, err := engine.CollectFiles(rootDir)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(rootDir, "app.py"), files[0])
}
