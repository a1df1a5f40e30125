package review

import (
	"fmt"
	"strings"

	"github.com/locr-dev/locr/review/models"
)

// promptTemplate is the fixed task description sent to the model. It
// demands exactly the four labeled JSON arrays the normalizer expects.
const promptTemplate = `You are an expert code reviewer for %s code. Review the following code from file '%s' and provide a structured review in **valid JSON format** (use double quotes, no trailing commas). Include exactly these keys:
- "bugs": Array of potential bugs or errors (up to 5, e.g., type errors, null/undefined handling). Each entry must have "line" (line number, 1-based), "code" (exact code snippet), and "description" (issue explanation).
- "quality_issues": Array of code quality issues (up to 5, e.g., readability, structure). Each entry must have "line" (line number, 1-based), "code" (exact code snippet), and "description" (issue explanation). Do not overlap with bugs.
- "suggestions": Array of actionable improvements (up to 5, e.g., f-strings for Python, template literals for JavaScript, type hints for Python). Each entry must have "line" (line number, 1-based), "code" (exact code snippet), "fix" (example fix), and "description" (why the fix is better).
- "security_concerns": Array of security concerns (up to 5, e.g., input validation issues). Each entry must have "line" (line number, 1-based), "code" (exact code snippet), and "description" (issue explanation).

Rules:
- Do not suggest adding, removing, or modifying comments or docstrings unless they are factually incorrect or misleading.
- Avoid suggesting renaming functions unless the name is misleading.
- Use modern language features where the language offers them (e.g., f-strings for Python, template literals for JavaScript).
- Include input validation suggestions where applicable.
- Ensure issues do not overlap across categories (e.g., a bug should not also appear as a quality issue).
- Ensure accurate line numbers (1-based) and exact code snippets.
- Return empty arrays if no issues are found.
- Ensure valid JSON with no trailing commas, hidden characters, or syntax errors.

Code:
` + "```" + `
%s
` + "```" + `
Return the JSON object enclosed in ` + "```json ```" + ` markers.`

// BuildPrompt produces the instruction string for a review request.
// Pure: an identical request always yields an identical prompt, which
// is what makes the fingerprint-keyed cache meaningful.
func BuildPrompt(req models.ReviewRequest) string {
	return fmt.Sprintf(promptTemplate, req.Language, req.FilePath, strings.TrimRight(req.Source, "\n"))
}
