package review

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/locr-dev/locr/review/models"
)

// rawReview mirrors the payload shape the prompt demands. Entries stay
// raw so a single malformed entry drops alone instead of sinking its
// whole category. Unknown keys are discarded by the decoder.
type rawReview struct {
	Bugs             []json.RawMessage `json:"bugs"`
	QualityIssues    []json.RawMessage `json:"quality_issues"`
	Suggestions      []json.RawMessage `json:"suggestions"`
	SecurityConcerns []json.RawMessage `json:"security_concerns"`
}

// rawFinding tolerates the field types a generative model actually
// emits: line may arrive as a number or a numeric string.
type rawFinding struct {
	Line        any    `json:"line"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Fix         string `json:"fix"`
}

// Normalize converts raw model output into a validated ReviewRecord.
//
// Hard failure happens only when no structured payload can be located
// at all; in that case the returned error is a *MalformedResponseError
// carrying the raw text. Field-level defects inside an otherwise
// parsable payload never fail the record: bad entries are dropped and
// valid ones kept. lineLimit bounds finding line numbers to the
// truncated listing; entries past it are dropped.
func Normalize(raw string, lineLimit int) (*models.ReviewRecord, error) {
	payload, found := extractPayload(raw)
	if !found {
		return nil, &MalformedResponseError{Raw: raw}
	}

	var parsed rawReview
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
	}

	record := models.NewReviewRecord("")
	record.Bugs = validateEntries(parsed.Bugs, lineLimit)
	record.QualityIssues = validateEntries(parsed.QualityIssues, lineLimit)
	record.Suggestions = validateEntries(parsed.Suggestions, lineLimit)
	record.SecurityConcerns = validateEntries(parsed.SecurityConcerns, lineLimit)

	record.QualityIssues = filterCommentFindings(record.QualityIssues)
	record.Suggestions = filterCommentFindings(record.Suggestions)

	return record, nil
}

// extractPayload locates the outermost JSON object in free-form model
// text. Fenced blocks win; otherwise the first balanced-brace region is
// taken. When braces open but never close (truncated output), the span
// runs to the end of the text and the repair pass completes it.
func extractPayload(text string) (string, bool) {
	text = strings.TrimSpace(text)

	// A fence only wraps the payload if it actually holds one; models
	// also quote source snippets in fences before their review.
	if fenced, ok := extractFencedBlock(text); ok && strings.IndexByte(fenced, '{') >= 0 {
		text = fenced
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	// Unbalanced: hand the open-ended span to the repair pass.
	return text[start:], true
}

// extractFencedBlock returns the body of the payload code fence, if
// any. The model is asked to wrap its payload in ```json markers, so a
// json-tagged fence wins over the first fence of any other kind.
func extractFencedBlock(text string) (string, bool) {
	open := strings.Index(text, "```json")
	if open < 0 {
		open = strings.Index(text, "```")
	}
	if open < 0 {
		return "", false
	}
	rest := text[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Skip the info string ("json") on the opening fence line.
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	body := strings.TrimSpace(rest)
	if body == "" {
		return "", false
	}
	return body, true
}

// validateEntries applies field-level soft validation to one category
// and re-sorts it by ascending line number. Sorting is stable so
// equal-line findings keep the model's emission order.
func validateEntries(entries []json.RawMessage, lineLimit int) []models.Finding {
	findings := []models.Finding{}
	for _, entry := range entries {
		var rf rawFinding
		if err := json.Unmarshal(entry, &rf); err != nil {
			continue
		}
		line, ok := coerceLine(rf.Line)
		if !ok || line <= 0 {
			continue
		}
		if lineLimit > 0 && line > lineLimit {
			continue
		}
		code := strings.TrimSpace(rf.Code)
		description := strings.TrimSpace(rf.Description)
		if code == "" || description == "" {
			continue
		}
		findings = append(findings, models.Finding{
			Line:        line,
			Code:        code,
			Description: description,
			Fix:         strings.TrimSpace(rf.Fix),
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})

	return findings
}

// coerceLine accepts the number representations models emit for line
// fields: JSON numbers and numeric strings.
func coerceLine(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		line := int(n)
		if float64(line) != n {
			return 0, false
		}
		return line, true
	case string:
		line, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return line, true
	case json.Number:
		line, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(line), true
	default:
		return 0, false
	}
}

// filterCommentFindings drops quality and suggestion entries that only
// nitpick comments or docstrings, which the prompt forbids but smaller
// models still produce.
func filterCommentFindings(findings []models.Finding) []models.Finding {
	kept := []models.Finding{}
	for _, f := range findings {
		code := strings.TrimSpace(f.Code)
		if strings.HasPrefix(code, "//") || strings.HasPrefix(code, "/*") ||
			strings.HasPrefix(code, "#") || strings.HasPrefix(code, `"""`) || strings.HasPrefix(code, "'''") {
			continue
		}
		if strings.Contains(strings.ToLower(f.Description), "comment") {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
