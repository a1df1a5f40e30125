package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	styles "github.com/locr-dev/locr/constants/lipgloss"
	"github.com/locr-dev/locr/review/models"
)

var categoryStyles = map[models.Category]lipgloss.Style{
	models.CategoryBugs:             styles.BugStyle,
	models.CategoryQualityIssues:    styles.QualityStyle,
	models.CategorySuggestions:      styles.SuggestionStyle,
	models.CategorySecurityConcerns: styles.SecurityStyle,
}

// FormatReviewText renders a record as the human-readable text
// artifact: fixed section headers, findings as Line/Code/Description
// and optional Fix, in that field order.
func FormatReviewText(record *models.ReviewRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Code Review for %s ===\n\n%s\n", record.SourceFile, strings.Repeat("-", 80))

	for i, category := range models.OrderedCategories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(category.Header() + "\n")
		findings := record.FindingsFor(category)
		if len(findings) == 0 {
			b.WriteString("\n  None\n")
			continue
		}
		for _, f := range findings {
			fmt.Fprintf(&b, "\n  Line %d:\n", f.Line)
			fmt.Fprintf(&b, "    Code       : %s\n", f.Code)
			fmt.Fprintf(&b, "    Description: %s\n", f.Description)
			if f.Fix != "" {
				fmt.Fprintf(&b, "    Fix        : %s\n", f.Fix)
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\n", strings.Repeat("=", 80))
	return b.String()
}

// FormatReviewTerminal renders the same layout with one fixed color per
// category for terminal display.
func FormatReviewTerminal(record *models.ReviewRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Code Review for %s ===\n\n%s\n", record.SourceFile, styles.Gray.Render(strings.Repeat("-", 80)))

	for i, category := range models.OrderedCategories {
		if i > 0 {
			b.WriteString("\n")
		}
		style := categoryStyles[category]
		b.WriteString(style.Render(category.Header()) + "\n")
		findings := record.FindingsFor(category)
		if len(findings) == 0 {
			b.WriteString("\n  None\n")
			continue
		}
		for _, f := range findings {
			fmt.Fprintf(&b, "\n  %s\n", style.Render(fmt.Sprintf("Line %d:", f.Line)))
			fmt.Fprintf(&b, "    Code       : %s\n", f.Code)
			fmt.Fprintf(&b, "    Description: %s\n", f.Description)
			if f.Fix != "" {
				fmt.Fprintf(&b, "    Fix        : %s\n", f.Fix)
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\n", styles.Gray.Render(strings.Repeat("=", 80)))
	return b.String()
}

// MarshalReviewJSON produces the JSON artifact: exactly the four named
// arrays of finding objects.
func MarshalReviewJSON(record *models.ReviewRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

// SaveReview writes both artifacts for a record into outputDir and
// returns the JSON and text paths.
func SaveReview(record *models.ReviewRecord, outputDir string) (string, string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(record.SourceFile), filepath.Ext(record.SourceFile))
	jsonPath := filepath.Join(outputDir, stem+"_review.json")
	textPath := filepath.Join(outputDir, stem+"_review.txt")

	data, err := MarshalReviewJSON(record)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal review for %s: %w", record.SourceFile, err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write review JSON: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(FormatReviewText(record)), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write review text: %w", err)
	}
	return jsonPath, textPath, nil
}
