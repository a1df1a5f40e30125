package models

// Category identifies one of the four review sections.
type Category string

const (
	CategoryBugs             Category = "bugs"
	CategoryQualityIssues    Category = "quality_issues"
	CategorySuggestions      Category = "suggestions"
	CategorySecurityConcerns Category = "security_concerns"
)

// OrderedCategories is the fixed rendering order for review sections.
var OrderedCategories = []Category{
	CategoryBugs,
	CategoryQualityIssues,
	CategorySuggestions,
	CategorySecurityConcerns,
}

// Header returns the human-readable section header for a category.
func (c Category) Header() string {
	switch c {
	case CategoryBugs:
		return "Bugs:"
	case CategoryQualityIssues:
		return "Quality Issues:"
	case CategorySuggestions:
		return "Suggestions:"
	case CategorySecurityConcerns:
		return "Security Concerns:"
	default:
		return string(c) + ":"
	}
}

// Finding is a single reviewer observation tied to a line of the
// truncated source listing.
type Finding struct {
	Line        int    `json:"line"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Fix         string `json:"fix,omitempty"`
}

// ReviewRecord is the complete validated review for one file. The JSON
// form is exactly the four named arrays; SourceFile and Malformed are
// run metadata and stay out of the artifact.
type ReviewRecord struct {
	SourceFile       string    `json:"-"`
	Bugs             []Finding `json:"bugs"`
	QualityIssues    []Finding `json:"quality_issues"`
	Suggestions      []Finding `json:"suggestions"`
	SecurityConcerns []Finding `json:"security_concerns"`
	Malformed        bool      `json:"-"`
}

// NewReviewRecord returns an empty record with all four categories
// initialized, so the JSON artifact always carries four arrays.
func NewReviewRecord(sourceFile string) *ReviewRecord {
	return &ReviewRecord{
		SourceFile:       sourceFile,
		Bugs:             []Finding{},
		QualityIssues:    []Finding{},
		Suggestions:      []Finding{},
		SecurityConcerns: []Finding{},
	}
}

// EnsureCategories replaces nil category slices with empty ones so the
// JSON artifact always carries four arrays, even after a gob roundtrip.
func (r *ReviewRecord) EnsureCategories() {
	if r.Bugs == nil {
		r.Bugs = []Finding{}
	}
	if r.QualityIssues == nil {
		r.QualityIssues = []Finding{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []Finding{}
	}
	if r.SecurityConcerns == nil {
		r.SecurityConcerns = []Finding{}
	}
}

// FindingsFor returns the findings slice for a category.
func (r *ReviewRecord) FindingsFor(c Category) []Finding {
	switch c {
	case CategoryBugs:
		return r.Bugs
	case CategoryQualityIssues:
		return r.QualityIssues
	case CategorySuggestions:
		return r.Suggestions
	case CategorySecurityConcerns:
		return r.SecurityConcerns
	default:
		return nil
	}
}

// SetFindings replaces the findings slice for a category.
func (r *ReviewRecord) SetFindings(c Category, findings []Finding) {
	switch c {
	case CategoryBugs:
		r.Bugs = findings
	case CategoryQualityIssues:
		r.QualityIssues = findings
	case CategorySuggestions:
		r.Suggestions = findings
	case CategorySecurityConcerns:
		r.SecurityConcerns = findings
	}
}

// TotalFindings counts findings across all categories.
func (r *ReviewRecord) TotalFindings() int {
	return len(r.Bugs) + len(r.QualityIssues) + len(r.Suggestions) + len(r.SecurityConcerns)
}

// ReviewRequest describes one file prepared for review. Immutable once
// built; the fingerprint keys the cache.
type ReviewRequest struct {
	FilePath    string
	Language    string
	Source      string
	LineCount   int
	Fingerprint string
}

// NewReviewRequest builds a request from an already-truncated source
// listing and its fingerprint.
func NewReviewRequest(filePath string, language string, source string, lineCount int, fingerprint string) ReviewRequest {
	return ReviewRequest{
		FilePath:    filePath,
		Language:    language,
		Source:      source,
		LineCount:   lineCount,
		Fingerprint: fingerprint,
	}
}

// FileReviewResult is what the engine produces for a single file.
type FileReviewResult struct {
	FilePath string
	Record   *ReviewRecord
	CacheHit bool
	JSONPath string
	TextPath string
}

// RunSummary aggregates a full directory run.
type RunSummary struct {
	FilesProcessed   int
	FilesSkipped     int
	CacheHits        int
	MalformedReviews int
	Bugs             int
	QualityIssues    int
	Suggestions      int
	SecurityConcerns int
}
