package types

import "sort"

// Language identifies the programming language of a source file.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangUnknown    Language = "unknown"
)

// Severity is an ordinal risk level attached to an issue.
type Severity string

const (
	SevInfo     Severity = "info"
	SevLow      Severity = "low"
	SevMedium   Severity = "medium"
	SevHigh     Severity = "high"
	SevCritical Severity = "critical"
)

// Severities lists all severity levels from least to most severe.
func Severities() []Severity {
	return []Severity{SevInfo, SevLow, SevMedium, SevHigh, SevCritical}
}

// Rank maps a severity to its ordinal position (info=0 … critical=4).
// Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SevInfo:
		return 0
	case SevLow:
		return 1
	case SevMedium:
		return 2
	case SevHigh:
		return 3
	case SevCritical:
		return 4
	default:
		return -1
	}
}

// Category classifies what kind of problem an issue describes.
type Category string

const (
	CatSecurity   Category = "security"
	CatQuality    Category = "quality"
	CatStyle      Category = "style"
	CatComplexity Category = "complexity"
)

// Categories lists all issue categories.
func Categories() []Category {
	return []Category{CatSecurity, CatQuality, CatStyle, CatComplexity}
}

// Issue is one finding produced by one rule against one file. Issues are
// value objects; they carry no identity beyond their content.
type Issue struct {
	RuleID        string   `json:"rule_id"`
	Severity      Severity `json:"severity"`
	Category      Category `json:"type"`
	Message       string   `json:"message"`
	Line          int      `json:"line"` // 1-based
	Column        int      `json:"column,omitempty"`
	CodeSnippet   string   `json:"code_snippet,omitempty"`
	FixSuggestion string   `json:"fix_suggestion,omitempty"`
}

// FileResult holds the issues found in a single file, ordered by line
// number ascending with ties broken by rule ID.
type FileResult struct {
	Language Language `json:"language"`
	Issues   []Issue  `json:"issues"`
}

// Summary aggregates issue counts for a whole scan. IssuesBySeverity and
// IssuesByType each partition TotalIssues exactly; every severity and
// category key is present even when its count is zero.
type Summary struct {
	TotalFiles       int              `json:"total_files"`
	TotalIssues      int              `json:"total_issues"`
	IssuesBySeverity map[Severity]int `json:"issues_by_severity"`
	IssuesByType     map[Category]int `json:"issues_by_type"`
	SkippedTooLarge  int              `json:"skipped_too_large,omitempty"`
}

// NewSummary returns a Summary with all severity and category buckets
// initialized to zero.
func NewSummary() Summary {
	s := Summary{
		IssuesBySeverity: make(map[Severity]int, 5),
		IssuesByType:     make(map[Category]int, 4),
	}
	for _, sev := range Severities() {
		s.IssuesBySeverity[sev] = 0
	}
	for _, cat := range Categories() {
		s.IssuesByType[cat] = 0
	}
	return s
}

// Insight is an optional, best-effort natural-language layer over a scan.
type Insight struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// RepoInfo is lightweight version-control metadata for the scan root.
type RepoInfo struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// ScanResult is the complete output of one analysis run over a directory
// tree. It is the single artifact handed to the report builder.
type ScanResult struct {
	Root       string                 `json:"root"`
	Summary    Summary                `json:"summary"`
	AIInsights *Insight               `json:"ai_insights,omitempty"`
	Files      map[string]*FileResult `json:"files"`
	Repo       *RepoInfo              `json:"repo,omitempty"`
	Cancelled  bool                   `json:"cancelled,omitempty"`
}

// Paths returns the file paths of the result in stable (lexicographic)
// order. All renderers iterate files through this.
func (r *ScanResult) Paths() []string {
	out := make([]string, 0, len(r.Files))
	for p := range r.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasSeverityAtOrAbove reports whether any issue meets the given threshold.
func (r *ScanResult) HasSeverityAtOrAbove(min Severity) bool {
	th := min.Rank()
	for sev, n := range r.Summary.IssuesBySeverity {
		if n > 0 && sev.Rank() >= th {
			return true
		}
	}
	return false
}
