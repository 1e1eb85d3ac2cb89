package tui

import (
	"strings"
	"testing"

	"github.com/scanlens/scanlens/internal/types"
)

func browserResult() *types.ScanResult {
	res := &types.ScanResult{
		Root:    "/work/app",
		Summary: types.NewSummary(),
		Files: map[string]*types.FileResult{
			"b.js": {
				Language: types.LangJavaScript,
				Issues: []types.Issue{
					{RuleID: "js-var-declaration", Severity: types.SevLow, Category: types.CatStyle, Message: "var used", Line: 1},
				},
			},
			"a.py": {
				Language: types.LangPython,
				Issues: []types.Issue{
					{RuleID: "py-dangerous-eval", Severity: types.SevCritical, Category: types.CatSecurity, Message: "eval", Line: 3},
					{RuleID: "todo-comment", Severity: types.SevInfo, Category: types.CatStyle, Message: "TODO", Line: 7},
				},
			},
		},
	}
	res.Summary.TotalFiles = 2
	res.Summary.TotalIssues = 3
	return res
}

func TestNewModelFlattensInPathOrder(t *testing.T) {
	m := NewModel(browserResult())

	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.rows))
	}
	// paths sort lexicographically, issues keep their per-file order
	if m.rows[0].path != "a.py" || m.rows[0].issue.RuleID != "py-dangerous-eval" {
		t.Errorf("unexpected first row: %s %s", m.rows[0].path, m.rows[0].issue.RuleID)
	}
	if m.rows[2].path != "b.js" {
		t.Errorf("expected b.js last, got %s", m.rows[2].path)
	}
}

func TestSeverityFilter(t *testing.T) {
	m := NewModel(browserResult())

	m.severityFilter = types.SevCritical
	m.applyFilter()
	if len(m.shown) != 1 {
		t.Fatalf("expected 1 critical row, got %d", len(m.shown))
	}
	if m.shown[0].issue.RuleID != "py-dangerous-eval" {
		t.Errorf("unexpected filtered row: %s", m.shown[0].issue.RuleID)
	}

	m.severityFilter = ""
	m.applyFilter()
	if len(m.shown) != 3 {
		t.Errorf("expected filter cleared, got %d rows", len(m.shown))
	}
}

func TestSelectedRowBounds(t *testing.T) {
	empty := NewModel(&types.ScanResult{Summary: types.NewSummary(), Files: map[string]*types.FileResult{}})
	if empty.selectedRow() != nil {
		t.Error("expected nil selection on empty result")
	}

	m := NewModel(browserResult())
	if r := m.selectedRow(); r == nil || r.path != "a.py" {
		t.Errorf("expected first row selected, got %+v", r)
	}
}

func TestSeverityText(t *testing.T) {
	if got := severityText(types.SevCritical); got != "CRITICAL" {
		t.Errorf("severityText = %q", got)
	}
}

func TestHighlightCodeFallsBack(t *testing.T) {
	code := "> 1 | eval(x)"
	if out := highlightCode(code, "a.xyz-unknown"); out == "" {
		t.Error("highlight of unknown type should not be empty")
	}
	out := highlightCode("eval(x)", "a.py")
	if !strings.Contains(out, "eval") {
		t.Errorf("highlighted output lost content: %q", out)
	}
}
