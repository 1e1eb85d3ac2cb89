package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scanlens/scanlens/internal/report"
	"github.com/scanlens/scanlens/internal/types"
)

func testResult() *types.ScanResult {
	res := &types.ScanResult{
		Root:    "/work/app",
		Summary: types.NewSummary(),
		Files: map[string]*types.FileResult{
			"main.py": {
				Language: types.LangPython,
				Issues: []types.Issue{{
					RuleID:   "py-dangerous-eval",
					Severity: types.SevCritical,
					Category: types.CatSecurity,
					Message:  "eval() executes arbitrary code",
					Line:     1,
				}},
			},
		},
	}
	res.Summary.TotalFiles = 1
	res.Summary.TotalIssues = 1
	res.Summary.IssuesBySeverity[types.SevCritical] = 1
	res.Summary.IssuesByType[types.CatSecurity] = 1
	return res
}

func TestEndpoints(t *testing.T) {
	srv := New(testResult(), ":0", nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/report.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	got, err := report.ReadJSON(resp.Body)
	require.NoError(t, err)
	require.Equal(t, 1, got.Summary.TotalIssues)
}

func TestHTMLPage(t *testing.T) {
	srv := New(testResult(), ":0", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "py-dangerous-eval")
}

func TestUnknownPath(t *testing.T) {
	srv := New(testResult(), ":0", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
