package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/scanlens/scanlens/internal/types"
)

// WriteText renders a terminal-friendly report: summary counts, one
// table of findings per file, then recommendations when present.
func WriteText(w io.Writer, res *types.ScanResult) error {
	fmt.Fprintf(w, "Scan of %s\n", res.Root)
	if res.Repo != nil {
		fmt.Fprintf(w, "Repository: %s @ %s\n", res.Repo.Branch, shortCommit(res.Repo.Commit))
	}
	if res.Cancelled {
		fmt.Fprintln(w, "NOTE: scan was cancelled; results are partial.")
	}
	fmt.Fprintln(w)

	s := res.Summary
	fmt.Fprintf(w, "Files analyzed: %d\n", s.TotalFiles)
	fmt.Fprintf(w, "Issues found:   %d\n", s.TotalIssues)
	if s.SkippedTooLarge > 0 {
		fmt.Fprintf(w, "Skipped (size): %d\n", s.SkippedTooLarge)
	}
	fmt.Fprintf(w, "By severity:    %s\n", severityLine(s))
	fmt.Fprintf(w, "By type:        %s\n", categoryLine(s))

	if s.TotalIssues == 0 {
		fmt.Fprintln(w, "\nNo issues found ✅")
		return nil
	}

	for _, path := range res.Paths() {
		fr := res.Files[path]
		if len(fr.Issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s)\n", path, fr.Language)
		tbl := tablewriter.NewTable(w)
		tbl.Header("LINE", "SEVERITY", "RULE", "MESSAGE")
		for _, iss := range fr.Issues {
			tbl.Append(strconv.Itoa(iss.Line), strings.ToUpper(string(iss.Severity)), iss.RuleID, iss.Message)
		}
		if err := tbl.Render(); err != nil {
			return err
		}
	}

	if ins := res.AIInsights; ins != nil {
		fmt.Fprintf(w, "\nInsights: %s\n", ins.Summary)
		for _, rec := range ins.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	return nil
}

func severityLine(s types.Summary) string {
	parts := make([]string, 0, 5)
	for _, sev := range types.Severities() {
		parts = append(parts, fmt.Sprintf("%s=%d", sev, s.IssuesBySeverity[sev]))
	}
	return strings.Join(parts, " ")
}

func categoryLine(s types.Summary) string {
	parts := make([]string, 0, 4)
	for _, cat := range types.Categories() {
		parts = append(parts, fmt.Sprintf("%s=%d", cat, s.IssuesByType[cat]))
	}
	return strings.Join(parts, " ")
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
