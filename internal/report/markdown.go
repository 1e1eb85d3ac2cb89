package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/scanlens/scanlens/internal/types"
)

// WriteMarkdown renders the result as a document suitable for pasting
// into a pull request or wiki page.
func WriteMarkdown(w io.Writer, res *types.ScanResult) error {
	fmt.Fprintf(w, "# Code Analysis Report\n\n")
	fmt.Fprintf(w, "Root: `%s`\n\n", res.Root)
	if res.Repo != nil {
		fmt.Fprintf(w, "Repository: `%s` @ `%s`\n\n", res.Repo.Branch, shortCommit(res.Repo.Commit))
	}
	if res.Cancelled {
		fmt.Fprintf(w, "> **Note:** scan was cancelled; results are partial.\n\n")
	}

	s := res.Summary
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(w, "| Files analyzed | %d |\n", s.TotalFiles)
	fmt.Fprintf(w, "| Issues found | %d |\n", s.TotalIssues)
	for _, sev := range types.Severities() {
		if n := s.IssuesBySeverity[sev]; n > 0 {
			fmt.Fprintf(w, "| %s | %d |\n", sev, n)
		}
	}
	fmt.Fprintln(w)

	if ins := res.AIInsights; ins != nil {
		fmt.Fprintf(w, "## Insights\n\n%s\n\n", ins.Summary)
		for _, rec := range ins.Recommendations {
			fmt.Fprintf(w, "- %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	if s.TotalIssues == 0 {
		fmt.Fprintf(w, "No issues found.\n")
		return nil
	}

	fmt.Fprintf(w, "## Findings\n")
	for _, path := range res.Paths() {
		fr := res.Files[path]
		if len(fr.Issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n### `%s` (%s)\n\n", path, fr.Language)
		fmt.Fprintf(w, "| Line | Severity | Rule | Message |\n|---|---|---|---|\n")
		for _, iss := range fr.Issues {
			fmt.Fprintf(w, "| %d | %s | `%s` | %s |\n", iss.Line, iss.Severity, iss.RuleID, escapePipes(iss.Message))
		}
		for _, iss := range fr.Issues {
			if iss.CodeSnippet == "" {
				continue
			}
			fmt.Fprintf(w, "\n<details><summary>%s at line %d</summary>\n\n", iss.RuleID, iss.Line)
			fmt.Fprintf(w, "```%s\n%s\n```\n", fenceLang(fr.Language), iss.CodeSnippet)
			if iss.FixSuggestion != "" {
				fmt.Fprintf(w, "\n**Fix:** %s\n", iss.FixSuggestion)
			}
			fmt.Fprintf(w, "\n</details>\n")
		}
	}
	return nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func fenceLang(lang types.Language) string {
	if lang == types.LangUnknown {
		return ""
	}
	return string(lang)
}
