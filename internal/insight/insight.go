// Package insight produces the optional natural-language summary layered
// over a scan result. Providers are best-effort: any failure or timeout
// degrades to "no insight" and never affects the rest of the result.
package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/scanlens/scanlens/internal/types"
)

// Provider is the capability interface the scanner consumes. Summarize is
// invoked at most once per scan, behind a caller-imposed timeout.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, res *types.ScanResult) (*types.Insight, error)
}

// priority weights per category, highest first in recommendations.
var categoryWeight = map[types.Category]float64{
	types.CatSecurity:   1.0,
	types.CatQuality:    0.7,
	types.CatComplexity: 0.6,
	types.CatStyle:      0.4,
}

var categoryAdvice = map[types.Category]string{
	types.CatSecurity:   "Address security findings first: rotate any exposed credentials and remove dynamic code execution.",
	types.CatQuality:    "Tighten error handling and remove leftover debug output.",
	types.CatComplexity: "Refactor deeply nested code paths into smaller functions.",
	types.CatStyle:      "Run a formatter and clean up style findings to keep review noise down.",
}

// Heuristic derives a summary and prioritized recommendations from the
// aggregated counts alone, without any external service.
type Heuristic struct {
	// MinPriority drops recommendations whose weighted priority falls
	// below the threshold. Zero keeps everything.
	MinPriority float64
}

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Summarize(_ context.Context, res *types.ScanResult) (*types.Insight, error) {
	s := res.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d files and found %d issues", s.TotalFiles, s.TotalIssues)
	if n := s.IssuesBySeverity[types.SevCritical] + s.IssuesBySeverity[types.SevHigh]; n > 0 {
		fmt.Fprintf(&b, ", %d of which are high or critical severity", n)
	}
	b.WriteString(".")
	if n := s.IssuesByType[types.CatSecurity]; n > 0 {
		fmt.Fprintf(&b, " Security issues dominate the risk profile (%d findings).", n)
	} else if s.TotalIssues == 0 {
		b.WriteString(" No issues detected by the active rule set.")
	}

	type scored struct {
		text     string
		priority float64
	}
	var recs []scored
	for cat, count := range s.IssuesByType {
		if count == 0 {
			continue
		}
		p := categoryWeight[cat] * capped(float64(count)/10.0)
		if p < h.MinPriority {
			continue
		}
		recs = append(recs, scored{text: categoryAdvice[cat], priority: p})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].priority != recs[j].priority {
			return recs[i].priority > recs[j].priority
		}
		return recs[i].text < recs[j].text
	})

	out := &types.Insight{Summary: b.String(), Recommendations: []string{}}
	for _, r := range recs {
		out.Recommendations = append(out.Recommendations, r.text)
	}
	return out, nil
}

func capped(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
