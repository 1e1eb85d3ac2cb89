package core

import (
	"context"
	"io"

	"github.com/scanlens/scanlens/internal/engine"
	"github.com/scanlens/scanlens/internal/report"
	"github.com/scanlens/scanlens/internal/rules"
	"github.com/scanlens/scanlens/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable
// path; they can become decoupled structs later without breaking callers.
type (
	Config     = engine.Config
	ScanResult = types.ScanResult
	FileResult = types.FileResult
	Issue      = types.Issue
	Summary    = types.Summary
	Language   = types.Language
	Severity   = types.Severity
	Category   = types.Category
	Format     = report.Format
)

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) (*ScanResult, error) {
	return engine.Scan(ctx, cfg)
}

// DefaultRules loads the built-in rule set with every language enabled.
func DefaultRules() (*rules.Set, error) {
	return rules.Load(nil, nil)
}

// RuleIDs returns the IDs of the built-in rules.
func RuleIDs() []string {
	set, err := rules.Load(nil, nil)
	if err != nil {
		return nil
	}
	return set.IDs()
}

// Render writes a result in the named format ("json", "text",
// "markdown" or "html").
func Render(w io.Writer, format string, res *ScanResult) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	return report.Render(w, f, res)
}
