// Package rules implements the rule engine: a catalog of built-in checks
// per language, merged at load time with user-declared pattern rules, and
// an executor that runs every applicable rule against a file's content.
package rules

import (
	"github.com/scanlens/scanlens/internal/types"
)

// Match is a raw hit reported by a rule before it is turned into an Issue.
// Message may override the rule's default message; a zero Column means the
// column is unknown.
type Match struct {
	Line    int
	Column  int
	Message string
}

// Rule is the capability interface shared by built-in and user-supplied
// checks. Implementations must be safe for concurrent use; Analyze is
// called from multiple scanner workers at once.
type Rule interface {
	ID() string
	Languages() []types.Language
	Severity() types.Severity
	Category() types.Category
	Description() string
	FixSuggestion() string
	Analyze(content []byte) ([]Match, error)
}

// patternRule is the regex-backed Rule used by most built-ins and by all
// custom rules declared in configuration.
type patternRule struct {
	id       string
	langs    []types.Language
	severity types.Severity
	category types.Category
	message  string
	fix      string
	matcher  func(content []byte) ([]Match, error)
}

func (r *patternRule) ID() string                  { return r.id }
func (r *patternRule) Languages() []types.Language { return r.langs }
func (r *patternRule) Severity() types.Severity    { return r.severity }
func (r *patternRule) Category() types.Category    { return r.category }
func (r *patternRule) Description() string         { return r.message }
func (r *patternRule) FixSuggestion() string       { return r.fix }

func (r *patternRule) Analyze(content []byte) ([]Match, error) {
	return r.matcher(content)
}
