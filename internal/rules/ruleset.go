package rules

import (
	"fmt"
	"regexp"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/scanlens/scanlens/internal/types"
)

// RuleExecutionErrorID is the rule identifier attached to the informational
// issue recorded when a rule fails on a file. One broken rule never aborts
// a scan; its failure becomes data in the result.
const RuleExecutionErrorID = "rule_execution_error"

// DuplicateRuleError is the fatal load-time error for ambiguous rule IDs.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule identifier %q", e.ID)
}

// CustomSpec declares a user-supplied pattern rule in configuration.
type CustomSpec struct {
	ID        string
	Languages []types.Language
	Pattern   string
	Severity  types.Severity
	Category  types.Category
	Message   string
	Fix       string
}

// Set is the immutable active rule set for one scan, indexed by language.
type Set struct {
	byLang map[types.Language][]Rule
	ids    []string
	fp     string
}

// Load merges the built-in catalog with custom rules and indexes the result
// by language. Languages absent from enabled are skipped entirely; a nil
// enabled map keeps every supported language. Duplicate identifiers across
// sources are a load-time error.
func Load(custom []CustomSpec, enabled map[types.Language]bool) (*Set, error) {
	all := builtins()
	for _, spec := range custom {
		r, err := fromSpec(spec)
		if err != nil {
			return nil, err
		}
		all = append(all, r)
	}

	s := &Set{byLang: make(map[types.Language][]Rule)}
	seen := make(map[string]bool, len(all))
	for _, r := range all {
		if seen[r.ID()] {
			return nil, &DuplicateRuleError{ID: r.ID()}
		}
		seen[r.ID()] = true
		s.ids = append(s.ids, r.ID())
		for _, lang := range r.Languages() {
			if enabled != nil && !enabled[lang] {
				continue
			}
			s.byLang[lang] = append(s.byLang[lang], r)
		}
	}
	sort.Strings(s.ids)

	h := xxhash.New()
	for _, id := range s.ids {
		h.WriteString(id)
		h.Write([]byte{0})
	}
	for _, spec := range custom {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%v\x00",
			spec.ID, spec.Pattern, spec.Severity, spec.Category, spec.Message, spec.Fix, spec.Languages)
	}
	s.fp = fmt.Sprintf("%016x", h.Sum64())
	return s, nil
}

// Fingerprint identifies the exact loaded rule set, built-ins and custom
// rules included. Cached file results are only valid for the fingerprint
// they were produced under.
func (s *Set) Fingerprint() string {
	return s.fp
}

func builtins() []Rule {
	var all []Rule
	all = append(all, pythonRules()...)
	all = append(all, javascriptRules()...)
	all = append(all, javaRules()...)
	all = append(all, commonRules()...)
	return all
}

func fromSpec(spec CustomSpec) (Rule, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("custom rule without an id")
	}
	re, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("custom rule %q: invalid pattern: %w", spec.ID, err)
	}
	langs := spec.Languages
	if len(langs) == 0 {
		return nil, fmt.Errorf("custom rule %q: no languages declared", spec.ID)
	}
	sev := spec.Severity
	if sev.Rank() < 0 {
		return nil, fmt.Errorf("custom rule %q: unknown severity %q", spec.ID, sev)
	}
	cat := spec.Category
	if cat == "" {
		cat = types.CatQuality
	}
	msg := spec.Message
	if msg == "" {
		msg = fmt.Sprintf("Pattern %q matched", spec.Pattern)
	}
	return &patternRule{
		id:       spec.ID,
		langs:    langs,
		severity: sev,
		category: cat,
		message:  msg,
		fix:      spec.Fix,
		matcher:  lineMatcher(re),
	}, nil
}

// IDs returns every loaded rule identifier, sorted.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// ForLanguage returns the rules applicable to one language.
func (s *Set) ForLanguage(lang types.Language) []Rule {
	return s.byLang[lang]
}

// Run evaluates every rule applicable to the file's language against its
// content. Issues come back sorted by line ascending, ties broken by rule
// ID, so output is deterministic under any execution order.
func (s *Set) Run(lang types.Language, content []byte) []types.Issue {
	issues := []types.Issue{}
	for _, r := range s.byLang[lang] {
		matches, err := runIsolated(r, content)
		if err != nil {
			issues = append(issues, types.Issue{
				RuleID:   RuleExecutionErrorID,
				Severity: types.SevInfo,
				Category: types.CatQuality,
				Message:  fmt.Sprintf("rule %s failed: %v", r.ID(), err),
				Line:     1,
			})
			continue
		}
		for _, m := range matches {
			msg := m.Message
			if msg == "" {
				msg = r.Description()
			}
			issues = append(issues, types.Issue{
				RuleID:        r.ID(),
				Severity:      r.Severity(),
				Category:      r.Category(),
				Message:       msg,
				Line:          m.Line,
				Column:        m.Column,
				CodeSnippet:   snippet(content, m.Line),
				FixSuggestion: r.FixSuggestion(),
			})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].RuleID < issues[j].RuleID
	})
	return issues
}

// runIsolated converts a panicking rule into an error so a misbehaving
// matcher cannot take the scan down with it.
func runIsolated(r Rule, content []byte) (matches []Match, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			matches, err = nil, fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.Analyze(content)
}
