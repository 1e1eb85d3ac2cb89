package rules

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanlens/scanlens/internal/types"
)

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	custom := []CustomSpec{{
		ID:        "py-dangerous-eval", // collides with a built-in
		Languages: []types.Language{types.LangPython},
		Pattern:   `foo`,
		Severity:  types.SevLow,
	}}
	_, err := Load(custom, nil)
	require.Error(t, err)
	var dup *DuplicateRuleError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "py-dangerous-eval", dup.ID)
}

func TestLoadCustomRule(t *testing.T) {
	custom := []CustomSpec{{
		ID:        "no-debugger",
		Languages: []types.Language{types.LangJavaScript, types.LangTypeScript},
		Pattern:   `\bdebugger\b`,
		Severity:  types.SevMedium,
		Category:  types.CatQuality,
		Message:   "debugger statement left in source",
		Fix:       "Remove the debugger statement",
	}}
	set, err := Load(custom, nil)
	require.NoError(t, err)
	assert.Contains(t, set.IDs(), "no-debugger")

	issues := set.Run(types.LangJavaScript, []byte("debugger;\n"))
	require.Len(t, filterByID(issues, "no-debugger"), 1)
	got := filterByID(issues, "no-debugger")[0]
	assert.Equal(t, types.SevMedium, got.Severity)
	assert.Equal(t, "debugger statement left in source", got.Message)
	assert.Equal(t, "Remove the debugger statement", got.FixSuggestion)
}

func TestFingerprintTracksRuleSet(t *testing.T) {
	base, err := Load(nil, nil)
	require.NoError(t, err)
	again, err := Load(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, base.Fingerprint(), again.Fingerprint())

	spec := CustomSpec{
		ID:        "no-missiles",
		Languages: []types.Language{types.LangPython},
		Pattern:   `launch_missiles`,
		Severity:  types.SevHigh,
	}
	custom, err := Load([]CustomSpec{spec}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, base.Fingerprint(), custom.Fingerprint())

	// same id, different pattern is a different rule set
	spec.Pattern = `fire_missiles`
	edited, err := Load([]CustomSpec{spec}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, custom.Fingerprint(), edited.Fingerprint())
}

func TestLoadRejectsInvalidCustomPattern(t *testing.T) {
	_, err := Load([]CustomSpec{{
		ID:        "broken",
		Languages: []types.Language{types.LangPython},
		Pattern:   `([`,
		Severity:  types.SevLow,
	}}, nil)
	require.Error(t, err)
}

func TestLoadHonorsEnabledLanguages(t *testing.T) {
	set, err := Load(nil, map[types.Language]bool{types.LangPython: true})
	require.NoError(t, err)
	assert.NotEmpty(t, set.ForLanguage(types.LangPython))
	assert.Empty(t, set.ForLanguage(types.LangJava))
}

func TestRunOrdersByLineThenRuleID(t *testing.T) {
	// two rules fire on line 1: todo-comment and py-hardcoded-credential
	src := "password = \"x\"  # TODO rotate\neval(z)\n"
	set, err := Load(nil, nil)
	require.NoError(t, err)
	issues := set.Run(types.LangPython, []byte(src))
	require.GreaterOrEqual(t, len(issues), 3)
	assert.True(t, sort.SliceIsSorted(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].RuleID < issues[j].RuleID
	}))
}

func TestRunIsolatesPanickingRule(t *testing.T) {
	set, err := Load(nil, nil)
	require.NoError(t, err)
	set.byLang[types.LangPython] = append(set.byLang[types.LangPython], &patternRule{
		id:       "explosive",
		langs:    []types.Language{types.LangPython},
		severity: types.SevLow,
		category: types.CatQuality,
		matcher:  func([]byte) ([]Match, error) { panic("boom") },
	})

	issues := set.Run(types.LangPython, []byte("eval(x)\n"))
	execErrs := filterByID(issues, RuleExecutionErrorID)
	require.Len(t, execErrs, 1)
	assert.Equal(t, types.SevInfo, execErrs[0].Severity)
	assert.Contains(t, execErrs[0].Message, "explosive")
	// the healthy rule still reported
	assert.Len(t, filterByID(issues, "py-dangerous-eval"), 1)
}

func TestIssueSnippetMarksOffendingLine(t *testing.T) {
	src := "a = 1\neval(x)\nb = 2\n"
	set, err := Load(nil, nil)
	require.NoError(t, err)
	issues := filterByID(set.Run(types.LangPython, []byte(src)), "py-dangerous-eval")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].CodeSnippet, ">    2 | eval(x)")
	assert.Contains(t, issues[0].CodeSnippet, "   1 | a = 1")
}

func filterByID(issues []types.Issue, id string) []types.Issue {
	var out []types.Issue
	for _, is := range issues {
		if is.RuleID == id {
			out = append(out, is)
		}
	}
	return out
}
