package rules

import (
	"fmt"
	"regexp"

	"github.com/scanlens/scanlens/internal/language"
	"github.com/scanlens/scanlens/internal/types"
)

const maxLineLength = 120

var reTodoComment = regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX)\b`)

// commonRules apply to every supported language.
func commonRules() []Rule {
	all := language.Supported()
	return []Rule{
		&patternRule{
			id: "todo-comment", langs: all,
			severity: types.SevInfo, category: types.CatStyle,
			message: "TODO/FIXME marker left in source",
			fix:     "Track the work in an issue and remove the marker",
			matcher: lineMatcher(reTodoComment),
		},
		&patternRule{
			id: "long-line", langs: all,
			severity: types.SevLow, category: types.CatStyle,
			message: fmt.Sprintf("Line exceeds %d characters", maxLineLength),
			fix:     "Break the statement across multiple lines",
			matcher: longLineMatcher,
		},
		&patternRule{
			id: "deep-nesting", langs: all,
			severity: types.SevMedium, category: types.CatComplexity,
			message: "Deeply nested block; control flow is hard to follow",
			fix:     "Extract inner blocks into functions or use early returns",
			matcher: deepNestingMatcher,
		},
	}
}

func longLineMatcher(content []byte) ([]Match, error) {
	return eachLine(content, func(line int, text string) *Match {
		if len(text) > maxLineLength {
			return &Match{Line: line, Column: maxLineLength + 1}
		}
		return nil
	})
}

// deepNestingMatcher flags lines indented six levels or more, counting a
// level as four spaces or one tab. A crude proxy for nesting depth, but it
// works uniformly across the supported languages without parsing.
func deepNestingMatcher(content []byte) ([]Match, error) {
	const threshold = 6
	return eachLine(content, func(line int, text string) *Match {
		depth, i := 0, 0
		for i < len(text) {
			if text[i] == '\t' {
				depth++
				i++
			} else if i+3 < len(text) && text[i] == ' ' && text[i+1] == ' ' && text[i+2] == ' ' && text[i+3] == ' ' {
				depth++
				i += 4
			} else {
				break
			}
		}
		if depth >= threshold && len(text[i:]) > 0 {
			return &Match{Line: line, Column: i + 1}
		}
		return nil
	})
}
