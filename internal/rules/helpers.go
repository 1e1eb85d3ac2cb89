package rules

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Inline suppression markers. A line containing "scanlens:ignore" is never
// reported; "scanlens:ignore-next-line" suppresses the following line.
const (
	markerIgnoreLine = "scanlens:ignore"
	markerIgnoreNext = "scanlens:ignore-next-line"
)

// lineMatcher builds a matcher that scans content line by line and emits a
// match for every line the regex hits, honoring inline suppressions.
func lineMatcher(re *regexp.Regexp) func(content []byte) ([]Match, error) {
	return func(content []byte) ([]Match, error) {
		var out []Match
		sc := bufio.NewScanner(bytes.NewReader(content))
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		line := 0
		skipNext := false
		for sc.Scan() {
			line++
			t := sc.Text()
			if strings.Contains(t, markerIgnoreNext) {
				skipNext = true
				continue
			}
			if skipNext {
				skipNext = false
				continue
			}
			if strings.Contains(t, markerIgnoreLine) {
				continue
			}
			if loc := re.FindStringIndex(t); loc != nil {
				out = append(out, Match{Line: line, Column: loc[0] + 1})
			}
		}
		return out, sc.Err()
	}
}

// eachLine runs fn for every non-suppressed line. Used by heuristic rules
// that need more than a single regex.
func eachLine(content []byte, fn func(line int, text string) *Match) ([]Match, error) {
	var out []Match
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	skipNext := false
	for sc.Scan() {
		line++
		t := sc.Text()
		if strings.Contains(t, markerIgnoreNext) {
			skipNext = true
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		if strings.Contains(t, markerIgnoreLine) {
			continue
		}
		if m := fn(line, t); m != nil {
			out = append(out, *m)
		}
	}
	return out, sc.Err()
}

// snippet extracts the offending line with one line of context either side,
// formatted with 1-based line numbers and a marker on the hit line.
func snippet(content []byte, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	if line > len(lines) {
		return ""
	}
	start := line - 2
	if start < 0 {
		start = 0
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		prefix := "  "
		if i == line-1 {
			prefix = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s", prefix, i+1, strings.TrimRight(lines[i], "\r"))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
