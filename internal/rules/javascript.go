package rules

import (
	"regexp"

	"github.com/scanlens/scanlens/internal/types"
)

var (
	reJSEval        = regexp.MustCompile(`\beval\s*\(|new\s+Function\s*\(`)
	reJSInnerHTML   = regexp.MustCompile(`\.(innerHTML|outerHTML)\s*=|\.insertAdjacentHTML\s*\(`)
	reJSDocWrite    = regexp.MustCompile(`\bdocument\.write(ln)?\s*\(`)
	reJSCredential  = regexp.MustCompile(`(?i)\b(password|passwd|secret|api_?key|auth_?token|token)\s*[:=]\s*["'` + "`" + `][^"'` + "`" + `]+["'` + "`" + `]`)
	reJSWebStorage  = regexp.MustCompile(`(?i)(localStorage|sessionStorage)\.setItem\s*\(\s*["'][^"']*(token|auth|jwt|password|secret)`)
	reJSVarDecl     = regexp.MustCompile(`^\s*var\s+\w`)
	reJSConsoleLog  = regexp.MustCompile(`\bconsole\.(log|debug)\s*\(`)
	reJSLooseEquals = regexp.MustCompile(`[^=!<>]==[^=]|[^=!]!=[^=]`)
)

func javascriptRules() []Rule {
	js := []types.Language{types.LangJavaScript, types.LangTypeScript}
	return []Rule{
		&patternRule{
			id: "js-dangerous-eval", langs: js,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Use of eval or the Function constructor",
			fix:     "Avoid evaluating strings as code; use JSON.parse or explicit dispatch",
			matcher: lineMatcher(reJSEval),
		},
		&patternRule{
			id: "js-innerhtml-xss", langs: js,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "Potential XSS: raw HTML injected into the DOM",
			fix:     "Use textContent, or sanitize the markup before inserting it",
			matcher: lineMatcher(reJSInnerHTML),
		},
		&patternRule{
			id: "js-document-write", langs: js,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "document.write with dynamic content",
			fix:     "Build DOM nodes explicitly instead of document.write",
			matcher: lineMatcher(reJSDocWrite),
		},
		&patternRule{
			id: "js-hardcoded-credential", langs: js,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Hardcoded credential in source",
			fix:     "Move secrets to environment configuration; never commit them",
			matcher: lineMatcher(reJSCredential),
		},
		&patternRule{
			id: "js-webstorage-token", langs: js,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "Sensitive authentication data stored in web storage",
			fix:     "Keep session tokens in httpOnly cookies rather than localStorage",
			matcher: lineMatcher(reJSWebStorage),
		},
		&patternRule{
			id: "js-var-declaration", langs: js,
			severity: types.SevLow, category: types.CatStyle,
			message: "var declaration; prefer const or let",
			fix:     "Replace var with const (or let when reassigned)",
			matcher: lineMatcher(reJSVarDecl),
		},
		&patternRule{
			id: "js-console-log", langs: js,
			severity: types.SevLow, category: types.CatQuality,
			message: "console.log left in source",
			fix:     "Remove debug logging or route it through a logger",
			matcher: lineMatcher(reJSConsoleLog),
		},
		&patternRule{
			id: "js-loose-equality", langs: js,
			severity: types.SevLow, category: types.CatQuality,
			message: "Loose equality comparison (== / !=)",
			fix:     "Use === / !== to avoid implicit type coercion",
			matcher: lineMatcher(reJSLooseEquals),
		},
	}
}
