package rules

import (
	"regexp"
	"strings"

	"github.com/scanlens/scanlens/internal/types"
)

var (
	rePyEval       = regexp.MustCompile(`\b(eval|exec)\s*\(`)
	rePyCredential = regexp.MustCompile(`(?i)\b(password|passwd|secret|api_key|apikey|auth_token|token)\s*=\s*["'][^"']+["']`)
	rePyPickle     = regexp.MustCompile(`\bpickle\.loads?\s*\(|\byaml\.load\s*\(`)
	rePyWeakHash   = regexp.MustCompile(`\bhashlib\.(md5|sha1)\s*\(`)
	rePyShell      = regexp.MustCompile(`\bos\.system\s*\(|\bos\.popen\s*\(|shell\s*=\s*True`)
	rePyBareExcept = regexp.MustCompile(`^\s*except\s*:`)
	rePyMutableDef = regexp.MustCompile(`\bdef\s+\w+\s*\([^)]*=\s*(\[\]|\{\})`)
)

func pythonRules() []Rule {
	py := []types.Language{types.LangPython}
	return []Rule{
		&patternRule{
			id: "py-dangerous-eval", langs: py,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Use of eval/exec on potentially untrusted input",
			fix:     "Avoid eval/exec; parse the input explicitly (ast.literal_eval for literals)",
			matcher: lineMatcher(rePyEval),
		},
		&patternRule{
			id: "py-hardcoded-credential", langs: py,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Hardcoded credential assigned to a variable",
			fix:     "Load secrets from environment variables or a secrets manager",
			matcher: lineMatcher(rePyCredential),
		},
		&patternRule{
			id: "py-unsafe-deserialization", langs: py,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "Unsafe deserialization of untrusted data",
			fix:     "Avoid pickle for untrusted input; use yaml.safe_load instead of yaml.load",
			matcher: unsafeYAMLLoadMatcher,
		},
		&patternRule{
			id: "py-weak-hash", langs: py,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "Weak hash algorithm (MD5/SHA1) in use",
			fix:     "Use hashlib.sha256 or a dedicated password hash (bcrypt, argon2)",
			matcher: lineMatcher(rePyWeakHash),
		},
		&patternRule{
			id: "py-shell-injection", langs: py,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Shell command built from program data",
			fix:     "Use subprocess with shell=False and an argument list",
			matcher: lineMatcher(rePyShell),
		},
		&patternRule{
			id: "py-bare-except", langs: py,
			severity: types.SevMedium, category: types.CatQuality,
			message: "Bare except clause swallows all errors",
			fix:     "Catch the specific exception types you can handle",
			matcher: lineMatcher(rePyBareExcept),
		},
		&patternRule{
			id: "py-mutable-default-arg", langs: py,
			severity: types.SevMedium, category: types.CatQuality,
			message: "Mutable default argument is shared across calls",
			fix:     "Default to None and create the list/dict inside the function",
			matcher: lineMatcher(rePyMutableDef),
		},
	}
}

// unsafeYAMLLoadMatcher flags pickle loads unconditionally and yaml.load
// only when no explicit Loader is passed.
func unsafeYAMLLoadMatcher(content []byte) ([]Match, error) {
	return eachLine(content, func(line int, text string) *Match {
		loc := rePyPickle.FindStringIndex(text)
		if loc == nil {
			return nil
		}
		if strings.Contains(text, "yaml.load") && strings.Contains(text, "Loader") {
			return nil
		}
		return &Match{Line: line, Column: loc[0] + 1}
	})
}
