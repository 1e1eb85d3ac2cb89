package rules

import (
	"regexp"

	"github.com/scanlens/scanlens/internal/types"
)

var (
	reJavaSQLConcat  = regexp.MustCompile(`\.execute(Query|Update)?\s*\(\s*"[^"]*"\s*\+`)
	reJavaExec       = regexp.MustCompile(`Runtime\.getRuntime\s*\(\s*\)\s*\.exec\s*\(`)
	reJavaCredential = regexp.MustCompile(`(?i)\b(password|passwd|secret|apikey|api_key|token)\s*=\s*"[^"]+"`)
	reJavaWeakCrypto = regexp.MustCompile(`MessageDigest\.getInstance\s*\(\s*"(MD5|SHA-?1)"|Cipher\.getInstance\s*\(\s*"DES`)
	reJavaSystemOut  = regexp.MustCompile(`System\.(out|err)\.print`)
	reJavaStackTrace = regexp.MustCompile(`\.printStackTrace\s*\(\s*\)`)
	reJavaEmptyCatch = regexp.MustCompile(`catch\s*\([^)]*\)\s*\{\s*\}`)
)

func javaRules() []Rule {
	java := []types.Language{types.LangJava}
	return []Rule{
		&patternRule{
			id: "java-sql-concat", langs: java,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Potential SQL injection: query built by string concatenation",
			fix:     "Use a PreparedStatement with bound parameters",
			matcher: lineMatcher(reJavaSQLConcat),
		},
		&patternRule{
			id: "java-command-injection", langs: java,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Potential command injection via Runtime.exec",
			fix:     "Use ProcessBuilder with a fixed argument list and validate inputs",
			matcher: lineMatcher(reJavaExec),
		},
		&patternRule{
			id: "java-hardcoded-credential", langs: java,
			severity: types.SevCritical, category: types.CatSecurity,
			message: "Hardcoded credential in field or variable",
			fix:     "Read secrets from the environment or a vault at runtime",
			matcher: lineMatcher(reJavaCredential),
		},
		&patternRule{
			id: "java-weak-crypto", langs: java,
			severity: types.SevHigh, category: types.CatSecurity,
			message: "Weak cryptographic algorithm (MD5/SHA1/DES)",
			fix:     "Use SHA-256 or stronger, and AES/GCM for encryption",
			matcher: lineMatcher(reJavaWeakCrypto),
		},
		&patternRule{
			id: "java-system-out", langs: java,
			severity: types.SevLow, category: types.CatQuality,
			message: "System.out/System.err used for output",
			fix:     "Use a logging framework (SLF4J) instead of console prints",
			matcher: lineMatcher(reJavaSystemOut),
		},
		&patternRule{
			id: "java-print-stacktrace", langs: java,
			severity: types.SevLow, category: types.CatQuality,
			message: "printStackTrace instead of proper error handling",
			fix:     "Log the exception with context or rethrow it",
			matcher: lineMatcher(reJavaStackTrace),
		},
		&patternRule{
			id: "java-empty-catch", langs: java,
			severity: types.SevMedium, category: types.CatQuality,
			message: "Empty catch block silently discards the exception",
			fix:     "Handle the exception or at least log why it is safe to ignore",
			matcher: lineMatcher(reJavaEmptyCatch),
		},
	}
}
