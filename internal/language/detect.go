// Package language maps source files to a supported language identifier.
// Detection is extension-first with a light content sniff for files that
// carry no recognized extension. An unmapped file is LangUnknown, which is
// a normal outcome rather than an error.
package language

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scanlens/scanlens/internal/types"
)

var extToLang = map[string]types.Language{
	".py":   types.LangPython,
	".js":   types.LangJavaScript,
	".jsx":  types.LangJavaScript,
	".ts":   types.LangTypeScript,
	".tsx":  types.LangTypeScript,
	".java": types.LangJava,
}

// Detect returns the language for a file path based on its extension.
func Detect(path string) types.Language {
	if lang, ok := extToLang[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return types.LangUnknown
}

var (
	rePythonShebang = regexp.MustCompile(`^#!.*\bpython[0-9.]*\b`)
	reNodeShebang   = regexp.MustCompile(`^#!.*\bnode\b`)
	reJavaPackage   = regexp.MustCompile(`(?m)^package\s+[\w.]+;`)
)

// DetectWithContent behaves like Detect but additionally sniffs the first
// bytes of extensionless files for a shebang or package declaration.
func DetectWithContent(path string, data []byte) types.Language {
	if lang := Detect(path); lang != types.LangUnknown {
		return lang
	}
	if filepath.Ext(path) != "" {
		return types.LangUnknown
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	// only the first line can carry a shebang
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		first := head[:i]
		if rePythonShebang.Match(first) {
			return types.LangPython
		}
		if reNodeShebang.Match(first) {
			return types.LangJavaScript
		}
	}
	if reJavaPackage.Match(head) {
		return types.LangJava
	}
	return types.LangUnknown
}

// Supported lists the languages the rule engine ships rules for.
func Supported() []types.Language {
	return []types.Language{types.LangPython, types.LangJavaScript, types.LangTypeScript, types.LangJava}
}
