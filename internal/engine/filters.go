package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Directories never descended into when default excludes are enabled.
// Pruning happens before recursion so huge dependency trees cost nothing.
var defaultExcludeDirs = map[string]bool{
	".git":             true,
	".svn":             true,
	".hg":              true,
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"target":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	".venv":            true,
	"venv":             true,
	"env":              true,
	"__pycache__":      true,
	".pytest_cache":    true,
	".gradle":          true,
	".idea":            true,
	".vscode":          true,
	"coverage":         true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

// matchesAnyPattern reports whether a relative path (or its basename) hits
// one of the configured ignore globs. Matching uses forward-slash semantics.
func matchesAnyPattern(relPath string, patterns []string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	for _, g := range patterns {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rp)); ok {
			return true
		}
	}
	return false
}

// looksBinary sniffs a prefix of the content for NUL bytes.
func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
