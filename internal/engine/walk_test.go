package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scanlens/scanlens/internal/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func candidatePaths(cs []candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.rel
	}
	return out
}

func TestWalkPrunesDefaultExcludeDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.py", "x = 1\n")
	writeFile(t, root, "node_modules/pkg/index.js", "var x = 1\n")
	writeFile(t, root, ".git/hooks/pre-commit.py", "x = 1\n")
	writeFile(t, root, "__pycache__/a.py", "x = 1\n")

	cs, _, err := walk(context.Background(), Config{Root: root, DefaultExcludes: true})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join("src", "a.py")}, candidatePaths(cs))
}

func TestWalkExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.js", "var x = 1\n")
	writeFile(t, root, "app.test.js", "var x = 1\n")
	writeFile(t, root, "generated/schema.py", "x = 1\n")

	cs, _, err := walk(context.Background(), Config{
		Root:            root,
		ExcludePatterns: []string{"*.test.js", "generated/**"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"app.js"}, candidatePaths(cs))
}

func TestWalkExtensionHandling(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "hello\n")
	writeFile(t, root, "main.java", "class Main {}\n")
	writeFile(t, root, "runme", "#!/usr/bin/env python\n")

	cs, _, err := walk(context.Background(), Config{Root: root})
	require.NoError(t, err)
	require.Equal(t, []string{"main.java", "runme"}, candidatePaths(cs))

	// extensionless files go through with unknown language for content sniffing
	for _, c := range cs {
		if c.rel == "runme" {
			require.Equal(t, types.LangUnknown, c.lang)
		}
	}
}

func TestWalkExtensionOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "stubs.pyi", "def f() -> int: ...\n")
	writeFile(t, root, "notes.txt", "hello\n")

	cs, _, err := walk(context.Background(), Config{
		Root:      root,
		ExtraExts: map[string]types.Language{".pyi": types.LangPython},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"stubs.pyi"}, candidatePaths(cs))
	require.Equal(t, types.LangPython, cs[0].lang)
}

func TestWalkDisabledLanguage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "x = 1\n")
	writeFile(t, root, "b.js", "var x = 1\n")

	cs, _, err := walk(context.Background(), Config{
		Root:      root,
		Languages: map[types.Language]bool{types.LangJavaScript: true},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"b.js"}, candidatePaths(cs))
}

func TestWalkMaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.py", "x = 1\n")
	writeFile(t, root, "big.py", "# "+string(make([]byte, 4096))+"\n")

	cs, stats, err := walk(context.Background(), Config{Root: root, MaxFileSize: 100})
	require.NoError(t, err)
	require.Equal(t, []string{"small.py"}, candidatePaths(cs))
	require.Equal(t, 1, stats.skippedTooLarge)
}

func TestMatchesAnyPattern(t *testing.T) {
	cases := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"src/a.py", []string{"src/**"}, true},
		{"src/a.py", []string{"*.py"}, true}, // basename match
		{"src/a.py", []string{"*.js"}, false},
		{"deep/ly/nested/file.ts", []string{"**/*.ts"}, true},
		{"a.py", nil, false},
		{"a.py", []string{""}, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, matchesAnyPattern(c.rel, c.patterns), "rel=%s patterns=%v", c.rel, c.patterns)
	}
}

func TestLooksBinary(t *testing.T) {
	require.True(t, looksBinary([]byte{0x7f, 'E', 'L', 'F', 0x00, 0x01}))
	require.False(t, looksBinary([]byte("plain text\nwith lines\n")))
	require.False(t, looksBinary(nil))
}
