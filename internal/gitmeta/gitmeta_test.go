package gitmeta

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestDescribeOutsideRepo(t *testing.T) {
	require.Nil(t, Describe(t.TempDir()))
}

func TestDescribeEmptyRepo(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	require.Nil(t, Describe(root)) // no commits, no HEAD
}

func TestDescribeWithCommit(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("x = 1\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.py")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com"},
	})
	require.NoError(t, err)

	info := Describe(root)
	require.NotNil(t, info)
	require.Equal(t, hash.String(), info.Commit)
	require.NotEmpty(t, info.Branch)

	// subdirectories resolve to the enclosing repository
	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NotNil(t, Describe(sub))
}
