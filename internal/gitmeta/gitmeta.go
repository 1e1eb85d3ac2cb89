// Package gitmeta reads lightweight version-control metadata for a scan
// root. Results are advisory; a root outside any repository simply has
// no metadata.
package gitmeta

import (
	git "github.com/go-git/go-git/v5"

	"github.com/scanlens/scanlens/internal/types"
)

// Describe returns branch and commit information for root, or nil when
// root is not inside a git repository or the repository has no commits.
func Describe(root string) *types.RepoInfo {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		return nil
	}
	info := &types.RepoInfo{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info
}
