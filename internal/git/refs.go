package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Ref lookups read the object database directly through go-git and fall back
// to the git CLI whenever go-git cannot open the repository (for example
// because of repository extensions it does not understand).

func openRepo(path string) (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// BranchExists checks if a local branch exists.
func BranchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	return refExists(ctx, repoPath, plumbing.NewBranchReferenceName(branch))
}

// RemoteBranchExists checks if remote/branch exists as a remote-tracking ref.
func RemoteBranchExists(ctx context.Context, repoPath, remote, branch string) (bool, error) {
	return refExists(ctx, repoPath, plumbing.NewRemoteReferenceName(remote, branch))
}

func refExists(ctx context.Context, repoPath string, name plumbing.ReferenceName) (bool, error) {
	repo, err := openRepo(repoPath)
	if err == nil {
		_, err = repo.Reference(name, false)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
	}

	err = runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", name.String())
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up %s: %w", name.Short(), err)
}
