package git

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// ErrNotARepo indicates the working directory is outside any git repository.
var ErrNotARepo = errors.New("not inside a git repository: cd into one first")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git repository
func IsInsideRepoPath(ctx context.Context, path string) bool {
	err := runGit(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// TopLevel returns the root of the worktree containing path.
func TopLevel(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		if exitCode(err) == 128 {
			return "", ErrNotARepo
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CommonDir returns the absolute git directory shared by all worktrees of
// the repository containing path (the main repo's .git).
func CommonDir(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		if exitCode(err) == 128 {
			return "", ErrNotARepo
		}
		return "", err
	}
	return filepath.Clean(strings.TrimSpace(string(out))), nil
}
