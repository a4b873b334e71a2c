package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrDiverged is returned by Pull when the local branch cannot be
	// fast-forwarded to its upstream.
	ErrDiverged = errors.New("local branch has diverged from upstream")

	// ErrNoRemoteRef is returned by Pull when the upstream branch does not
	// exist on the remote.
	ErrNoRemoteRef = errors.New("upstream branch does not exist on the remote")
)

// Pull fast-forwards the branch at path to its configured upstream.
func Pull(ctx context.Context, path string) error {
	err := runGit(ctx, path, "pull", "--ff-only", "--no-rebase")
	if err == nil {
		return nil
	}

	var gitErr *Error
	if errors.As(err, &gitErr) {
		msg := strings.ToLower(gitErr.Stderr)
		switch {
		case strings.Contains(msg, "not possible to fast-forward"),
			strings.Contains(msg, "diverging branches"),
			strings.Contains(msg, "have diverged"):
			return fmt.Errorf("%w: %w", ErrDiverged, err)
		case strings.Contains(msg, "couldn't find remote ref"),
			strings.Contains(msg, "no such ref was fetched"):
			return fmt.Errorf("%w: %w", ErrNoRemoteRef, err)
		}
	}
	return fmt.Errorf("failed to pull: %w", err)
}

// Fetch updates refspec from remote without touching the worktree.
func Fetch(ctx context.Context, path, remote, refspec string) error {
	args := []string{"fetch", "--quiet", remote}
	if refspec != "" {
		args = append(args, refspec)
	}
	if err := runGit(ctx, path, args...); err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", remote, refspec, err)
	}
	return nil
}

// Rebase replays the current branch onto ref.
func Rebase(ctx context.Context, path, onto string) error {
	if err := runGit(ctx, path, "rebase", onto); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", onto, err)
	}
	return nil
}

// AbortRebase restores the worktree to its state before the rebase began.
func AbortRebase(ctx context.Context, path string) error {
	if err := runGit(ctx, path, "rebase", "--abort"); err != nil {
		return fmt.Errorf("failed to abort rebase: %w", err)
	}
	return nil
}

// RebaseInProgress reports whether a rebase is stopped in the worktree at path.
func RebaseInProgress(ctx context.Context, path string) bool {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		output, err := outputGit(ctx, path, "rev-parse", "--path-format=absolute", "--git-path", dir)
		if err != nil {
			continue
		}
		if _, err := os.Stat(strings.TrimSpace(string(output))); err == nil {
			return true
		}
	}
	return false
}
