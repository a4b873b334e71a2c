package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WorktreeInfo is one entry of `git worktree list --porcelain`.
type WorktreeInfo struct {
	Path     string
	Branch   string // empty when detached
	Head     string // full commit hash
	Detached bool
	Bare     bool
	Locked   bool
	Prunable bool
}

// ListWorktrees returns all worktrees of the repository containing repoPath,
// in the order git reports them. The first entry is the main worktree.
func ListWorktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return parseWorktreeList(string(output)), nil
}

func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current *WorktreeInfo

	flush := func() {
		if current != nil && current.Path != "" {
			worktrees = append(worktrees, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(output, "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// attribute line without a worktree header
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached":
			current.Detached = true
		case line == "bare":
			current.Bare = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			current.Locked = true
		case line == "prunable" || strings.HasPrefix(line, "prunable "):
			current.Prunable = true
		}
	}
	flush()

	return worktrees
}

// AddWorktreeNewBranch creates branch from base and checks it out at path.
func AddWorktreeNewBranch(ctx context.Context, repoPath, path, branch, base string) error {
	args := []string{"worktree", "add", "--no-track", "-b", branch, path}
	if base != "" {
		args = append(args, base)
	}
	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to create worktree with new branch %s: %w", branch, err)
	}
	return nil
}

// AddDetachedWorktree creates a worktree at path with HEAD detached at ref.
func AddDetachedWorktree(ctx context.Context, repoPath, path, ref string) error {
	args := []string{"worktree", "add", "--detach", path}
	if ref != "" {
		args = append(args, ref)
	}
	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to create detached worktree: %w", err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path.
// Force also removes worktrees with uncommitted changes.
func RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = append(args, "--force")
	}
	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	return nil
}

// PruneWorktrees removes stale worktree administrative data.
func PruneWorktrees(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "worktree", "prune"); err != nil {
		return fmt.Errorf("failed to prune worktrees: %w", err)
	}
	return nil
}

// RepairWorktrees rewrites the administrative links between the repository
// and the worktrees at paths, for worktrees that were moved by hand.
func RepairWorktrees(ctx context.Context, repoPath string, paths ...string) error {
	args := append([]string{"worktree", "repair"}, paths...)
	if err := runGit(ctx, repoPath, args...); err != nil {
		return fmt.Errorf("failed to repair worktrees: %w", err)
	}
	return nil
}

// LinkTarget returns the git directory a linked worktree's .git file points
// to. ok is false when path has no .git file.
func LinkTarget(path string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(path, ".git"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir: ")
	if !ok {
		return "", false, fmt.Errorf("%s/.git is not a gitdir link", path)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(path, target)
	}
	return target, true, nil
}
