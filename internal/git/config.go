package git

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeNameKey is the per-worktree config key holding a detached
// worktree's persisted name.
const WorktreeNameKey = "wt.name"

// GetConfig reads a config value visible from dir.
// Returns ok=false when the key is unset.
func GetConfig(ctx context.Context, dir, key string) (string, bool, error) {
	output, err := outputGit(ctx, dir, "config", "--get", key)
	if err != nil {
		// git config exits 1 for missing keys
		if exitCode(err) == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return strings.TrimSpace(string(output)), true, nil
}

// WorktreeConfigEnabled reports whether extensions.worktreeConfig is on.
func WorktreeConfigEnabled(ctx context.Context, repoPath string) (bool, error) {
	output, err := outputGit(ctx, repoPath, "config", "--bool", "--get", "extensions.worktreeConfig")
	if err != nil {
		if exitCode(err) == 1 {
			return false, nil
		}
		return false, fmt.Errorf("failed to read extensions.worktreeConfig: %w", err)
	}
	return strings.TrimSpace(string(output)) == "true", nil
}

// EnableWorktreeConfig turns on per-worktree configuration for the
// repository. It is a no-op when the extension is already enabled.
func EnableWorktreeConfig(ctx context.Context, repoPath string) error {
	enabled, err := WorktreeConfigEnabled(ctx, repoPath)
	if err != nil {
		return err
	}
	if enabled {
		return nil
	}
	if err := runGit(ctx, repoPath, "config", "extensions.worktreeConfig", "true"); err != nil {
		return fmt.Errorf("failed to enable extensions.worktreeConfig: %w", err)
	}
	return nil
}

// GetWorktreeConfig reads key from the per-worktree config of the worktree at
// wtPath. Returns ok=false when the key is unset or the extension is off.
func GetWorktreeConfig(ctx context.Context, wtPath, key string) (string, bool, error) {
	enabled, err := WorktreeConfigEnabled(ctx, wtPath)
	if err != nil || !enabled {
		return "", false, err
	}
	output, err := outputGit(ctx, wtPath, "config", "--worktree", "--get", key)
	if err != nil {
		if exitCode(err) == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s for %s: %w", key, wtPath, err)
	}
	return strings.TrimSpace(string(output)), true, nil
}

// SetWorktreeConfig writes key into the per-worktree config of the worktree
// at wtPath. The extension must already be enabled.
func SetWorktreeConfig(ctx context.Context, wtPath, key, value string) error {
	if err := runGit(ctx, wtPath, "config", "--worktree", key, value); err != nil {
		return fmt.Errorf("failed to set %s for %s: %w", key, wtPath, err)
	}
	return nil
}

// SetBranchPushTarget configures where branch pulls from and pushes to, even
// if the remote branch does not exist yet.
func SetBranchPushTarget(ctx context.Context, repoPath, branch, remote, remoteBranch string) error {
	if remoteBranch == "" {
		remoteBranch = branch
	}
	if err := runGit(ctx, repoPath, "config", "branch."+branch+".remote", remote); err != nil {
		return fmt.Errorf("failed to set remote for %s: %w", branch, err)
	}
	if err := runGit(ctx, repoPath, "config", "branch."+branch+".merge", "refs/heads/"+remoteBranch); err != nil {
		return fmt.Errorf("failed to set merge ref for %s: %w", branch, err)
	}
	return nil
}
