package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// GetDefaultBranch returns the default branch name for the remote (e.g., "main" or "master")
func GetDefaultBranch(ctx context.Context, repoPath string) string {
	// Try to get default branch from remote HEAD
	output, err := outputGit(ctx, repoPath, "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		// Output is like "refs/remotes/origin/main"
		ref := strings.TrimSpace(string(output))
		return strings.TrimPrefix(ref, "refs/remotes/origin/")
	}

	for _, candidate := range []string{"main", "master"} {
		if runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", "origin/"+candidate) == nil {
			return candidate
		}
	}

	// Last resort default
	return "main"
}

// HeadCommit returns the full hash of HEAD in the worktree at path.
func HeadCommit(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ShortHash truncates a commit hash to 7 characters.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// StatusFiles returns the `git status --porcelain` lines for path, covering
// staged, unstaged and untracked files.
func StatusFiles(ctx context.Context, path string) ([]string, error) {
	output, err := outputGit(ctx, path, "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	var files []string
	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// IsDirty returns true if the worktree has uncommitted changes or untracked files
func IsDirty(ctx context.Context, path string) (bool, error) {
	files, err := StatusFiles(ctx, path)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// GetUpstream returns the upstream of the branch checked out at path, e.g.
// "origin/feature/alpha". Returns ok=false when none is configured.
func GetUpstream(ctx context.Context, path string) (string, bool, error) {
	output, err := outputGit(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		// 128: no upstream configured, or detached HEAD
		if exitCode(err) == 128 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get upstream: %w", err)
	}
	return strings.TrimSpace(string(output)), true, nil
}

// GetBranchUpstream returns the configured remote and merge branch of a
// local branch, whether or not the remote ref exists.
func GetBranchUpstream(ctx context.Context, repoPath, branch string) (remote, remoteBranch string, ok bool, err error) {
	remote, hasRemote, err := GetConfig(ctx, repoPath, "branch."+branch+".remote")
	if err != nil || !hasRemote {
		return "", "", false, err
	}
	merge, hasMerge, err := GetConfig(ctx, repoPath, "branch."+branch+".merge")
	if err != nil || !hasMerge {
		return "", "", false, err
	}
	return remote, strings.TrimPrefix(merge, "refs/heads/"), true, nil
}

// AheadBehind counts commits HEAD has that upstream lacks (ahead) and the
// reverse (behind).
func AheadBehind(ctx context.Context, path, upstream string) (ahead, behind int, err error) {
	output, err := outputGit(ctx, path, "rev-list", "--left-right", "--count", upstream+"...HEAD")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compare with %s: %w", upstream, err)
	}
	fields := strings.Fields(string(output))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", strings.TrimSpace(string(output)))
	}
	if behind, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, err
	}
	if ahead, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// UnpushedCount returns how many commits on branch would be lost if it were
// deleted: commits reachable from no remote-tracking ref and no other local
// branch.
func UnpushedCount(ctx context.Context, repoPath, branch string) (int, error) {
	output, err := outputGit(ctx, repoPath, "rev-list", "--count", "refs/heads/"+branch,
		"--not", "--remotes", "--exclude="+branch, "--branches")
	if err != nil {
		return 0, fmt.Errorf("failed to count unpushed commits on %s: %w", branch, err)
	}
	return strconv.Atoi(strings.TrimSpace(string(output)))
}

// GetMergedBranches returns the set of local branches merged into ref.
func GetMergedBranches(ctx context.Context, repoPath, ref string) (map[string]bool, error) {
	output, err := outputGit(ctx, repoPath, "branch", "--format=%(refname:short)", "--merged", ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches merged into %s: %w", ref, err)
	}

	merged := make(map[string]bool)
	for _, line := range strings.Split(string(output), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			merged[name] = true
		}
	}
	return merged, nil
}

// DeleteLocalBranch deletes a local branch
func DeleteLocalBranch(ctx context.Context, repoPath, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if err := runGit(ctx, repoPath, "branch", flag, branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}
