package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Candidate is a worktree Clean would remove, with the reason.
type Candidate struct {
	Worktree worktree.Worktree `json:"worktree" yaml:"worktree"`
	Reason   string            `json:"reason" yaml:"reason"`
}

// CleanOptions configures Clean.
type CleanOptions struct {
	DryRun bool
	// Force skips the confirmation.
	Force bool
	// Cwd is the caller's working directory; its worktree is never removed.
	Cwd string
}

// Candidates lists worktrees whose branch is merged into the remote default
// branch, or whose upstream branch was deleted and that hold no commits
// found nowhere else. The main worktree, detached worktrees, the default
// branch, branches outside the prefix, dirty worktrees and the current one
// are never candidates.
func (r *Registry) Candidates(ctx context.Context, cwd string) ([]Candidate, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	defaultBranch := r.vcs.DefaultBranch(ctx)
	target := "origin/" + defaultBranch
	if ok, err := r.vcs.RemoteBranchExists(ctx, "origin", defaultBranch); err != nil || !ok {
		target = defaultBranch
	}
	merged, err := r.vcs.MergedBranches(ctx, target)
	if err != nil {
		l.Debug("merged branch lookup failed", "target", target, "error", err)
		merged = map[string]bool{}
	}

	current, hasCurrent := containing(wts, cwd)

	var out []Candidate
	for _, wt := range wts {
		switch {
		case wt.IsMain, wt.IsDetached, wt.Branch == defaultBranch:
			continue
		case wt.Name == wt.Branch && r.cfg.Prefix != "":
			continue
		case hasCurrent && current.Path == wt.Path:
			continue
		}

		reason, err := r.cleanReason(ctx, wt, merged, target)
		if err != nil {
			l.Warnf("skipping %s: %v", wt.Name, err)
			continue
		}
		if reason == "" {
			continue
		}

		files, err := r.vcs.StatusFiles(ctx, wt.Path)
		if err != nil || len(files) > 0 {
			l.Printf("Skipping %s (%s): has uncommitted changes\n", wt.Name, reason)
			continue
		}
		out = append(out, Candidate{Worktree: wt, Reason: reason})
	}
	return out, nil
}

func (r *Registry) cleanReason(ctx context.Context, wt worktree.Worktree, merged map[string]bool, target string) (string, error) {
	if merged[wt.Branch] {
		return "merged into " + target, nil
	}

	remote, remoteBranch, ok, err := r.vcs.BranchUpstream(ctx, wt.Branch)
	if err != nil || !ok {
		return "", err
	}
	exists, err := r.vcs.RemoteBranchExists(ctx, remote, remoteBranch)
	if err != nil || exists {
		return "", err
	}
	n, err := r.vcs.UnpushedCount(ctx, wt.Branch)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", nil
	}
	return fmt.Sprintf("remote branch %s/%s deleted", remote, remoteBranch), nil
}

// Clean removes the candidates after one confirmation for the whole batch.
// A worktree that fails to be removed is reported and skipped. Returns the
// worktrees that were (or, with DryRun, would be) removed.
func (r *Registry) Clean(ctx context.Context, opts CleanOptions) ([]Candidate, error) {
	candidates, err := r.Candidates(ctx, opts.Cwd)
	if err != nil || len(candidates) == 0 || opts.DryRun {
		return candidates, err
	}

	if !opts.Force {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Worktree.Name
		}
		prompt := fmt.Sprintf("Remove %d worktree(s): %s?", len(candidates), strings.Join(names, ", "))
		if err := r.confirmOrDecline(ctx, prompt); err != nil {
			return nil, err
		}
	}

	l := log.FromContext(ctx)
	var removed []Candidate
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := r.vcs.RemoveWorktree(ctx, c.Worktree.Path, false); err != nil {
			l.Warnf("failed to remove %s: %v", c.Worktree.Name, err)
			continue
		}
		if err := r.vcs.DeleteBranch(ctx, c.Worktree.Branch, true); err != nil {
			l.Warnf("removed %s but kept branch %s: %v", c.Worktree.Name, c.Worktree.Branch, err)
		}
		removed = append(removed, c)
	}

	if err := r.vcs.PruneWorktrees(ctx); err != nil {
		l.Warnf("prune failed: %v", err)
	}
	return removed, nil
}
