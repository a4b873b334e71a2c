package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/resolve"
	"github.com/wtkit/wt/internal/worktree"
)

// maxListedFiles caps how many changed files an error message shows.
const maxListedFiles = 5

// DeleteOptions configures Delete.
type DeleteOptions struct {
	// Force removes dirty worktrees and deletes unmerged branches without
	// asking.
	Force bool
	// KeepBranch leaves the branch in place after removing the worktree.
	KeepBranch bool
	// Cwd is the caller's working directory; the worktree containing it
	// cannot be deleted.
	Cwd string
}

// Delete removes the worktree t resolves to, then its branch unless
// KeepBranch is set, then prunes stale worktree metadata.
func (r *Registry) Delete(ctx context.Context, t resolve.Target, opts DeleteOptions) (worktree.Worktree, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return worktree.Worktree{}, err
	}
	wt, err := r.resolveIn(ctx, wts, t)
	if err != nil {
		return worktree.Worktree{}, err
	}

	if wt.IsMain {
		return worktree.Worktree{}, fmt.Errorf("cannot delete %q: it is the main worktree", wt.Name)
	}
	if current, ok := containing(wts, opts.Cwd); ok && current.Path == wt.Path {
		return worktree.Worktree{}, fmt.Errorf("cannot delete %q: it is the current worktree; switch to a different worktree first: wt switch ^", wt.Name)
	}

	forceBranch := opts.Force
	if !opts.Force {
		files, err := r.vcs.StatusFiles(ctx, wt.Path)
		if err != nil {
			return worktree.Worktree{}, err
		}
		if len(files) > 0 {
			return worktree.Worktree{}, fmt.Errorf("worktree %q has uncommitted changes:\n%s\ncommit or stash them, or delete with --force",
				wt.Name, formatFiles(files))
		}

		if wt.Branch != "" && !opts.KeepBranch {
			n, err := r.vcs.UnpushedCount(ctx, wt.Branch)
			if err != nil {
				return worktree.Worktree{}, err
			}
			if n > 0 {
				prompt := fmt.Sprintf("Branch %s has %d commit(s) that exist nowhere else. Delete it anyway?", wt.Branch, n)
				if err := r.confirmOrDecline(ctx, prompt); err != nil {
					return worktree.Worktree{}, err
				}
				forceBranch = true
			}
		}
	}

	l := log.FromContext(ctx)
	l.Debug("removing worktree", "name", wt.Name, "path", wt.Path, "force", opts.Force)
	if err := r.vcs.RemoveWorktree(ctx, wt.Path, opts.Force); err != nil {
		return worktree.Worktree{}, err
	}

	if wt.Branch != "" && !opts.KeepBranch {
		if err := r.vcs.DeleteBranch(ctx, wt.Branch, forceBranch); err != nil {
			l.Warnf("worktree removed but branch %s was kept: %v (delete it with 'git branch -D %s')", wt.Branch, err, wt.Branch)
		}
	}

	if err := r.vcs.PruneWorktrees(ctx); err != nil {
		l.Warnf("prune failed: %v", err)
	}
	return wt, nil
}

// confirmOrDecline returns ErrDeclined unless the user agrees.
func (r *Registry) confirmOrDecline(ctx context.Context, prompt string) error {
	if r.confirm == nil {
		return worktree.ErrDeclined
	}
	ok, err := r.confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return worktree.ErrDeclined
	}
	return nil
}

// formatFiles renders porcelain status lines, indented, truncated to
// maxListedFiles.
func formatFiles(files []string) string {
	var b strings.Builder
	for i, f := range files {
		if i == maxListedFiles {
			fmt.Fprintf(&b, "  ... and %d more\n", len(files)-maxListedFiles)
			break
		}
		fmt.Fprintf(&b, "  %s\n", f)
	}
	return strings.TrimRight(b.String(), "\n")
}
