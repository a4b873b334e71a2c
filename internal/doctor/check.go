package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/syncer"
	"github.com/wtkit/wt/internal/worktree"
)

// checkConfig validates every config record.
func (d *Doctor) checkConfig() []Issue {
	var issues []Issue
	for _, s := range d.stores {
		if err := config.Check(s); err != nil {
			issues = append(issues, Issue{
				Category:    CategoryConfig,
				Key:         s.Path(),
				Description: strings.ReplaceAll(err.Error(), "\n", "; "),
				Hint:        "fix or remove the file; until then its settings are ignored",
			})
		}
	}
	return issues
}

// checkWorktrees finds linked worktrees whose directory is gone and ones
// whose .git link no longer reaches the repository.
func (d *Doctor) checkWorktrees(ctx context.Context) ([]Issue, error) {
	infos, err := d.vcs.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for i, info := range infos {
		// The main worktree owns the repository and cannot be unlinked
		if i == 0 || info.Bare || info.Locked {
			continue
		}

		if _, err := os.Stat(info.Path); errors.Is(err, os.ErrNotExist) {
			issues = append(issues, Issue{
				Category:    CategoryGit,
				Key:         info.Path,
				Description: "directory is gone but git still tracks the worktree",
				FixAction:   FixPrune,
			})
			continue
		}

		target, ok, err := git.LinkTarget(info.Path)
		switch {
		case err != nil:
			issues = append(issues, Issue{
				Category:    CategoryGit,
				Key:         info.Path,
				Description: fmt.Sprintf("unreadable .git link: %v", err),
				Hint:        "remove the directory with 'git worktree remove --force'",
			})
		case !ok:
			issues = append(issues, Issue{
				Category:    CategoryGit,
				Key:         info.Path,
				Description: ".git link file missing",
				FixAction:   FixRepair,
			})
		default:
			if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
				issues = append(issues, Issue{
					Category:    CategoryGit,
					Key:         info.Path,
					Description: fmt.Sprintf("broken .git link to %s", target),
					FixAction:   FixRepair,
				})
			}
		}
	}
	return issues, nil
}

// checkStashes reports sync stashes that are still on the stash list.
func (d *Doctor) checkStashes(ctx context.Context) ([]Issue, error) {
	stashes, err := d.vcs.ListStashes(ctx, d.repo)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, s := range stashes {
		label := s.Label()
		if !strings.HasPrefix(label, syncer.StashPrefix+" ") {
			continue
		}
		issues = append(issues, Issue{
			Category:    CategoryState,
			Key:         s.Ref,
			Description: fmt.Sprintf("sync stash %q was never restored", label),
			Hint:        fmt.Sprintf("restore it with 'git stash pop %s' in the worktree it came from, or drop it", s.Ref),
		})
	}
	return issues, nil
}

// checkPrevious reports a previous pointer naming a worktree that is gone.
func (d *Doctor) checkPrevious(ctx context.Context) ([]Issue, error) {
	if d.history == nil || d.lister == nil {
		return nil, nil
	}
	name, ok := d.history.Get(ctx)
	if !ok {
		return nil, nil
	}
	wts, err := d.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(worktree.Names(wts), name) {
		return nil, nil
	}
	return []Issue{{
		Category:    CategoryState,
		Key:         "previous",
		Description: fmt.Sprintf("previous worktree %q no longer exists", name),
		FixAction:   FixClearPrevious,
	}}, nil
}
