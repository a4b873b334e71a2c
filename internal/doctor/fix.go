package doctor

import (
	"context"
	"errors"

	"github.com/wtkit/wt/internal/log"
)

// Fix applies the fix action of every fixable issue and returns how many
// were resolved. Repairs run before pruning so a repaired worktree is not
// pruned.
func (d *Doctor) Fix(ctx context.Context, issues []Issue) (int, error) {
	l := log.FromContext(ctx)

	var repair, prune []string
	clearPrevious := false
	for _, issue := range issues {
		switch issue.FixAction {
		case FixRepair:
			repair = append(repair, issue.Key)
		case FixPrune:
			prune = append(prune, issue.Key)
		case FixClearPrevious:
			clearPrevious = true
		}
	}

	fixed := 0
	var errs []error

	if len(repair) > 0 {
		if err := d.vcs.RepairWorktrees(ctx, repair...); err != nil {
			errs = append(errs, err)
		} else {
			for _, path := range repair {
				l.Printf("Repaired git link for %s\n", path)
			}
			fixed += len(repair)
		}
	}

	if len(prune) > 0 {
		if err := d.vcs.PruneWorktrees(ctx); err != nil {
			errs = append(errs, err)
		} else {
			for _, path := range prune {
				l.Printf("Pruned stale worktree metadata for %s\n", path)
			}
			fixed += len(prune)
		}
	}

	if clearPrevious && d.history != nil {
		if err := d.history.Clear(ctx); err != nil {
			errs = append(errs, err)
		} else {
			l.Println("Cleared the previous worktree pointer")
			fixed++
		}
	}

	return fixed, errors.Join(errs...)
}
