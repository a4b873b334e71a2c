package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/lock"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/resolve"
	"github.com/wtkit/wt/internal/syncer"
	"github.com/wtkit/wt/internal/ui/static"
	"github.com/wtkit/wt/internal/ui/styles"
	"github.com/wtkit/wt/internal/worktree"
)

func newSyncCmd() *cobra.Command {
	var (
		all    bool
		rebase bool
		format string
	)

	cmd := &cobra.Command{
		Use:               "sync [name...]",
		Short:             "Pull upstream changes into worktrees",
		GroupID:           GroupSync,
		ValidArgsFunction: completeWorktreeNames,
		Long: `Bring worktrees up to date with their upstream branches.

Each worktree is processed in turn: local changes are stashed, the
upstream is pulled fast-forward only, the branch is optionally rebased
onto default_base, and the stash is restored. A worktree that conflicts
is left exactly as it was and reported; the others still sync.

A stash that cannot be restored is never dropped. Its label is shown so
you can find it in 'git stash list'.

Without names the current worktree is synced. The exit status is 1 when
any worktree needs attention.`,
		Example: `  wt sync                 # the worktree you are in
  wt sync auth billing
  wt sync --all --rebase  # everything, rebased onto default_base
  wt sync --all --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			f, err := output.ParseFormat(format)
			if err != nil {
				return exitcode.NewUsageError(err)
			}
			if all && len(args) > 0 {
				return exitcode.NewUsageError(fmt.Errorf("--all cannot be combined with worktree names"))
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}
			targets, err := syncTargets(ctx, env, args, all)
			if err != nil {
				return err
			}

			lk, err := lock.TryAcquire(env.commonDir)
			if err != nil {
				return err
			}
			defer func() {
				if err := lk.Release(); err != nil {
					l.Debug("releasing sync lock failed", "error", err)
				}
			}()

			done := 0
			engine := syncer.New(env.client, env.cfg.DefaultBase, syncer.WithReporter(func(r syncer.Result) {
				done++
				l.Printf("[%d/%d] %s %s\n", done, len(targets), r.Name, styles.SyncStatus(string(r.Status)))
			}))
			results := engine.Sync(ctx, targets, rebase)

			if f == output.FormatTable {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, static.SyncTableRow(r))
				}
				out.Styled(static.RenderTable(static.SyncHeaders, rows))
			} else if err := out.Encode(f, results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Failed() {
					failed++
				}
			}
			l.Printf("%d synced, %d need attention\n", len(results)-failed, failed)

			if err := ctx.Err(); err != nil {
				return fmt.Errorf("sync interrupted after %d of %d worktrees: %w", len(results), len(targets), err)
			}
			if failed > 0 {
				return exitcode.Silent
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Sync every worktree")
	cmd.Flags().BoolVarP(&rebase, "rebase", "r", false, "Rebase onto default_base after pulling")
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "Output format: table, json, yaml")
	registerFormatCompletion(cmd)

	return cmd
}

// syncTargets picks the worktrees to sync. Every name must resolve before
// anything is touched.
func syncTargets(ctx context.Context, env *repoEnv, names []string, all bool) ([]worktree.Worktree, error) {
	if all {
		return env.reg.List(ctx)
	}
	if len(names) == 0 {
		wt, ok, err := env.reg.Current(ctx, env.workDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: not inside a worktree, name one or use --all", worktree.ErrNotFound)
		}
		return []worktree.Worktree{wt}, nil
	}

	targets := make([]resolve.Target, 0, len(names))
	for _, name := range names {
		t, err := resolve.Parse(name)
		if err != nil {
			return nil, exitcode.NewUsageError(err)
		}
		targets = append(targets, t)
	}
	return env.reg.ResolveAll(ctx, targets)
}
