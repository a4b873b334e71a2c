package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/ui/prompt"
	"github.com/wtkit/wt/internal/ui/static"
	"github.com/wtkit/wt/internal/worktree"
)

func newCleanCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Aliases: []string{"prune"},
		Short:   "Remove worktrees whose branches are merged or gone",
		GroupID: GroupUtility,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Remove worktrees that are no longer needed.

A worktree qualifies when its branch is merged into the remote default
branch, or when its upstream branch was deleted and it holds no commits
found nowhere else. Worktrees with local changes, detached worktrees, the
main worktree and the one you are in are always kept.

The candidates are listed and confirmed before anything is removed.`,
		Example: `  wt clean --dry-run   # show what would go
  wt clean
  wt clean --force     # no confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}

			candidates, err := env.reg.Clean(ctx, registry.CleanOptions{
				DryRun: dryRun,
				Force:  force,
				Cwd:    env.workDir,
			})
			if errors.Is(err, worktree.ErrDeclined) && !prompt.Interactive() {
				return fmt.Errorf("%w: confirmation required but no terminal is attached, rerun with --force", err)
			}
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				l.Println("Nothing to clean")
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				rows = append(rows, []string{c.Worktree.Name, c.Worktree.Branch, c.Reason})
			}
			out.Styled(static.RenderTable([]string{"NAME", "BRANCH", "REASON"}, rows))

			if dryRun {
				l.Printf("%d worktree(s) would be removed, run without --dry-run to remove them\n", len(candidates))
			} else {
				l.Printf("Removed %d worktree(s)\n", len(candidates))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only list what would be removed")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")

	return cmd
}
