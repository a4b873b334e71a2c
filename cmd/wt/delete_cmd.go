package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/resolve"
	"github.com/wtkit/wt/internal/ui/prompt"
	"github.com/wtkit/wt/internal/worktree"
)

func newDeleteCmd() *cobra.Command {
	var (
		force      bool
		keepBranch bool
	)

	cmd := &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Remove a worktree and its branch",
		GroupID:           GroupCore,
		Args:              usageArgs(cobra.ExactArgs(1)),
		ValidArgsFunction: completeWorktreeNames,
		Long: `Remove a worktree, then delete its branch.

The main worktree and the worktree you are in cannot be deleted. A
worktree with uncommitted changes is refused unless --force is given. A
branch with commits that exist nowhere else asks for confirmation first.`,
		Example: `  wt delete auth
  wt delete auth --keep-branch   # keep feature/auth around
  wt delete spike --force        # discard local changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			target, err := resolve.Parse(args[0])
			if err != nil {
				return exitcode.NewUsageError(err)
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := env.reg.Delete(ctx, target, registry.DeleteOptions{
				Force:      force,
				KeepBranch: keepBranch,
				Cwd:        env.workDir,
			})
			if errors.Is(err, worktree.ErrDeclined) && !prompt.Interactive() {
				return fmt.Errorf("%w: confirmation required but no terminal is attached, rerun with --force", err)
			}
			if err != nil {
				return err
			}

			l.Printf("Deleted worktree '%s' (%s)\n", wt.Name, wt.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with local changes or unpushed commits")
	cmd.Flags().BoolVar(&keepBranch, "keep-branch", false, "Keep the branch")

	return cmd
}
