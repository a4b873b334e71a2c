package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/resolve"
)

func newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:               "diff <name> [base] [-- git-diff-args...]",
		Short:             "Show what a worktree committed since it left its base",
		GroupID:           GroupUtility,
		Args:              usageArgs(cobra.MinimumNArgs(1)),
		ValidArgsFunction: completeWorktreeNames,
		Long: `Show the committed changes of a worktree relative to a base.

Runs 'git diff <base>...HEAD' inside the worktree. The base is
default_base unless given; it may also name another worktree, in which
case that worktree's branch is used. Arguments after "--" go to git diff.`,
		Example: `  wt diff auth
  wt diff auth billing        # against the billing worktree
  wt diff auth -- --stat`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			positional, extra := args, []string(nil)
			if dash := c.ArgsLenAtDash(); dash >= 0 {
				positional, extra = args[:dash], args[dash:]
			}
			if len(positional) == 0 || len(positional) > 2 {
				return exitcode.NewUsageError(fmt.Errorf("expected <name> [base], got %d argument(s)", len(positional)))
			}

			target, err := resolve.Parse(positional[0])
			if err != nil {
				return exitcode.NewUsageError(err)
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}
			wts, err := env.reg.List(ctx)
			if err != nil {
				return err
			}
			wt, err := env.reg.Resolve(ctx, target)
			if err != nil {
				return err
			}

			base := env.cfg.DefaultBase
			if len(positional) == 2 {
				base = positional[1]
				if other, ok := registry.Find(wts, base); ok {
					base = other.Branch
					if other.IsDetached {
						base = other.Head
					}
				}
			}

			gitArgs := append([]string{"diff", base + "...HEAD"}, extra...)
			if err := cmd.Attached(ctx, wt.Path, nil, c.OutOrStdout(), c.ErrOrStderr(), "git", gitArgs...); err != nil {
				var cmdErr *cmd.Error
				if errors.As(err, &cmdErr) {
					return &git.Error{Args: gitArgs, ExitCode: cmdErr.ExitCode, Err: err}
				}
				return err
			}
			return nil
		},
	}

	return c
}
