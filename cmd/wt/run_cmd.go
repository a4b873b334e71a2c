package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/resolve"
)

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:               "run <name> -- <command> [args...]",
		Aliases:           []string{"exec"},
		Short:             "Run a command inside a worktree",
		GroupID:           GroupUtility,
		Args:              usageArgs(cobra.MinimumNArgs(1)),
		ValidArgsFunction: completeWorktreeNames,
		Long: `Run a command with the worktree as its working directory.

Everything after "--" is the command. A single argument is handed to
"sh -c" so pipes and globs work; several arguments are executed as is.
The command's output is passed through untouched.`,
		Example: `  wt run auth -- go test ./...
  wt run ^ -- 'git log --oneline | head'
  wt run - -- make lint`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			name, command, err := splitRunArgs(args, c.ArgsLenAtDash())
			if err != nil {
				return exitcode.NewUsageError(err)
			}
			target, err := resolve.Parse(name)
			if err != nil {
				return exitcode.NewUsageError(err)
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := env.reg.Resolve(ctx, target)
			if err != nil {
				return err
			}

			if len(command) == 1 {
				command = []string{"sh", "-c", command[0]}
			}
			if err := cmd.Attached(ctx, wt.Path, c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr(), command[0], command[1:]...); err != nil {
				return fmt.Errorf("in %s: %w", wt.Name, err)
			}
			return nil
		},
	}

	return c
}

// splitRunArgs separates the worktree name from the command. dash is the
// position of "--" as reported by cobra, or -1.
func splitRunArgs(args []string, dash int) (string, []string, error) {
	switch {
	case dash == 1:
		if len(args) < 2 {
			return "", nil, fmt.Errorf("missing command after --")
		}
		return args[0], args[1:], nil
	case dash == -1 && len(args) >= 2:
		return args[0], args[1:], nil
	case dash == 0:
		return "", nil, fmt.Errorf("missing worktree name before --")
	case dash > 1:
		return "", nil, fmt.Errorf("expected one worktree name before --, got %d", dash)
	}
	return "", nil, fmt.Errorf("missing command: wt run <name> -- <command>")
}
