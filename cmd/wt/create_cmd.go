package main

import (
	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/registry"
)

func newCreateCmd() *cobra.Command {
	var (
		base            string
		detached        bool
		copyToClipboard bool
		setup           setupOptions
	)

	cmd := &cobra.Command{
		Use:     "create <name>",
		Aliases: []string{"new"},
		Short:   "Create a worktree and switch to it",
		GroupID: GroupCore,
		Args:    usageArgs(cobra.ExactArgs(1)),
		Long: `Create a worktree and print its path.

A branch named <prefix>/<name> is created off the base, default_base
unless --base is given. With --detached no branch is created and the
worktree keeps its name in per-worktree git config.

The path comes from the path_pattern setting. Git-ignored files matching
the preserve setting are copied over from the main worktree, then the
post_create hook runs inside the new worktree (see 'wt config').`,
		Example: `  wt create auth                 # feature/auth off default_base
  wt create hotfix -b origin/release
  wt create review -d -b pr-head # detached snapshot
  wt create api --arg port=8081  # {port} in post_create
  wt create quick --no-hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := createAndSwitch(ctx, env, registry.CreateOptions{
				Name:     args[0],
				Base:     base,
				Detached: detached,
			}, setup)
			if err != nil {
				return err
			}
			if wt.IsDetached {
				l.Printf("Created detached worktree '%s' at %s\n", wt.Name, wt.Path)
			} else {
				l.Printf("Created worktree '%s' on branch %s at %s\n", wt.Name, wt.Branch, wt.Path)
			}
			return emitPath(ctx, wt, copyToClipboard)
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Start point (default: default_base)")
	cmd.Flags().BoolVarP(&detached, "detached", "d", false, "Create a detached worktree without a branch")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the path to the clipboard")
	setup.register(cmd)

	return cmd
}
