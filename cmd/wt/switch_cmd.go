package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/hooks"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/preserve"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/resolve"
	"github.com/wtkit/wt/internal/worktree"
)

func newSwitchCmd() *cobra.Command {
	var (
		create          bool
		detached        bool
		base            string
		copyToClipboard bool
		setup           setupOptions
	)

	cmd := &cobra.Command{
		Use:               "switch [name]",
		Aliases:           []string{"sw"},
		Short:             "Print the path of a worktree and remember the one you left",
		GroupID:           GroupCore,
		Args:              usageArgs(cobra.MaximumNArgs(1)),
		ValidArgsFunction: completeWorktreeNames,
		Long: `Print the path of a worktree so the shell wrapper can cd into it.

The name can be a worktree name, "^" for the default worktree or "-" for
the previous one. Without a name the default worktree is used. Switching
from inside one worktree to another remembers the one you left, so
"wt switch -" toggles between the two.

With --create a missing worktree is created first, exactly like
'wt create' does.`,
		Example: `  wt switch auth            # go to the auth worktree
  wt switch -               # back to where you came from
  wt switch ^               # to the default worktree
  wt switch -c auth         # create feature/auth off default_base, then switch
  wt switch -c spike -d -b v1.2  # detached worktree at tag v1.2
  wt switch --copy auth     # also copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !create && (detached || base != "") {
				return exitcode.NewUsageError(fmt.Errorf("--base and --detached require --create"))
			}
			token := "^"
			if len(args) == 1 {
				token = args[0]
			}
			target, err := resolve.Parse(token)
			if err != nil {
				return exitcode.NewUsageError(err)
			}
			if create && target.Kind != resolve.Named {
				return exitcode.NewUsageError(fmt.Errorf("--create needs a worktree name, not %q", token))
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}

			wt, err := env.reg.Switch(ctx, target, env.workDir)
			var notFound *worktree.WorktreeNotFoundError
			if create && errors.As(err, &notFound) {
				wt, err = createAndSwitch(ctx, env, registry.CreateOptions{
					Name:     target.Name,
					Base:     base,
					Detached: detached,
				}, setup)
			}
			if err != nil {
				return err
			}
			return emitPath(ctx, wt, copyToClipboard)
		},
	}

	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the worktree if it does not exist")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Start point for --create (default: default_base)")
	cmd.Flags().BoolVarP(&detached, "detached", "d", false, "Create a detached worktree without a branch")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the path to the clipboard")
	setup.register(cmd)

	return cmd
}

// setupOptions controls what happens to a worktree right after creation.
type setupOptions struct {
	noHook bool
	args   []string
}

func (o *setupOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noHook, "no-hook", false, "Skip the post_create hook")
	cmd.Flags().StringArrayVar(&o.args, "arg", nil, "Set a hook variable (key=value, repeatable)")
}

// createAndSwitch creates a worktree, prepares it and switches to it,
// recording the worktree containing the working directory as previous.
func createAndSwitch(ctx context.Context, env *repoEnv, opts registry.CreateOptions, setup setupOptions) (worktree.Worktree, error) {
	vars, err := hooks.ParseArgs(setup.args)
	if err != nil {
		return worktree.Worktree{}, exitcode.NewUsageError(err)
	}

	created, err := env.reg.Create(ctx, opts)
	if err != nil {
		return worktree.Worktree{}, err
	}
	prepare(ctx, env, created, setup.noHook, vars)

	wt, err := env.reg.Switch(ctx, resolve.NamedTarget(created.Name), env.workDir)
	if err != nil {
		return created, err
	}
	return wt, nil
}

// prepare copies preserved files into a new worktree and runs the
// post_create hook. Failures are warnings: the worktree stays usable.
func prepare(ctx context.Context, env *repoEnv, wt worktree.Worktree, noHook bool, vars map[string]string) {
	l := log.FromContext(ctx)

	mainPath := env.mainRoot
	if wts, err := env.reg.List(ctx); err == nil {
		if main, ok := registry.Main(wts); ok {
			mainPath = main.Path
		}
	}

	if patterns := config.SplitList(env.cfg.Preserve); len(patterns) > 0 {
		copied, err := preserve.Files(ctx, patterns, mainPath, wt.Path)
		if err != nil {
			l.Warnf("could not copy preserved files: %v", err)
		}
		for _, f := range copied {
			l.Printf("Copied %s\n", f)
		}
	}

	if noHook || env.cfg.PostCreate == "" {
		return
	}
	if err := hooks.Run(ctx, env.cfg.PostCreate, hooks.VarsFor(wt, mainPath, vars), l.Writer()); err != nil {
		l.Warnf("%v", err)
	}
}

// emitPath prints the worktree path on stdout, optionally copying it to the
// clipboard. A hint about the shell wrapper goes to stderr when stdout is a
// terminal, since nothing captures the path then.
func emitPath(ctx context.Context, wt worktree.Worktree, copyToClipboard bool) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if copyToClipboard {
		if err := clipboard.WriteAll(wt.Path); err != nil {
			l.Warnf("failed to copy to clipboard: %v", err)
		} else {
			l.Printf("Copied %s to clipboard\n", wt.Path)
		}
	}

	out.Path(wt.Path)

	if f, ok := out.Writer().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		l.Printf("hint: run 'eval \"$(wt shell-init)\"' so your shell changes directory automatically\n")
	}
	return nil
}
