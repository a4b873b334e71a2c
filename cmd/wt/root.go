package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupSync    = "sync"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// noGitCommands run without a git executable.
var noGitCommands = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
	"version":    true,
	"shell-init": true,
}

// newRootCmd builds the command tree. sink, when non-nil, receives a copy
// of every log record.
func newRootCmd(sink *zap.Logger) *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:   "wt",
		Short: "Switch between, create and sync git worktrees",
		Long: `wt manages the worktrees of one git repository.

Worktrees are addressed by name. Two symbols are understood everywhere a
name is: "^" (or "default") for the configured default worktree and "-"
(or "previous") for the worktree you switched away from last.

Commands that change directory print the target path on stdout. Install
the shell wrapper so your shell follows them:

  eval "$(wt shell-init bash)"`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		Args:                       usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return exitcode.NewUsageError(fmt.Errorf("--verbose and --quiet are mutually exclusive"))
			}

			ctx := cmd.Context()
			logger := log.New(cmd.ErrOrStderr(), verbose, quiet)
			if sink != nil {
				logger = logger.WithSink(sink)
			}
			ctx = log.WithLogger(ctx, logger)
			ctx = output.WithPrinter(ctx, cmd.OutOrStdout())
			cmd.SetContext(ctx)

			logger.Debug("invoked", "command", cmd.CommandPath(), "args", args)

			if noGitCommands[cmd.Name()] {
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcode.NewUsageError(err)
	})

	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupSync, Title: "Sync Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	root.AddCommand(
		newSwitchCmd(),
		newCreateCmd(),
		newListCmd(),
		newDeleteCmd(),
		newSyncCmd(),
		newStatusCmd(),
		newRunCmd(),
		newCleanCmd(),
		newDiffCmd(),
		newDoctorCmd(),
		newConfigCmd(),
		newInitCmd(),
		newShellInitCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)

	root.SetHelpCommandGroupID(GroupUtility)
	root.SetCompletionCommandGroupID(GroupConfig)

	return root
}

// Execute runs wt with the process arguments and returns the exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sink, closeSink, err := log.SinkFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
	} else {
		defer closeSink()
	}

	return run(ctx, newRootCmd(sink), os.Args[1:], os.Stdout, os.Stderr)
}

// run executes root with args and maps the outcome to an exit code. Errors
// are reported on stderr, except exitcode.Silent failures which have
// already explained themselves.
func run(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.OK
	}
	if !errors.Is(err, exitcode.Silent) {
		fmt.Fprintf(stderr, "wt: %v\n", err)
	}
	return exitcode.For(err)
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return exitcode.NewUsageError(fn(cmd, args))
	}
}
