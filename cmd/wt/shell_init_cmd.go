package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/shell"
)

func newShellInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "shell-init [bash|zsh|fish]",
		Short:     "Print the shell wrapper that changes directory",
		GroupID:   GroupConfig,
		ValidArgs: shell.Supported,
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		Long: `Print a shell function named wt that runs the real binary and, for
switch and create, changes into the printed directory.

Without an argument the shell is taken from $SHELL.`,
		Example: `  # Bash (~/.bashrc)
  eval "$(wt shell-init bash)"

  # Zsh (~/.zshrc)
  eval "$(wt shell-init zsh)"

  # Fish (~/.config/fish/config.fish)
  wt shell-init fish | source`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				detected, ok := shell.Detect()
				if !ok {
					return exitcode.NewUsageError(fmt.Errorf("cannot tell the shell from $SHELL, pass one of: bash, zsh, fish"))
				}
				name = detected
			}

			script, err := shell.Script(name)
			if err != nil {
				return exitcode.NewUsageError(err)
			}
			output.FromContext(cmd.Context()).Printf("%s", script)
			return nil
		},
	}

	return cmd
}
