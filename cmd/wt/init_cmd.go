package main

import (
	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/ui/prompt"
)

func newInitCmd() *cobra.Command {
	var (
		prefix      string
		pathPattern string
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write the global config file",
		GroupID: GroupConfig,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Write ~/.wt.toml with the branch prefix and path pattern.

Settings not given as flags are asked for on a terminal; elsewhere the
defaults are used. Other settings are reset to their defaults.`,
		Example: `  wt init
  wt init --prefix tk --path '../{repo}.worktrees/{name}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			store, err := config.GlobalStoreFromContext(ctx)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if cmd.Flags().Changed("prefix") {
				cfg.Prefix = prefix
			} else if cfg.Prefix, err = prompt.Ask(ctx, "Branch prefix for new worktrees", cfg.Prefix); err != nil {
				return err
			}
			if cmd.Flags().Changed("path") {
				cfg.PathPattern = pathPattern
			} else if cfg.PathPattern, err = prompt.Ask(ctx, "Worktree path pattern ({repo}, {name}, {branch})", cfg.PathPattern); err != nil {
				return err
			}

			if err := config.Write(store, cfg); err != nil {
				return err
			}
			l.Printf("Configuration saved to %s\n", store.Path())
			l.Printf("Next: add 'eval \"$(wt shell-init)\"' to your shell rc file\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", config.DefaultPrefix, "Branch prefix for new worktrees")
	cmd.Flags().StringVar(&pathPattern, "path", config.DefaultPathPattern, "Worktree path pattern")

	return cmd
}
