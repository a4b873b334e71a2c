package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/config"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
)

func newConfigCmd() *cobra.Command {
	var (
		list  bool
		local bool
		unset bool
		edit  bool
	)

	c := &cobra.Command{
		Use:     "config [key [value]]",
		Short:   "Read or change settings",
		GroupID: GroupConfig,
		Args:    usageArgs(cobra.MaximumNArgs(2)),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		Long: `Read or change wt settings.

Settings live in ~/.wt.toml ($WT_CONFIG_DIR/.wt.toml when set) and,
per repository, in .wt.toml at the main worktree root. Repository
settings override global ones. Writes go to the global file unless
--local is given.

Keys:
  prefix            branch namespace for new worktrees (default "feature")
  path_pattern      where worktrees go, with {repo}, {name}, {branch}
  default_base      start point for new branches and rebase target
  default_worktree  worktree "^" refers to (default: the main worktree)`,
		Example: `  wt config                        # show the resolved settings
  wt config default_base           # show one setting
  wt config prefix tk              # set it globally
  wt config --local default_base origin/develop
  wt config --unset --local default_base
  wt config --edit`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			global, localStore, err := configStores(ctx, local)
			if err != nil {
				return err
			}
			target := global
			if local {
				target = localStore
			}

			modes := 0
			for _, on := range []bool{list, unset, edit} {
				if on {
					modes++
				}
			}
			if modes > 1 {
				return exitcode.NewUsageError(fmt.Errorf("--list, --unset and --edit are mutually exclusive"))
			}

			switch {
			case edit:
				if len(args) > 0 {
					return exitcode.NewUsageError(fmt.Errorf("--edit takes no arguments"))
				}
				return editConfig(ctx, c, target)

			case unset:
				if len(args) != 1 {
					return exitcode.NewUsageError(fmt.Errorf("--unset needs exactly one key"))
				}
				if err := config.Unset(ctx, target, args[0]); err != nil {
					return err
				}
				l.Printf("Unset %s in %s\n", args[0], target.Path())
				return nil

			case len(args) == 2:
				if list {
					return exitcode.NewUsageError(fmt.Errorf("--list takes no arguments"))
				}
				if err := config.Set(ctx, target, args[0], args[1]); err != nil {
					return err
				}
				l.Printf("Set %s = %q in %s\n", args[0], args[1], target.Path())
				return nil
			}

			stores := []config.Store{global, localStore}
			if local {
				stores = []config.Store{localStore}
			}
			cfg := config.Resolve(ctx, stores...)

			if len(args) == 1 && !list {
				v, err := config.Get(cfg, args[0])
				if err != nil {
					return err
				}
				out.Println(v)
				return nil
			}
			if len(args) > 0 {
				return exitcode.NewUsageError(fmt.Errorf("--list takes no arguments"))
			}

			for _, key := range config.Keys() {
				v, _ := config.Get(cfg, key)
				out.Printf("%s = %q\n", key, v)
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&list, "list", "l", false, "Show every resolved setting")
	c.Flags().BoolVar(&local, "local", false, "Use the repository config file")
	c.Flags().BoolVar(&unset, "unset", false, "Remove a setting so its default applies")
	c.Flags().BoolVarP(&edit, "edit", "e", false, "Open the config file in $EDITOR")

	return c
}

// configStores returns the global store and, when the working directory is
// inside a repository, the repository store. Outside a repository the
// local store is nil, which is an error only when it is required.
func configStores(ctx context.Context, requireLocal bool) (config.Store, config.Store, error) {
	global, err := config.GlobalStoreFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	commonDir, err := git.CommonDir(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		if requireLocal {
			return nil, nil, fmt.Errorf("--local: %w", err)
		}
		log.FromContext(ctx).Debug("no repository config", "error", err)
		return global, nil, nil
	}
	return global, config.LocalStore(mainRootOf(commonDir)), nil
}

// editConfig opens store's file in the user's editor, seeding it with the
// defaults when it does not exist yet.
func editConfig(ctx context.Context, c *cobra.Command, store config.Store) error {
	l := log.FromContext(ctx)

	if _, err := store.Load(); errors.Is(err, os.ErrNotExist) {
		if err := config.Write(store, config.Default()); err != nil {
			return err
		}
		l.Printf("Created %s\n", store.Path())
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	if err := cmd.Attached(ctx, "", c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr(),
		"sh", "-c", editor+` "$1"`, "sh", store.Path()); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	// Surface problems in the edited file right away
	config.Resolve(ctx, store)
	return nil
}
