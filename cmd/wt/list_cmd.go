package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/ui/static"
	"github.com/wtkit/wt/internal/worktree"
)

// listEntry is a worktree as emitted by `wt list --format json|yaml`.
type listEntry struct {
	worktree.Worktree `yaml:",inline"`
	Current           bool `json:"current" yaml:"current"`
}

func newListCmd() *cobra.Command {
	var (
		format    string
		namesOnly bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List worktrees",
		GroupID: GroupCore,
		Args:    usageArgs(cobra.NoArgs),
		Long: `List every worktree of the repository, main worktree first.

The worktree containing the working directory is marked. --names prints
one name per line for scripting.`,
		Example: `  wt list
  wt list --format json
  wt list --names | xargs -n1 wt sync`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if namesOnly && cmd.Flags().Changed("format") {
				return exitcode.NewUsageError(fmt.Errorf("--names and --format are mutually exclusive"))
			}
			f, err := output.ParseFormat(format)
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

			if namesOnly {
				for _, name := range worktree.Names(wts) {
					out.Println(name)
				}
				return nil
			}

			current, hasCurrent := registry.Containing(wts, env.workDir)
			isCurrent := func(wt worktree.Worktree) bool {
				return hasCurrent && wt.Path == current.Path
			}

			if f != output.FormatTable {
				entries := make([]listEntry, 0, len(wts))
				for _, wt := range wts {
					entries = append(entries, listEntry{Worktree: wt, Current: isCurrent(wt)})
				}
				return out.Encode(f, entries)
			}

			rows := make([][]string, 0, len(wts))
			for _, wt := range wts {
				rows = append(rows, static.WorktreeTableRow(wt, isCurrent(wt)))
			}
			out.Styled(static.RenderTable(static.WorktreeHeaders, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "Output format: table, json, yaml")
	cmd.Flags().BoolVar(&namesOnly, "names", false, "Print only worktree names")
	registerFormatCompletion(cmd)

	return cmd
}
