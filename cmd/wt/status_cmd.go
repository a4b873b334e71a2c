package main

import (
	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/ui/static"
)

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show changes and upstream state of every worktree",
		GroupID: GroupSync,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Show, for every worktree, how many files changed and how far the
branch is ahead of or behind its upstream.`,
		Example: `  wt status
  wt status --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

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

			statuses := env.reg.StatusAll(ctx, wts)

			if f != output.FormatTable {
				return out.Encode(f, statuses)
			}
			rows := make([][]string, 0, len(statuses))
			for _, st := range statuses {
				rows = append(rows, static.StatusTableRow(st))
			}
			out.Styled(static.RenderTable(static.StatusHeaders, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "Output format: table, json, yaml")
	registerFormatCompletion(cmd)

	return cmd
}
