package main

import (
	"github.com/spf13/cobra"

	"github.com/wtkit/wt/internal/doctor"
	"github.com/wtkit/wt/internal/exitcode"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/output"
	"github.com/wtkit/wt/internal/ui/static"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix    bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair worktree state",
		GroupID: GroupUtility,
		Args:    usageArgs(cobra.NoArgs),
		Long: `Check the repository for problems wt or git left behind.

Checks:
  - config files that do not parse or hold invalid values
  - worktrees whose directory was deleted by hand (fix: prune)
  - worktrees whose .git link broke after a move (fix: repair)
  - sync stashes that were never restored
  - a previous pointer naming a deleted worktree (fix: clear)

With --fix, every issue that has a fix is repaired. Stashes are never
dropped; restore or drop them yourself.`,
		Example: `  wt doctor
  wt doctor --fix
  wt doctor --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			f, err := output.ParseFormat(format)
			if err != nil {
				return exitcode.NewUsageError(err)
			}

			env, err := openRepo(ctx)
			if err != nil {
				return err
			}

			d := doctor.New(env.client, env.mainRoot,
				doctor.WithStores(env.resolver.Global(), env.resolver.Local()),
				doctor.WithHistory(env.history, env.reg),
			)
			issues, err := d.Check(ctx)
			if err != nil {
				return err
			}

			if f != output.FormatTable {
				if issues == nil {
					issues = []doctor.Issue{}
				}
				if err := out.Encode(f, issues); err != nil {
					return err
				}
			} else if len(issues) > 0 {
				rows := make([][]string, 0, len(issues))
				for _, issue := range issues {
					rows = append(rows, static.DoctorTableRow(issue))
				}
				out.Styled(static.RenderTable(static.DoctorHeaders, rows))
			}

			if len(issues) == 0 {
				l.Println("No issues found")
				return nil
			}

			fixable := 0
			for _, issue := range issues {
				if issue.Fixable() {
					fixable++
				}
			}

			if !fix {
				l.Printf("Found %d issue(s)", len(issues))
				if fixable > 0 {
					l.Printf(", run 'wt doctor --fix' to repair %d of them", fixable)
				}
				l.Println()
				return nil
			}

			fixed, err := d.Fix(ctx, issues)
			l.Printf("Fixed %d of %d issue(s)\n", fixed, len(issues))
			return err
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the issues that have a fix")
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "Output format: table, json, yaml")
	registerFormatCompletion(cmd)

	return cmd
}
