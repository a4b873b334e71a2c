// Package static renders non-interactive terminal output such as the
// worktree, status and sync tables.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/wtkit/wt/internal/doctor"
	"github.com/wtkit/wt/internal/registry"
	"github.com/wtkit/wt/internal/syncer"
	"github.com/wtkit/wt/internal/ui/styles"
	"github.com/wtkit/wt/internal/worktree"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// WorktreeHeaders are the columns of WorktreeTableRow.
var WorktreeHeaders = []string{"", "NAME", "BRANCH", "COMMIT", "PATH"}

// WorktreeTableRow returns the list row for wt. current marks the worktree
// containing the caller's directory.
func WorktreeTableRow(wt worktree.Worktree, current bool) []string {
	marker := ""
	name := wt.Name
	if current {
		marker = "*"
		name = styles.AccentStyle.Render(name)
	}

	branch := wt.Branch
	if wt.IsDetached {
		branch = styles.MutedStyle.Render("(detached)")
	}
	if wt.IsMain {
		branch += styles.MutedStyle.Render(" [main]")
	}

	return []string{marker, name, branch, wt.ShortHead(), wt.Path}
}

// StatusHeaders are the columns of StatusTableRow.
var StatusHeaders = []string{"NAME", "BRANCH", "CHANGES", "UPSTREAM", "AHEAD/BEHIND"}

// StatusTableRow returns the status row for st.
func StatusTableRow(st registry.Status) []string {
	changes := styles.MutedStyle.Render("clean")
	if st.Dirty() {
		changes = styles.WarningStyle.Render(fmt.Sprintf("%d file(s)", len(st.Files)))
	}

	upstream := st.Upstream
	divergence := ""
	switch {
	case st.Worktree.IsDetached:
		upstream = styles.MutedStyle.Render("(detached)")
	case upstream == "":
		upstream = styles.MutedStyle.Render("none")
	default:
		divergence = fmt.Sprintf("+%d/-%d", st.Ahead, st.Behind)
	}

	return []string{st.Worktree.Name, st.Worktree.Branch, changes, upstream, divergence}
}

// SyncHeaders are the columns of SyncTableRow.
var SyncHeaders = []string{"NAME", "STATUS", "DETAIL"}

// SyncTableRow returns the sync summary row for res.
func SyncTableRow(res syncer.Result) []string {
	return []string{res.Name, styles.SyncStatus(string(res.Status)), res.Detail}
}

// DoctorHeaders are the columns of DoctorTableRow.
var DoctorHeaders = []string{"CATEGORY", "KEY", "ISSUE", "FIX"}

// DoctorTableRow returns the doctor row for issue. Issues without an
// automatic fix show their manual hint.
func DoctorTableRow(issue doctor.Issue) []string {
	fix := styles.AccentStyle.Render(issue.FixAction)
	if !issue.Fixable() {
		fix = styles.MutedStyle.Render(issue.Hint)
	}
	return []string{string(issue.Category), issue.Key, styles.WarningStyle.Render(issue.Description), fix}
}
