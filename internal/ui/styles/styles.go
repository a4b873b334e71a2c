// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions so tables and prompts look
// the same everywhere. Styled strings carry full ANSI sequences; writers
// downsample them to the terminal's profile (see output.Printer.Styled).
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for the current worktree (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for positive sync outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Error is used for conflicts (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for skipped and secondary text (gray)
	Muted color.Color = lipgloss.Color("240")

	// Warning is used for dirty worktrees (orange)
	Warning color.Color = lipgloss.Color("214")
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)

// Sync status symbols.
const (
	SymbolOK      = "✓"
	SymbolUpdated = "↓"
	SymbolFailed  = "✗"
	SymbolSkipped = "-"
)

// SyncStatus renders a sync status with its symbol and color.
func SyncStatus(status string) string {
	switch status {
	case "up_to_date":
		return SuccessStyle.Render(SymbolOK + " " + status)
	case "fast_forwarded", "rebased":
		return SuccessStyle.Render(SymbolUpdated + " " + status)
	case "conflict", "stash_conflict":
		return ErrorStyle.Render(SymbolFailed + " " + status)
	case "skipped":
		return MutedStyle.Render(SymbolSkipped + " " + status)
	}
	return status
}
