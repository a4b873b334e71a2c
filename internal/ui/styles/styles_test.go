package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSyncStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   string
	}{
		{"up_to_date", "✓ up_to_date"},
		{"fast_forwarded", "↓ fast_forwarded"},
		{"rebased", "↓ rebased"},
		{"conflict", "✗ conflict"},
		{"stash_conflict", "✗ stash_conflict"},
		{"skipped", "- skipped"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			t.Parallel()
			got := ansi.Strip(SyncStatus(tt.status))
			if got != tt.want {
				t.Errorf("SyncStatus(%q) = %q, want %q", tt.status, got, tt.want)
			}
			if !strings.Contains(got, tt.status) {
				t.Errorf("SyncStatus(%q) lost the status name", tt.status)
			}
		})
	}
}
