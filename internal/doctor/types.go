package doctor

// Category groups issues by the state they concern.
type Category string

const (
	// CategoryConfig represents problems with config records.
	CategoryConfig Category = "config"
	// CategoryGit represents problems with git worktree links.
	CategoryGit Category = "git"
	// CategoryState represents leftovers of earlier wt runs.
	CategoryState Category = "state"
)

// Fix actions applied by Doctor.Fix.
const (
	FixPrune         = "prune"
	FixRepair        = "repair"
	FixClearPrevious = "clear_previous"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Category    Category `json:"category" yaml:"category"`
	Key         string   `json:"key" yaml:"key"` // path, stash ref or config file
	Description string   `json:"description" yaml:"description"`
	FixAction   string   `json:"fix_action,omitempty" yaml:"fix_action,omitempty"`
	Hint        string   `json:"hint,omitempty" yaml:"hint,omitempty"` // manual remedy when there is no fix
}

// Fixable reports whether Fix can resolve the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != ""
}
