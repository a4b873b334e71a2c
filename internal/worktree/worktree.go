// Package worktree defines the worktree model shared by the registry, the
// sync engine and the CLI, together with path pattern handling and the
// error taxonomy the exit codes are derived from.
package worktree

import (
	"fmt"
	"strings"

	"github.com/wtkit/wt/internal/resolve"
)

// NameSource records how a worktree's name was determined.
type NameSource string

const (
	// NameFromBranch is a branch worktree; the name is the branch minus prefix.
	NameFromBranch NameSource = "branch"
	// NameFromConfig is a detached worktree named by wt.name in its
	// per-worktree git config.
	NameFromConfig NameSource = "config"
	// NameFromPath is a detached worktree whose name was inferred from its
	// path using the configured path pattern.
	NameFromPath NameSource = "path"
	// NameFromHead is a detached worktree with a synthesized placeholder.
	NameFromHead NameSource = "head"
)

// Worktree is one checked-out working directory of the repository.
type Worktree struct {
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path" yaml:"path"`
	Branch     string     `json:"branch,omitempty" yaml:"branch,omitempty"`
	Head       string     `json:"head" yaml:"head"`
	IsMain     bool       `json:"is_main" yaml:"is_main"`
	IsDetached bool       `json:"is_detached" yaml:"is_detached"`
	NameSource NameSource `json:"name_source" yaml:"name_source"`
	Locked     bool       `json:"locked,omitempty" yaml:"locked,omitempty"`
}

// ShortHead returns the first 7 characters of the HEAD commit.
func (w Worktree) ShortHead() string {
	if len(w.Head) > 7 {
		return w.Head[:7]
	}
	return w.Head
}

// DetachedPlaceholder is the display name of a detached worktree that has
// neither a persisted nor an inferable name.
func DetachedPlaceholder(head string) string {
	if len(head) > 7 {
		head = head[:7]
	}
	return "(detached-" + head + ")"
}

// BranchName returns the branch a worktree called name lives on.
func BranchName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// NameFromBranchName strips prefix/ from branch. Branches outside the prefix
// keep their full name.
func NameFromBranchName(prefix, branch string) string {
	if prefix != "" && len(branch) > len(prefix)+1 && branch[:len(prefix)+1] == prefix+"/" {
		return branch[len(prefix)+1:]
	}
	return branch
}

// Names returns the names of wts in order.
func Names(wts []Worktree) []string {
	names := make([]string, 0, len(wts))
	for _, wt := range wts {
		names = append(names, wt.Name)
	}
	return names
}

// ValidateName checks that name can be used for a new worktree.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case resolve.IsSymbol(name):
		return fmt.Errorf("%w: %q is a reserved symbol", ErrInvalidName, name)
	case strings.ContainsAny(name, " \t\n~^:?*[\\"):
		return fmt.Errorf("%w: %q contains characters git does not allow in branch names", ErrInvalidName, name)
	case strings.HasPrefix(name, "-"), strings.HasPrefix(name, "."),
		strings.HasPrefix(name, "/"), strings.HasSuffix(name, "/"):
		return fmt.Errorf("%w: %q must not start with '-', '.' or '/' or end with '/'", ErrInvalidName, name)
	case strings.HasPrefix(name, "(detached-"):
		return fmt.Errorf("%w: %q is reserved for unnamed detached worktrees", ErrInvalidName, name)
	}
	return nil
}
