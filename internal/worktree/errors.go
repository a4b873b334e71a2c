package worktree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a symbol resolves to no worktree at all.
	ErrNotFound = errors.New("worktree not found")

	// ErrNoPreviousWorktree is returned when "previous" is unset or points at
	// a worktree that no longer exists.
	ErrNoPreviousWorktree = errors.New("no previous worktree: switch to another worktree first")

	// ErrDeclined is returned when the user declines a required confirmation.
	ErrDeclined = errors.New("aborted")

	// ErrInvalidName is returned for names that cannot name a worktree.
	ErrInvalidName = errors.New("invalid worktree name")
)

// ConfigError reports an invalid configuration key or value, or a failure to
// persist the configuration record.
type ConfigError struct {
	Key  string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Path != "":
		return fmt.Sprintf("config %s (%s): %v", e.Key, e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("config %s: %v", e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NameCollisionError is returned by create when the name, branch or path is
// already taken.
type NameCollisionError struct {
	Name   string
	Reason string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("worktree %q already exists: %s", e.Name, e.Reason)
}

// WorktreeNotFoundError is returned when a literal name matches no live
// worktree. Suggestions holds close matches, best first.
type WorktreeNotFoundError struct {
	Token       string
	Suggestions []string
}

func (e *WorktreeNotFoundError) Error() string {
	msg := fmt.Sprintf("worktree %q not found", e.Token)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(e.Suggestions), ", "))
	}
	return msg + fmt.Sprintf("; run 'wt list' to see worktrees or 'wt switch -c %s' to create it", e.Token)
}

// Is makes errors.Is(err, ErrNotFound) hold for not-found names.
func (e *WorktreeNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
