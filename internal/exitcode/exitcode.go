// Package exitcode maps errors returned by commands to process exit codes.
package exitcode

import (
	"errors"

	"github.com/wtkit/wt/internal/git"
	"github.com/wtkit/wt/internal/worktree"
)

// Process exit codes.
const (
	OK       = 0
	General  = 1
	Usage    = 2
	VCS      = 3
	NotFound = 4
	Declined = 5
)

// UsageError marks an error caused by invalid arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError wraps err as a UsageError. A nil err stays nil.
func NewUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// Silent is returned by commands that already reported their failure and
// only need a non-zero exit status.
var Silent = errors.New("silent failure")

// For returns the exit code for err. More specific causes win: a missing
// worktree reported through a git failure still exits NotFound.
func For(err error) int {
	if err == nil {
		return OK
	}

	var usage *UsageError
	var cfgErr *worktree.ConfigError
	var collision *worktree.NameCollisionError
	var gitErr *git.Error

	switch {
	case errors.Is(err, worktree.ErrDeclined):
		return Declined
	case errors.Is(err, worktree.ErrNotFound), errors.Is(err, worktree.ErrNoPreviousWorktree):
		return NotFound
	case errors.As(err, &usage), errors.Is(err, worktree.ErrInvalidName):
		return Usage
	case errors.As(err, &cfgErr), errors.As(err, &collision):
		return General
	case errors.As(err, &gitErr), errors.Is(err, git.ErrNotARepo), errors.Is(err, git.ErrGitNotFound):
		return VCS
	}
	return General
}
