package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wtkit/wt/internal/cmd"
)

// Error is returned when a git invocation fails. Its message is git's own
// stderr so it can be shown to the user unchanged.
type Error struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	_, err := outputGit(ctx, dir, args...)
	return err
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	out, err := cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
	if err != nil {
		return nil, wrapError(args, err)
	}
	return out, nil
}

func wrapError(args []string, err error) error {
	var cmdErr *cmd.Error
	if !errors.As(err, &cmdErr) {
		return err
	}
	return &Error{
		Args:     args,
		Stderr:   cmdErr.Stderr,
		ExitCode: cmdErr.ExitCode,
		Err:      cmdErr,
	}
}

// exitCode reports the exit status of a failed git call, or -1.
func exitCode(err error) int {
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}
