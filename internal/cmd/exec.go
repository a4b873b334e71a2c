package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/wtkit/wt/internal/log"
)

// Error describes a failed external command. Its message is the command's
// stderr when there was any, so callers can pass it through verbatim.
type Error struct {
	Name     string
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OutputContext executes a command and returns its stdout.
// When ctx is cancelled the process is killed and ctx.Err() is returned.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, newError(name, args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// Attached runs a command with the given stdio streams, for commands the user
// interacts with directly. The exit status is preserved in the *Error.
func Attached(ctx context.Context, dir string, stdin io.Reader, stdout, stderr io.Writer, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		return newError(name, args, "", err)
	}
	return nil
}

func newError(name string, args []string, stderr string, err error) *Error {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &Error{
		Name:     name,
		Args:     args,
		Stderr:   strings.TrimSpace(stderr),
		ExitCode: code,
		Err:      err,
	}
}
