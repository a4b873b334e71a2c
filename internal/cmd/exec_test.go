package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/wtkit/wt/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestOutputContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		args    []string
		want    string
		wantErr string
	}{
		{name: "stdout", args: []string{"echo", "hello"}, want: "hello\n"},
		{name: "runs in dir", dir: "/", args: []string{"pwd"}, want: "/\n"},
		{name: "stderr becomes the message", args: []string{"sh", "-c", "echo 'bad thing' >&2; exit 1"}, wantErr: "bad thing"},
		{name: "silent failure", args: []string{"sh", "-c", "exit 1"}, wantErr: "exit status 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := OutputContext(logCtx(), tt.dir, tt.args[0], tt.args[1:]...)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(logCtx())
	cancel()

	if _, err := OutputContext(ctx, "", "sleep", "10"); !errors.Is(err, context.Canceled) {
		t.Errorf("OutputContext error = %v, want context.Canceled", err)
	}
	if err := Attached(ctx, "", nil, io.Discard, io.Discard, "sleep", "10"); err == nil {
		t.Error("Attached with a cancelled context should fail")
	}
}

func TestError_CarriesExitCode(t *testing.T) {
	t.Parallel()
	_, err := OutputContext(logCtx(), "", "sh", "-c", "echo nope >&2; exit 3")
	if err == nil {
		t.Fatal("OutputContext = nil, want error")
	}

	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
	}
	if cmdErr.Name != "sh" {
		t.Errorf("Name = %q, want %q", cmdErr.Name, "sh")
	}
}

func TestOutputContext_TracesWhenVerbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if _, err := OutputContext(ctx, "/tmp", "echo", "traced"); err != nil {
		t.Fatalf("OutputContext = %v", err)
	}
	if !strings.Contains(buf.String(), "[/tmp] $ echo traced") {
		t.Errorf("trace = %q, want command line", buf.String())
	}
}

func TestAttached_WiresStreams(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	err := Attached(logCtx(), "", strings.NewReader("piped\n"), &stdout, &stderr, "cat")
	if err != nil {
		t.Fatalf("Attached = %v", err)
	}
	if stdout.String() != "piped\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "piped\n")
	}
}

func TestAttached_ExitStatus(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	err := Attached(logCtx(), "", nil, &stdout, &stderr, "sh", "-c", "exit 7")
	var cmdErr *Error
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode != 7 {
		t.Errorf("Attached error = %v, want exit status 7", err)
	}
}
