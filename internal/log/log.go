// Package log provides context-aware diagnostic logging for wt.
//
// Everything written here goes to stderr. Stdout is reserved for the
// output package, because the shell wrapper reads the target path from it.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Logger writes human-readable diagnostics and, when verbose, traces every
// external command. An optional zap logger receives the same records at
// debug level regardless of verbosity (see NewFileSink).
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	sink    *zap.Logger
}

// New creates a new logger. Quiet suppresses everything, including verbose
// output.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithSink returns a copy of l that also mirrors records to sink.
func (l *Logger) WithSink(sink *zap.Logger) *Logger {
	c := *l
	c.sink = sink
	return &c
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.sink != nil {
		l.sink.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.sink != nil {
		l.sink.Info(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning line prefixed with "warning: ".
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.sink != nil {
		l.sink.Warn(msg)
	}
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "warning: %s\n", strings.TrimRight(msg, "\n"))
}

// Debug writes a message with key=value pairs when verbose.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l.sink != nil {
		fields := make([]zap.Field, 0, len(keyvals)/2)
		for i := 0; i+1 < len(keyvals); i += 2 {
			fields = append(fields, zap.Any(fmt.Sprint(keyvals[i]), keyvals[i+1]))
		}
		l.sink.Debug(msg, fields...)
	}
	if !l.IsVerbose() {
		return
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Command logs an external command execution and returns a function to be
// called with the elapsed time once it finished.
// Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] $ " + line
	} else {
		line = "$ " + line
	}

	return func(elapsed time.Duration) {
		if l.sink != nil {
			l.sink.Debug("exec", zap.String("cmd", line), zap.Duration("elapsed", elapsed))
		}
		if !l.IsVerbose() {
			return
		}
		fmt.Fprintf(l.out, "%s (%s)\n", line, elapsed.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose output is enabled and not silenced.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
