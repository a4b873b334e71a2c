// Package preserve carries git-ignored files such as .env from the main
// worktree into a new one.
package preserve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/log"
)

// DefaultExclude lists directory names whose contents are never copied.
var DefaultExclude = []string{"node_modules", ".venv", "vendor", ".git"}

// Rule selects ignored files whose base name or relative path matches one of
// Patterns. A file below a directory named in Exclude is never selected.
type Rule struct {
	Patterns []string
	Exclude  []string
}

// Selects reports whether the slash-separated relative path rel is covered
// by the rule.
func (r Rule) Selects(rel string) bool {
	dir, base := path.Split(rel)
	for _, seg := range strings.Split(strings.Trim(dir, "/"), "/") {
		if slices.Contains(r.Exclude, seg) {
			return false
		}
	}
	return slices.ContainsFunc(r.Patterns, func(p string) bool {
		if ok, _ := path.Match(p, base); ok {
			return true
		}
		ok, _ := path.Match(p, rel)
		return ok
	})
}

// IgnoredFiles lists the git-ignored files below dir, relative to it and
// slash-separated.
func IgnoredFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := cmd.OutputContext(ctx, dir, "git", "ls-files", "-z", "--others", "--ignored", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("list ignored files: %w", err)
	}
	var files []string
	for entry := range bytes.SplitSeq(out, []byte{0}) {
		if len(entry) > 0 {
			files = append(files, string(entry))
		}
	}
	return files, nil
}

// CopyFile copies src to dst with the same permission bits, creating the
// parent directories of dst. It reports false without error when dst
// already exists; an existing file is never replaced.
func CopyFile(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return false, err
	}
	return true, nil
}

// Files copies the ignored files of sourceDir that match patterns into
// targetDir and returns the relative paths it wrote. Directories in
// DefaultExclude are skipped. A file that fails to copy is logged and
// skipped.
func Files(ctx context.Context, patterns []string, sourceDir, targetDir string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	ignored, err := IgnoredFiles(ctx, sourceDir)
	if err != nil {
		return nil, err
	}

	rule := Rule{Patterns: patterns, Exclude: DefaultExclude}
	l := log.FromContext(ctx)

	var copied []string
	for _, rel := range ignored {
		if !rule.Selects(rel) {
			continue
		}
		native := filepath.FromSlash(rel)
		wrote, err := CopyFile(filepath.Join(sourceDir, native), filepath.Join(targetDir, native))
		switch {
		case err != nil:
			l.Debug("preserve: copy failed", "file", rel, "error", err)
		case wrote:
			copied = append(copied, rel)
		}
	}
	return copied, nil
}
