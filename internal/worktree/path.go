package worktree

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wtkit/wt/internal/format"
)

// ExpandPattern computes a worktree path from a path pattern.
// Supports:
//   - "{name}" or "./{name}" = nested inside the main worktree
//   - "../{repo}-{name}" = sibling to the main worktree
//   - "~/worktrees/{repo}-{name}" = centralized folder
//   - "/absolute/{repo}-{branch}" = absolute path
//
// {name} and {branch} are sanitized into single path components.
func ExpandPattern(mainRoot, repoName, name, branch, pattern string) string {
	path := strings.ReplaceAll(pattern, format.RepoPlaceholder, repoName)
	path = strings.ReplaceAll(path, format.NamePlaceholder, format.SanitizeForPath(name))
	path = strings.ReplaceAll(path, format.BranchPlaceholder, format.SanitizeForPath(branch))
	return anchor(mainRoot, path)
}

// anchor turns an expanded pattern into an absolute path.
func anchor(mainRoot, path string) string {
	switch {
	case strings.HasPrefix(path, "~/"):
		// Home-relative absolute path
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			// Keep the ~ prefix so error messages show what was configured
			return path
		}
		return filepath.Join(home, path[2:])

	case filepath.IsAbs(path):
		return filepath.Clean(path)

	default:
		// Relative to the main worktree, which also covers "../" siblings
		return filepath.Join(mainRoot, path)
	}
}

const (
	nameToken   = "\x00name\x00"
	branchToken = "\x00branch\x00"
)

// MatchPattern infers a worktree name from its path by treating {name} in
// pattern as a capture. {branch} matches any single path component.
// Returns ok=false when the pattern has no {name} or path does not match.
func MatchPattern(mainRoot, repoName, pattern, path string) (string, bool) {
	if !strings.Contains(pattern, format.NamePlaceholder) {
		return "", false
	}

	tmpl := strings.ReplaceAll(pattern, format.RepoPlaceholder, repoName)
	tmpl = strings.ReplaceAll(tmpl, format.NamePlaceholder, nameToken)
	tmpl = strings.ReplaceAll(tmpl, format.BranchPlaceholder, branchToken)
	tmpl = anchor(mainRoot, tmpl)

	expr := regexp.QuoteMeta(tmpl)
	// The first {name} captures; later occurrences must repeat it, which
	// RE2 cannot express, so they match loosely.
	expr = strings.Replace(expr, nameToken, `([^/]+)`, 1)
	expr = strings.ReplaceAll(expr, nameToken, `[^/]+`)
	expr = strings.ReplaceAll(expr, branchToken, `[^/]+`)

	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(filepath.Clean(path))
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
