package format

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPathPattern places worktrees next to the main checkout.
const DefaultPathPattern = "../{repo}-{name}"

// Placeholders supported in path patterns.
const (
	RepoPlaceholder   = "{repo}"
	NamePlaceholder   = "{name}"
	BranchPlaceholder = "{branch}"
)

// ValidPlaceholders lists all supported placeholders
var ValidPlaceholders = []string{RepoPlaceholder, NamePlaceholder, BranchPlaceholder}

// placeholderRegex matches {placeholder-name} patterns
var placeholderRegex = regexp.MustCompile(`\{[a-z_-]+\}`)

// ValidatePattern checks a path pattern. Unknown placeholders are rejected,
// and the pattern must contain {name} or {branch} so every worktree gets its
// own directory.
func ValidatePattern(pattern string) error {
	for _, match := range placeholderRegex.FindAllString(pattern, -1) {
		if !isValidPlaceholder(match) {
			return fmt.Errorf("unknown placeholder %q in path pattern %q (valid: %s)",
				match, pattern, strings.Join(ValidPlaceholders, ", "))
		}
	}

	if !strings.Contains(pattern, NamePlaceholder) && !strings.Contains(pattern, BranchPlaceholder) {
		return fmt.Errorf("path pattern %q must contain %s or %s",
			pattern, NamePlaceholder, BranchPlaceholder)
	}
	return nil
}

// isValidPlaceholder checks if a placeholder is in the valid list
func isValidPlaceholder(placeholder string) bool {
	for _, valid := range ValidPlaceholders {
		if placeholder == valid {
			return true
		}
	}
	return false
}

// SanitizeForPath replaces characters that are problematic in file paths
// Replaces: / \ : * ? " < > | with -
func SanitizeForPath(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	return replacer.Replace(name)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
