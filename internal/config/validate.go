package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtkit/wt/internal/format"
	"github.com/wtkit/wt/internal/resolve"
)

// validateValue checks value for key before it is persisted.
func validateValue(key, value string) error {
	switch key {
	case KeyPathPattern:
		return format.ValidatePattern(value)
	case KeyPrefix:
		if strings.ContainsAny(value, " \t~^:?*[\\") || strings.HasPrefix(value, "/") || strings.HasSuffix(value, "/") {
			return fmt.Errorf("invalid prefix %q: must be usable as a branch name component", value)
		}
	case KeyDefaultBase:
		if strings.TrimSpace(value) == "" {
			return errors.New("default_base must not be empty")
		}
	case KeyDefaultWorktree:
		if resolve.IsSymbol(value) {
			return fmt.Errorf("default_worktree %q is a reserved symbol", value)
		}
	case KeyPreserve:
		for _, pat := range SplitList(value) {
			if _, err := filepath.Match(pat, ""); err != nil {
				return fmt.Errorf("invalid preserve pattern %q: %w", pat, err)
			}
		}
	}
	return nil
}

// Check reads the record in store and reports every problem Resolve would
// warn about or silently drop. A missing record is not a problem.
func Check(store Store) error {
	data, err := store.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	r, invalid, err := decode(data)
	if err != nil {
		return err
	}

	errs := invalid
	for _, key := range Keys() {
		value, ok := r.value(key)
		if !ok {
			continue
		}
		if err := validateValue(key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// SplitList splits a comma-separated setting into its trimmed, non-empty
// entries.
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
