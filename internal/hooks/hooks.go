package hooks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wtkit/wt/internal/cmd"
	"github.com/wtkit/wt/internal/log"
	"github.com/wtkit/wt/internal/worktree"
)

// Vars are the values a hook command can reference.
type Vars struct {
	Name     string
	Path     string
	Branch   string
	Repo     string
	MainPath string
	// Args holds the --arg key=value pairs. They shadow the built-in names.
	Args map[string]string
}

// VarsFor returns the variables describing wt in the repository whose main
// worktree is at mainPath.
func VarsFor(wt worktree.Worktree, mainPath string, args map[string]string) Vars {
	return Vars{
		Name:     wt.Name,
		Path:     wt.Path,
		Branch:   wt.Branch,
		Repo:     filepath.Base(mainPath),
		MainPath: mainPath,
		Args:     args,
	}
}

// Lookup returns the value of key, checking Args before the built-in names.
func (v Vars) Lookup(key string) (string, bool) {
	if val, ok := v.Args[key]; ok {
		return val, true
	}
	switch key {
	case "name":
		return v.Name, true
	case "path":
		return v.Path, true
	case "branch":
		return v.Branch, true
	case "repo":
		return v.Repo, true
	case "main":
		return v.MainPath, true
	}
	return "", false
}

// placeholder matches {key}, {key:raw} and {key:-fallback}.
var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)(:raw|:-[^}]*)?\}`)

// Expand replaces every placeholder in command. Values are single-quoted for
// sh unless the placeholder carries :raw. A missing key takes the fallback
// or expands to ''.
func (v Vars) Expand(command string) string {
	return placeholder.ReplaceAllStringFunc(command, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		key, modifier := sub[1], sub[2]

		val, ok := v.Lookup(key)
		if !ok {
			val = strings.TrimPrefix(modifier, ":-")
			if modifier == ":raw" {
				val = ""
			}
		}
		if modifier == ":raw" {
			return val
		}
		return quote(val)
	})
}

// quote wraps s in single quotes for sh.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Run expands command and runs it with sh inside v.Path, sending both output
// streams to w. An empty command does nothing.
func Run(ctx context.Context, command string, v Vars, w io.Writer) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	log.FromContext(ctx).Printf("Running post_create hook in %s...\n", v.Name)

	if err := cmd.Attached(ctx, v.Path, nil, w, w, "sh", "-c", v.Expand(command)); err != nil {
		return fmt.Errorf("post_create hook failed: %w", err)
	}
	return nil
}

// ParseArgs turns KEY=VALUE pairs into a map. The value may contain '='.
func ParseArgs(pairs []string) (map[string]string, error) {
	args := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		switch {
		case !ok:
			return nil, fmt.Errorf("invalid argument %q: expected KEY=VALUE", p)
		case key == "":
			return nil, fmt.Errorf("invalid argument %q: key cannot be empty", p)
		}
		args[key] = val
	}
	return args, nil
}
