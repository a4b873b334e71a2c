package resolve

import (
	"fmt"
	"strings"
)

// Kind identifies which symbol a token stands for.
type Kind int

const (
	// Named is a literal worktree name.
	Named Kind = iota
	// Default is the configured default worktree, or main.
	Default
	// Previous is the worktree active before the last switch.
	Previous
)

func (k Kind) String() string {
	switch k {
	case Default:
		return "default"
	case Previous:
		return "previous"
	default:
		return "named"
	}
}

// Target is a parsed worktree token.
type Target struct {
	Kind Kind
	Name string // set for Named only
}

// Symbols accepted for the special targets. The short forms mirror `cd -`
// and the caret used for "home".
var (
	defaultSymbols  = []string{"default", "^"}
	previousSymbols = []string{"previous", "-"}
)

// Parse turns a command-line token into a Target.
func Parse(token string) (Target, error) {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return Target{}, fmt.Errorf("worktree name is required")
	case contains(defaultSymbols, token):
		return Target{Kind: Default}, nil
	case contains(previousSymbols, token):
		return Target{Kind: Previous}, nil
	}
	return Target{Kind: Named, Name: token}, nil
}

// NamedTarget returns a Target for a literal name without symbol handling,
// for names that are known to be real worktree names.
func NamedTarget(name string) Target {
	return Target{Kind: Named, Name: name}
}

// String returns the canonical token for t.
func (t Target) String() string {
	if t.Kind == Named {
		return t.Name
	}
	return t.Kind.String()
}

// IsSymbol reports whether token is a reserved symbol rather than a name.
func IsSymbol(token string) bool {
	return contains(defaultSymbols, token) || contains(previousSymbols, token)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
