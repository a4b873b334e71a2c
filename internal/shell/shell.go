// Package shell renders the wrapper functions that let `wt switch` change
// the caller's directory.
//
// A child process cannot change its parent's working directory, so
// `wt switch` and `wt create` print the target path as the only line on
// stdout. The wrapper captures it and runs cd; every other subcommand is
// passed through untouched.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Supported lists the shells a wrapper exists for.
var Supported = []string{"bash", "zsh", "fish"}

// Script returns the wrapper function for shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return posixScript("bash"), nil
	case "zsh":
		return posixScript("zsh"), nil
	case "fish":
		return fishScript, nil
	}
	return "", fmt.Errorf("unsupported shell: %s (supported: %s)", shell, strings.Join(Supported, ", "))
}

// Detect guesses the user's shell from $SHELL. Returns false when it is
// unset or not one of Supported.
func Detect() (string, bool) {
	name := filepath.Base(os.Getenv("SHELL"))
	if slices.Contains(Supported, name) {
		return name, true
	}
	return "", false
}

func posixScript(shell string) string {
	rc := "~/.bashrc"
	if shell == "zsh" {
		rc = "~/.zshrc"
	}
	return fmt.Sprintf(posixTemplate, shell, rc)
}

const posixTemplate = `# wt shell wrapper
# Install: eval "$(wt shell-init %[1]s)"   # add to %[2]s

wt() {
    case "$1" in
        switch|create)
            local out
            out="$(command wt "$@")" || return $?
            if [ -n "$out" ] && [ -d "$out" ]; then
                cd -- "$out"
            elif [ -n "$out" ]; then
                printf '%%s\n' "$out"
            fi
            ;;
        *)
            command wt "$@"
            ;;
    esac
}
`

const fishScript = `# wt shell wrapper
# Install: wt shell-init fish | source   # add to ~/.config/fish/config.fish

function wt --wraps=wt --description 'Git worktree orchestrator'
    switch "$argv[1]"
        case switch create
            set -l out (command wt $argv)
            or return $status
            if test (count $out) -eq 1; and test -d "$out[1]"
                cd -- $out[1]
            else if test (count $out) -gt 0
                printf '%s\n' $out
            end
        case '*'
            command wt $argv
    end
end
`
