package prompt

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// EnvNoPrompt disables every prompt when set to a non-empty value other
// than "0".
const EnvNoPrompt = "WT_NO_PROMPT"

// Interactive reports whether prompts can be shown: stdin and stderr are
// terminals and WT_NO_PROMPT is not set.
func Interactive() bool {
	if v := os.Getenv(EnvNoPrompt); v != "" && v != "0" {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run drives model on stderr, leaving stdout to the shell wrapper. The
// program stops when ctx is done.
func run(ctx context.Context, model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	).Run()
}

// Confirmer asks through Confirm when the session is interactive and
// declines otherwise. A cancelled prompt declines.
func Confirmer(ctx context.Context, question string) (bool, error) {
	if !Interactive() {
		return false, nil
	}
	a, err := Confirm(ctx, question, false)
	if err != nil {
		return false, err
	}
	return a == AnswerYes, nil
}

// Ask returns the answer to a text prompt, or fallback when the session is
// not interactive or the prompt was cancelled.
func Ask(ctx context.Context, question, fallback string) (string, error) {
	if !Interactive() {
		return fallback, nil
	}
	v, ok, err := TextInput(ctx, question, fallback)
	if err != nil || !ok {
		return fallback, err
	}
	return v, nil
}
