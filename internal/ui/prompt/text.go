package prompt

import (
	"context"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const inputWidth = 50

type textInputModel struct {
	question  string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newTextInputModel(question, placeholder string) textInputModel {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetWidth(inputWidth)
	in.Focus()
	return textInputModel{question: question, input: in}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.submitted || m.cancelled {
		return tea.NewView("")
	}
	return tea.NewView(m.question + "\n" + m.input.View())
}

// Value returns the typed text, or the placeholder when nothing was typed.
func (m textInputModel) Value() string {
	if v := m.input.Value(); v != "" {
		return v
	}
	return m.input.Placeholder
}

// TextInput asks question on stderr with placeholder as the suggested
// answer. ok is false when the prompt was dismissed.
func TextInput(ctx context.Context, question, placeholder string) (value string, ok bool, err error) {
	final, err := run(ctx, newTextInputModel(question, placeholder))
	if err != nil {
		return "", false, err
	}
	m := final.(textInputModel)
	if m.cancelled {
		return "", false, nil
	}
	return m.Value(), true, nil
}
