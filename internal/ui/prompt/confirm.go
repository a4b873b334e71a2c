package prompt

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// Answer is the outcome of a yes/no question.
type Answer int

const (
	AnswerNo Answer = iota
	AnswerYes
	// AnswerCancelled means the question was dismissed with esc, q or ctrl+c.
	AnswerCancelled
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerCancelled:
		return "cancelled"
	default:
		return "no"
	}
}

type confirmModel struct {
	question   string
	defaultYes bool
	answer     Answer
	answered   bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

// answerFor maps a key to an answer. ok is false for keys the prompt ignores.
func (m confirmModel) answerFor(key string) (a Answer, ok bool) {
	switch key {
	case "y", "Y":
		return AnswerYes, true
	case "n", "N":
		return AnswerNo, true
	case "enter":
		if m.defaultYes {
			return AnswerYes, true
		}
		return AnswerNo, true
	case "esc", "q", "ctrl+c":
		return AnswerCancelled, true
	}
	return AnswerNo, false
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		return m, nil
	}
	a, ok := m.answerFor(key.String())
	if !ok {
		return m, nil
	}
	m.answer, m.answered = a, true
	return m, tea.Quit
}

func (m confirmModel) hint() string {
	if m.defaultYes {
		return "[Y/n]"
	}
	return "[y/N]"
}

func (m confirmModel) View() tea.View {
	if m.answered {
		return tea.NewView("")
	}
	return tea.NewView(m.question + " " + m.hint() + " ")
}

// Confirm asks question on stderr. Pressing enter picks the default answer.
func Confirm(ctx context.Context, question string, defaultYes bool) (Answer, error) {
	final, err := run(ctx, confirmModel{question: question, defaultYes: defaultYes})
	if err != nil {
		return AnswerCancelled, err
	}
	return final.(confirmModel).answer, nil
}
