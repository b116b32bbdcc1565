package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simz/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It serves two modes:
// predictions, where any choice is valid and nothing is ever revealed,
// and quiz questions, where the parent calls Reveal to grade the pick.
type MultiChoice struct {
	Prompt       string
	Options      []string
	CorrectIndex int // -1 when there is no canonical answer
	Explanation  string
	Selected     int
	Chosen       int // -1 until committed
	Revealed     bool
}

// NewMultiChoice creates a multiple-choice component.
func NewMultiChoice(prompt string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	}

	return m, nil
}

// Reveal marks the component graded; further input is ignored.
func (m *MultiChoice) Reveal() {
	m.Revealed = true
}

// Committed reports whether a choice has been made.
func (m MultiChoice) Committed() bool {
	return m.Chosen >= 0
}

// IsCorrect reports whether the committed choice matches the canonical
// answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen >= 0 && m.Chosen == m.CorrectIndex
}

// View renders the component.
func (m MultiChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt) + "\n\n"

	labels := "ABCDEFGH"

	for i, opt := range m.Options {
		label := "?"
		if i < len(labels) {
			label = string(labels[i])
		}
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}

		marker := " "
		if i == m.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case m.Revealed && i == m.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Revealed && i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	if m.Revealed && m.Explanation != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(m.Explanation) + "\n"
	}

	return s
}
