package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/simz/internal/ui/theme"
)

// ValueInput wraps bubbles/textinput for typing a parameter value
// directly instead of stepping it with the arrow keys.
type ValueInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewValueInput creates a styled numeric input seeded with the
// parameter's current value.
func NewValueInput(current string, maxWidth int) ValueInput {
	ti := textinput.New()
	ti.Placeholder = current
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return ValueInput{Model: ti}
}

// Init returns the initial command.
func (v ValueInput) Init() tea.Cmd {
	return v.Model.Focus()
}

// Update handles messages, dropping keys that cannot appear in a
// decimal number.
func (v ValueInput) Update(msg tea.Msg) (ValueInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !strings.ContainsAny(key, "0123456789.-") {
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.Model, cmd = v.Model.Update(msg)
	return v, cmd
}

// View renders the input with a validity marker once submitted.
func (v ValueInput) View() string {
	view := v.Model.View()
	if v.submitted {
		if v.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input text.
func (v ValueInput) Value() string {
	return v.Model.Value()
}

// NumericValue parses the input as a float.
func (v ValueInput) NumericValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v.Model.Value()), 64)
}

// Submit marks the input as submitted with a validation result.
func (v *ValueInput) Submit(valid bool) {
	v.submitted = true
	v.valid = valid
}
