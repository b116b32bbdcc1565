package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// PhaseTrack renders the lab journey as a dotted track: filled dots for
// completed phases, a ring for the current one.
type PhaseTrack struct {
	Labels  []string
	Current int
}

// View renders the track with the current phase name underneath.
func (t PhaseTrack) View() string {
	var dots []string
	for i := range t.Labels {
		switch {
		case i < t.Current:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Success).Render("●"))
		case i == t.Current:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◉"))
		default:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
		}
	}

	name := ""
	if t.Current >= 0 && t.Current < len(t.Labels) {
		name = lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Labels[t.Current])
	}

	return strings.Join(dots, " ") + "\n" + name
}
