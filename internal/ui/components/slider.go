package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simz/internal/ui/theme"
)

// Slider displays one tunable parameter as a labelled track. Input is
// handled by the parent screen; the slider only renders state.
type Slider struct {
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Value   float64
	Enum    []string // when non-empty, Value indexes into these labels
	Width   int
	Focused bool
}

// View renders the slider.
func (s Slider) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	prefix := "  "
	if s.Focused {
		prefix = "▸ "
	}

	if len(s.Enum) > 0 {
		return prefix + labelStyle.Render(s.Label) + "  " + s.enumView()
	}

	trackWidth := s.Width
	if trackWidth < 10 {
		trackWidth = 10
	}

	span := s.Max - s.Min
	pos := 0
	if span > 0 {
		pos = int(float64(trackWidth-1) * (s.Value - s.Min) / span)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > trackWidth-1 {
		pos = trackWidth - 1
	}

	track := theme.SliderFill.Render(strings.Repeat("─", pos)) +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("◆") +
		theme.SliderTrack.Render(strings.Repeat("─", trackWidth-1-pos))

	value := theme.MetricValue.Render(fmt.Sprintf("%.4g", s.Value))
	if s.Unit != "" {
		value += " " + theme.MetricLabel.Render(s.Unit)
	}

	return prefix + labelStyle.Render(s.Label) + "  " + track + "  " + value
}

// enumView renders discrete choices as ‹ value › picker text.
func (s Slider) enumView() string {
	i := int(s.Value)
	if i < 0 {
		i = 0
	}
	if i >= len(s.Enum) {
		i = len(s.Enum) - 1
	}
	arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
	return arrow.Render("‹ ") + theme.MetricValue.Render(s.Enum[i]) + arrow.Render(" ›")
}
