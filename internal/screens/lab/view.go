package lab

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/simz/internal/phase"
	"github.com/abhisek/simz/internal/ui/components"
	"github.com/abhisek/simz/internal/ui/theme"
)

func (s *LabScreen) View(width, height int) string {
	p := s.lab.Controller.Current()

	var body string
	switch {
	case p == phase.Hook:
		body = s.viewHook(width)
	case phase.IsPredict(p):
		body = s.viewPredict(width)
	case phase.IsPlay(p):
		body = s.viewPlay(width)
	case p == phase.Review || p == phase.TwistReview:
		body = s.viewReview(width, p)
	case p == phase.Transfer:
		body = s.viewTransfer(width)
	case p == phase.Test:
		body = s.viewTest(width)
	case p == phase.Mastery:
		body = s.viewMastery(width)
	}

	content := s.viewTrack(width) + "\n\n" + body

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(content)
}

// viewTrack renders the ten-phase journey line.
func (s *LabScreen) viewTrack(width int) string {
	all := phase.All()
	labels := make([]string, len(all))
	for i, p := range all {
		labels[i] = phase.DisplayName(p)
	}
	track := components.PhaseTrack{
		Labels:  labels,
		Current: phase.Index(s.lab.Controller.Current()),
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(track.View())
}

func (s *LabScreen) viewHook(width int) string {
	marker := "◦"
	if s.pulse%2 == 0 {
		marker = "●"
	}
	pulse := lipgloss.NewStyle().Foreground(theme.Accent).Render(marker)

	hook := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width-8, 64)).
		Render(s.lab.Pack.HookText)

	card := theme.Card.Render(pulse + "  " + s.lab.Def.Tagline + "\n\n" + hook)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card) +
		"\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render("press N when you are ready to call your shot")
}

func (s *LabScreen) viewPredict(width int) string {
	header := theme.Subtitle.Width(width).Render("Before touching anything — what do you expect?")
	body := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.choice.View())

	note := ""
	if s.choice.Committed() {
		note = theme.Hint.Width(width).Align(lipgloss.Center).Render("prediction locked in — press N to start experimenting")
	}
	return header + "\n\n" + body + "\n" + note
}

func (s *LabScreen) viewPlay(width int) string {
	specs := s.lab.Params().Specs()

	var left strings.Builder
	for i, spec := range specs {
		sl := components.Slider{
			Label:   spec.Label,
			Unit:    spec.Unit,
			Min:     spec.Min,
			Max:     spec.Max,
			Value:   s.lab.Params().Get(spec.Name),
			Enum:    spec.Enum,
			Width:   24,
			Focused: i == s.paramSel,
		}
		left.WriteString(sl.View() + "\n")
	}

	if s.editingValue {
		left.WriteString("\n" + theme.MetricLabel.Render(specs[s.paramSel].Label+" = ") +
			s.valueEntry.View() + "\n")
	}

	var right strings.Builder
	right.WriteString(theme.MetricLabel.Render("Readings") + "\n")
	for _, m := range s.lab.Metrics().Items {
		right.WriteString(fmt.Sprintf("%s  %s %s\n",
			theme.MetricLabel.Render(fmt.Sprintf("%-22s", m.Label)),
			theme.MetricValue.Render(fmt.Sprintf("%10.4g", m.Value)),
			theme.MetricLabel.Render(m.Unit)))
	}

	if grid := s.lab.Grid(); len(grid) > 0 {
		g := components.Grid{Cells: grid, Columns: 20}
		right.WriteString("\n" + theme.MetricLabel.Render(fmt.Sprintf("sample map (seed %d)", s.lab.Seed())) + "\n")
		right.WriteString(g.View() + "\n")
	}

	if conns := s.lab.Metrics().Connections; len(conns) > 0 {
		right.WriteString("\n" + theme.MetricLabel.Render("links") + " ")
		parts := make([]string, 0, len(conns))
		for _, c := range conns {
			parts = append(parts, fmt.Sprintf("%d–%d", c[0], c[1]))
		}
		right.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Width(max(width/2-8, 16)).Render(strings.Join(parts, " ")))
	}

	trials := s.trialStatus()
	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Card.Render(left.String()),
		"  ",
		theme.Card.Render(right.String()))

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(cols) + "\n" + trials
}

func (s *LabScreen) trialStatus() string {
	need := s.lab.Def.Gates.MinTrials
	if need <= 0 {
		return ""
	}
	p := s.lab.Controller.Current()
	done := s.lab.TrialCount(p)
	if done >= need {
		return theme.Correct.Render(fmt.Sprintf("  %d experiments run — gate open", done))
	}
	return theme.Hint.Render(fmt.Sprintf("  run %d more experiment(s) to move on", need-done))
}

func (s *LabScreen) viewReview(width int, p phase.Phase) string {
	predictPhase := phase.Predict
	if p == phase.TwistReview {
		predictPhase = phase.TwistPredict
	}

	var b strings.Builder
	if ps, ok := s.lab.Pack.Prediction(string(predictPhase)); ok {
		b.WriteString(theme.MetricLabel.Render("You predicted") + "\n")
		if c := s.lab.Prediction(predictPhase); c >= 0 && c < len(ps.Options) {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(ps.Options[c]) + "\n\n")
		} else {
			b.WriteString("  " + theme.Hint.Render("(no prediction recorded)") + "\n\n")
		}
	}

	b.WriteString(theme.MetricLabel.Render("The readings say") + "\n")
	for _, m := range s.lab.Metrics().Items {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			theme.MetricLabel.Render(fmt.Sprintf("%-22s", m.Label)),
			theme.MetricValue.Render(fmt.Sprintf("%10.4g", m.Value)),
			theme.MetricLabel.Render(m.Unit)))
	}

	if text, ok := s.coachText[p]; ok {
		b.WriteString("\n" + theme.MetricLabel.Render("Coach") + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Italic(true).
			Width(min(width-12, 60)).Render(text) + "\n")
	} else if s.coachBusy {
		b.WriteString("\n" + theme.Hint.Render("coach is thinking…") + "\n")
	} else if s.coachErr != "" {
		b.WriteString("\n" + theme.Hint.Render(s.coachErr) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(b.String()))
}

func (s *LabScreen) viewTransfer(width int) string {
	header := theme.Subtitle.Width(width).Render("Same principle, different places — read each one")

	var b strings.Builder
	for i, item := range s.lab.Pack.Transfer {
		box := "☐"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.lab.AckedTransfer(i) {
			box = "☑"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		prefix := "  "
		if i == s.ackSel {
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Width(min(width-12, 64)).Render(box+" "+item) + "\n\n")
	}

	return header + "\n\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(b.String()))
}

func (s *LabScreen) viewTest(width int) string {
	if s.lab.Quiz.Submitted() {
		return s.viewQuizResult(width)
	}

	counter := theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Question %d of %d", s.quizIdx+1, s.lab.Quiz.Len()))
	body := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.choice.View())

	note := ""
	if s.choice.Revealed {
		if text, ok := s.coachText[phase.Test]; ok && !s.choice.IsCorrect() {
			note = lipgloss.NewStyle().Foreground(theme.Text).Italic(true).
				Width(width).Align(lipgloss.Center).Render(text) + "\n"
		}
		note += theme.Hint.Width(width).Align(lipgloss.Center).Render("Enter for the next question")
	}
	return counter + "\n\n" + body + "\n" + note
}

func (s *LabScreen) viewQuizResult(width int) string {
	score := s.lab.Quiz.Score()
	threshold := s.lab.PassThreshold()

	var headline, hint string
	if s.lab.QuizPassed() {
		headline = theme.Correct.Render(fmt.Sprintf("%d / %d — passed!", score, s.lab.Quiz.Len()))
		hint = "press N to claim mastery"
	} else {
		headline = theme.Incorrect.Render(fmt.Sprintf("%d / %d — you need %d", score, s.lab.Quiz.Len(), threshold))
		hint = "press R to retake the quiz"
	}

	bar := components.NewProgressBar("", float64(score)/float64(s.lab.Quiz.Len()), false, 30)

	card := theme.Card.Render(headline + "\n\n" + bar.View())
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card) +
		"\n\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(hint)
}

func (s *LabScreen) viewMastery(width int) string {
	title := theme.Title.Width(width).Render("★ Mastery ★")
	sub := theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s — quiz %d/%d", s.lab.Def.Title, s.lab.Quiz.Score(), s.lab.Quiz.Len()))
	hint := theme.Hint.Width(width).Align(lipgloss.Center).Render("Esc returns to the lab picker")
	return title + "\n" + sub + "\n\n" + hint
}
