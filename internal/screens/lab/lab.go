// Package lab is the screen for one running lab session. It renders
// whichever phase the session controller is in and translates keys into
// engine calls; all gating and debouncing stays in the engine.
package lab

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/simz/internal/coach"
	"github.com/abhisek/simz/internal/phase"
	"github.com/abhisek/simz/internal/screen"
	"github.com/abhisek/simz/internal/session"
	"github.com/abhisek/simz/internal/ui/components"
	"github.com/abhisek/simz/internal/ui/layout"
)

const (
	pulseInterval = 400 * time.Millisecond
	coachTimeout  = 20 * time.Second
)

// LabScreen drives one lab session.
type LabScreen struct {
	lab   *session.Lab
	coach *coach.Coach

	// lastPhase detects transitions so per-phase widgets get rebuilt.
	lastPhase phase.Phase

	choice   components.MultiChoice // prediction or quiz chooser
	paramSel int
	ackSel   int
	quizIdx  int

	valueEntry   components.ValueInput // direct numeric entry for a parameter
	editingValue bool

	coachText map[phase.Phase]string
	coachBusy bool
	coachErr  string

	pulse int
}

var _ screen.Screen = (*LabScreen)(nil)
var _ screen.KeyHintProvider = (*LabScreen)(nil)

// New creates the screen over an already-constructed session.
func New(run *session.Lab, c *coach.Coach) *LabScreen {
	s := &LabScreen{
		lab:       run,
		coach:     c,
		lastPhase: run.Controller.Current(),
		coachText: make(map[phase.Phase]string),
	}
	s.syncPhase()
	return s
}

func (s *LabScreen) Init() tea.Cmd {
	return s.pulseTick()
}

func (s *LabScreen) Title() string {
	return s.lab.Def.Title
}

// CapturingInput reports whether a value entry currently owns the
// keyboard, so the app shell leaves esc to this screen.
func (s *LabScreen) CapturingInput() bool {
	return s.editingValue
}

// PhaseInfo feeds the header's right-hand slot.
func (s *LabScreen) PhaseInfo() string {
	p := s.lab.Controller.Current()
	return phase.DisplayName(p)
}

func (s *LabScreen) pulseTick() tea.Cmd {
	return tea.Tick(pulseInterval, func(t time.Time) tea.Msg {
		return pulseTickMsg(t)
	})
}

func (s *LabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pulseTickMsg:
		s.pulse++
		if s.lab.Controller.Current() == phase.Hook {
			return s, s.pulseTick()
		}
		return s, nil

	case coachReadyMsg:
		s.coachBusy = false
		if msg.Err != nil {
			s.coachErr = "coach unavailable right now"
			return s, nil
		}
		s.coachErr = ""
		if p, ok := phase.Parse(msg.Phase); ok {
			s.coachText[p] = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *LabScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// A value entry in progress captures every key.
	if s.editingValue && phase.IsPlay(s.lab.Controller.Current()) {
		return s.updateValueEntry(msg)
	}

	// Phase navigation is global; everything else is per phase.
	switch msg.String() {
	case "n":
		s.lab.Controller.GoNext()
		return s, s.afterNav()
	case "b":
		s.lab.Controller.GoBack()
		return s, s.afterNav()
	}

	switch p := s.lab.Controller.Current(); {
	case phase.IsPredict(p):
		return s.updatePredict(msg)
	case phase.IsPlay(p):
		return s.updatePlay(msg)
	case p == phase.Review || p == phase.TwistReview:
		return s.updateReview(msg)
	case p == phase.Transfer:
		return s.updateTransfer(msg)
	case p == phase.Test:
		return s.updateTest(msg)
	case p == phase.Mastery:
		return s.updateMastery(msg)
	}
	return s, nil
}

// afterNav refreshes phase-local widgets after a transition attempt.
// A blocked or debounced transition leaves the phase unchanged and this
// is a no-op.
func (s *LabScreen) afterNav() tea.Cmd {
	p := s.lab.Controller.Current()
	if p == s.lastPhase {
		return nil
	}
	s.lastPhase = p
	s.syncPhase()
	if p == phase.Hook {
		return s.pulseTick()
	}
	return nil
}

// syncPhase rebuilds the widgets the current phase needs.
func (s *LabScreen) syncPhase() {
	p := s.lab.Controller.Current()
	switch {
	case phase.IsPredict(p):
		ps, ok := s.lab.Pack.Prediction(string(p))
		if !ok {
			return
		}
		s.choice = components.NewMultiChoice(ps.Prompt, ps.Options, -1)
		if prev := s.lab.Prediction(p); prev >= 0 {
			s.choice.Chosen = prev
			s.choice.Selected = prev
		}
	case phase.IsPlay(p):
		s.paramSel = 0
		s.editingValue = false
	case p == phase.Transfer:
		s.ackSel = 0
	case p == phase.Test:
		s.quizIdx = s.firstOpenQuestion()
		s.syncQuestion()
	}
}

func (s *LabScreen) firstOpenQuestion() int {
	for i := 0; i < s.lab.Quiz.Len(); i++ {
		if s.lab.Quiz.Answer(i) < 0 {
			return i
		}
	}
	return s.lab.Quiz.Len() - 1
}

func (s *LabScreen) syncQuestion() {
	q, ok := s.lab.Quiz.Question(s.quizIdx)
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
	s.choice.Explanation = q.Explanation
	if prev := s.lab.Quiz.Answer(s.quizIdx); prev >= 0 {
		s.choice.Chosen = prev
		s.choice.Selected = prev
		s.choice.Reveal()
	}
}

func (s *LabScreen) updatePredict(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	before := s.choice.Chosen
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Chosen != before && s.choice.Chosen >= 0 {
		s.lab.ChoosePrediction(s.choice.Chosen)
	}
	return s, cmd
}

func (s *LabScreen) updatePlay(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	specs := s.lab.Params().Specs()
	if len(specs) == 0 {
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.paramSel > 0 {
			s.paramSel--
		}
	case "down", "j":
		if s.paramSel < len(specs)-1 {
			s.paramSel++
		}
	case "left", "h":
		s.lab.StepParam(specs[s.paramSel].Name, -1)
	case "right", "l":
		s.lab.StepParam(specs[s.paramSel].Name, 1)
	case "r":
		if s.lab.Def.GridCells > 0 {
			s.lab.Reseed(time.Now().UnixNano())
		}
	case "v":
		spec := specs[s.paramSel]
		if len(spec.Enum) == 0 {
			current := strconv.FormatFloat(s.lab.Params().Get(spec.Name), 'g', -1, 64)
			s.valueEntry = components.NewValueInput(current, 12)
			s.editingValue = true
			return s, s.valueEntry.Init()
		}
	}
	return s, nil
}

// updateValueEntry drives the direct-entry field shown over a slider.
func (s *LabScreen) updateValueEntry(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editingValue = false
		return s, nil
	case "enter":
		v, err := s.valueEntry.NumericValue()
		if err != nil {
			s.valueEntry.Submit(false)
			return s, nil
		}
		specs := s.lab.Params().Specs()
		s.lab.SetParam(specs[s.paramSel].Name, v)
		s.editingValue = false
		return s, nil
	}

	var cmd tea.Cmd
	s.valueEntry, cmd = s.valueEntry.Update(msg)
	return s, cmd
}

func (s *LabScreen) updateReview(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "c" || s.coach == nil || s.coachBusy {
		return s, nil
	}

	p := s.lab.Controller.Current()
	if _, ok := s.coachText[p]; ok {
		return s, nil
	}

	predictPhase := phase.Predict
	if p == phase.TwistReview {
		predictPhase = phase.TwistPredict
	}
	ps, ok := s.lab.Pack.Prediction(string(predictPhase))
	choice := s.lab.Prediction(predictPhase)
	if !ok || choice < 0 || choice >= len(ps.Options) {
		return s, nil
	}

	s.coachBusy = true
	c := s.coach
	title := s.lab.Def.Title
	prediction := ps.Options[choice]
	metrics := s.lab.Metrics()
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
		defer cancel()
		text, err := c.ReviewInsight(ctx, title, prediction, metrics)
		return coachReadyMsg{Phase: string(p), Text: text, Err: err}
	}
}

func (s *LabScreen) updateTransfer(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	items := s.lab.Pack.Transfer
	if len(items) == 0 {
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.ackSel > 0 {
			s.ackSel--
		}
	case "down", "j":
		if s.ackSel < len(items)-1 {
			s.ackSel++
		}
	case "enter", " ":
		s.lab.AckTransfer(s.ackSel)
	}
	return s, nil
}

func (s *LabScreen) updateTest(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.lab.Quiz.Submitted() {
		if msg.String() == "r" {
			s.lab.RetakeQuiz()
			s.quizIdx = 0
			s.syncQuestion()
		}
		return s, nil
	}

	// An already-graded question only accepts moving on.
	if s.choice.Revealed {
		if msg.String() == "enter" {
			return s, s.advanceQuestion()
		}
		return s, nil
	}

	before := s.choice.Chosen
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Chosen != before && s.choice.Chosen >= 0 {
		s.lab.RecordAnswer(s.quizIdx, s.choice.Chosen)
		s.choice.Reveal()
		if s.coach != nil && !s.choice.IsCorrect() {
			return s, s.explainWrongAnswer()
		}
	}
	return s, cmd
}

func (s *LabScreen) advanceQuestion() tea.Cmd {
	if s.quizIdx < s.lab.Quiz.Len()-1 {
		s.quizIdx++
		s.syncQuestion()
		return nil
	}
	if s.lab.Quiz.Complete() {
		s.lab.SubmitQuiz()
	}
	return nil
}

// explainWrongAnswer asks the coach for a short explanation of a missed
// question.
func (s *LabScreen) explainWrongAnswer() tea.Cmd {
	q, ok := s.lab.Quiz.Question(s.quizIdx)
	if !ok {
		return nil
	}
	c := s.coach
	title := s.lab.Def.Title
	chosen := s.choice.Chosen
	s.coachBusy = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coachTimeout)
		defer cancel()
		text, err := c.ExplainAnswer(ctx, title, q, chosen)
		return coachReadyMsg{Phase: string(phase.Test), Text: text, Err: err}
	}
}

func (s *LabScreen) updateMastery(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *LabScreen) KeyHints() []layout.KeyHint {
	nav := []layout.KeyHint{
		{Key: "N", Description: "Next"},
		{Key: "B", Description: "Back"},
	}

	switch p := s.lab.Controller.Current(); {
	case phase.IsPredict(p):
		return append([]layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Commit"},
		}, nav...)
	case phase.IsPlay(p):
		if s.editingValue {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Set"},
				{Key: "Esc", Description: "Cancel"},
			}
		}
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Parameter"},
			{Key: "←→", Description: "Adjust"},
			{Key: "V", Description: "Type value"},
		}
		if s.lab.Def.GridCells > 0 {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Resample"})
		}
		return append(hints, nav...)
	case p == phase.Review || p == phase.TwistReview:
		if s.coach != nil {
			return append([]layout.KeyHint{{Key: "C", Description: "Coach insight"}}, nav...)
		}
		return nav
	case p == phase.Transfer:
		return append([]layout.KeyHint{
			{Key: "↑↓", Description: "Item"},
			{Key: "Enter", Description: "Mark read"},
		}, nav...)
	case p == phase.Test:
		if s.lab.Quiz.Submitted() && !s.lab.QuizPassed() {
			return append([]layout.KeyHint{{Key: "R", Description: "Retake"}}, nav...)
		}
		return append([]layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
		}, nav...)
	}
	return nav
}
