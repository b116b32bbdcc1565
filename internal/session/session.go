// Package session ties one lab run together: the parameter set and its
// derived metrics, the layout grid, predictions, transfer acks, the quiz
// engine, and the phase controller. One Lab per logical session; nothing
// is shared between instances.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/simz/internal/content"
	"github.com/abhisek/simz/internal/events"
	"github.com/abhisek/simz/internal/gate"
	"github.com/abhisek/simz/internal/layout"
	"github.com/abhisek/simz/internal/phase"
	"github.com/abhisek/simz/internal/quiz"
	"github.com/abhisek/simz/internal/sim"
)

// Config holds session construction options.
type Config struct {
	// Resume is an externally supplied phase to start from; empty or
	// invalid values start at the first phase.
	Resume string

	// SessionID pins the session identity; empty generates a UUID.
	// Hosts set it when the event sink needs the ID up front.
	SessionID string

	// Cooldown overrides the navigation debounce window when > 0.
	Cooldown time.Duration

	// Sink receives engine events; nil discards them.
	Sink events.Sink

	// Seed is the initial layout seed; 0 picks a wall-clock seed.
	Seed int64

	// PassThreshold overrides the lab's quiz pass threshold when > 0.
	PassThreshold int

	// MinTrials overrides the lab's play-phase trial gate when >= 0.
	// Use -1 to keep the lab's declared requirement.
	MinTrials int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Lab is the runtime state of one guided lab session.
type Lab struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Domain is the formula plug-in driving the metrics.
	Domain sim.Domain

	// Def caches Domain.Definition().
	Def sim.Definition

	// Pack is the read-only content collaborator.
	Pack *content.Pack

	// Controller owns the current phase.
	Controller *phase.Controller

	// Quiz tracks answers against the pack's question bank.
	Quiz *quiz.Engine

	params  *sim.Params
	metrics sim.Metrics

	seed int64
	grid []bool

	predictions map[phase.Phase]int
	trials      map[phase.Phase]int
	acked       map[int]bool

	passThreshold int
	sink          events.Sink
	rules         gate.Rules
}

// New creates a lab session over the given domain and content pack.
func New(d sim.Domain, pack *content.Pack, cfg Config) *Lab {
	def := d.Definition()

	sink := cfg.Sink
	if sink == nil {
		sink = events.Discard
	}

	threshold := def.PassThreshold
	if cfg.PassThreshold > 0 {
		threshold = cfg.PassThreshold
	}
	minTrials := def.Gates.MinTrials
	if cfg.MinTrials >= 0 {
		minTrials = cfg.MinTrials
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lab := &Lab{
		SessionID:     sessionID,
		Domain:        d,
		Def:           def,
		Pack:          pack,
		Quiz:          quiz.NewEngine(pack.Bank()),
		params:        sim.NewParams(def.Params),
		predictions:   make(map[phase.Phase]int),
		trials:        make(map[phase.Phase]int),
		acked:         make(map[int]bool),
		passThreshold: threshold,
		sink:          sink,
		rules:         gate.Default(minTrials),
	}

	lab.Controller = phase.NewController(
		phase.Config{Resume: cfg.Resume, Cooldown: cfg.Cooldown, Now: cfg.Now},
		phase.GateFunc(func(p phase.Phase) bool {
			return lab.rules.CanLeave(p, lab)
		}),
		sink,
	)

	lab.metrics = d.Compute(lab.params)
	lab.Reseed(seed)
	return lab
}

// Params returns the live parameter set. Mutate through SetParam.
func (l *Lab) Params() *sim.Params {
	return l.params
}

// Metrics returns the latest derived snapshot. Never stale: it is
// replaced synchronously inside every parameter mutation.
func (l *Lab) Metrics() sim.Metrics {
	return l.metrics
}

// SetParam stores a clamped parameter value and recomputes the metrics
// and grid atomically. Changes made during a play phase count as trials.
func (l *Lab) SetParam(name string, v float64) {
	if !l.params.Set(name, v) {
		return
	}
	l.recompute()
	l.countTrial()
}

// StepParam nudges a parameter by n declared steps.
func (l *Lab) StepParam(name string, n int) {
	if !l.params.Step(name, n) {
		return
	}
	l.recompute()
	l.countTrial()
}

func (l *Lab) countTrial() {
	if p := l.Controller.Current(); phase.IsPlay(p) {
		l.trials[p]++
	}
}

func (l *Lab) recompute() {
	l.metrics = l.Domain.Compute(l.params)
	if l.Def.GridCells > 0 {
		l.grid = layout.Generate(l.seed, l.Def.GridCells, l.gridProbability())
	}
}

func (l *Lab) gridProbability() float64 {
	v, ok := l.metrics.Value(l.Def.GridProbability)
	if !ok {
		return 0
	}
	return v
}

// Seed returns the current layout seed.
func (l *Lab) Seed() int64 {
	return l.seed
}

// Grid returns the current layout grid; nil for labs without one.
func (l *Lab) Grid() []bool {
	return l.grid
}

// Reseed regenerates the layout grid from a new seed. This is the only
// way to get a fresh sample; the same seed always reproduces the same
// grid.
func (l *Lab) Reseed(seed int64) {
	l.seed = seed
	if l.Def.GridCells > 0 {
		l.grid = layout.Generate(seed, l.Def.GridCells, l.gridProbability())
	}
}

// ChoosePrediction records the choice for the current predict phase and
// emits prediction-made. Ignored outside predict phases and for
// out-of-range options.
func (l *Lab) ChoosePrediction(choice int) {
	p := l.Controller.Current()
	if !phase.IsPredict(p) {
		return
	}
	ps, ok := l.Pack.Prediction(string(p))
	if !ok || choice < 0 || choice >= len(ps.Options) {
		return
	}
	l.predictions[p] = choice
	l.sink.Emit(events.PredictionMade{Phase: string(p), Choice: choice})
}

// Prediction returns the recorded choice for a predict phase, or -1.
func (l *Lab) Prediction(p phase.Phase) int {
	if c, ok := l.predictions[p]; ok {
		return c
	}
	return -1
}

// AckTransfer marks one transfer item as read.
func (l *Lab) AckTransfer(index int) {
	if index < 0 || index >= len(l.Pack.Transfer) {
		return
	}
	l.acked[index] = true
}

// AckedTransfer reports whether a transfer item is acknowledged.
func (l *Lab) AckedTransfer(index int) bool {
	return l.acked[index]
}

// RecordAnswer stores a quiz answer and emits answer-submitted plus the
// matching correct-/incorrect-answer signal.
func (l *Lab) RecordAnswer(index, option int) {
	if !l.Quiz.Record(index, option) {
		return
	}
	l.sink.Emit(events.AnswerSubmitted{QuestionIndex: index, Choice: option})

	q, _ := l.Quiz.Question(index)
	if option == q.CorrectIndex {
		l.sink.Emit(events.CorrectAnswer{})
	} else {
		l.sink.Emit(events.IncorrectAnswer{})
	}
}

// SubmitQuiz scores the answer set once and emits mastery-achieved when
// the score meets the lab's threshold. Safe to call repeatedly.
func (l *Lab) SubmitQuiz() (score int, passed bool) {
	already := l.Quiz.Submitted()
	score = l.Quiz.Submit()
	passed = l.Quiz.Passed(l.passThreshold)
	if passed && !already {
		l.sink.Emit(events.MasteryAchieved{})
	}
	return score, passed
}

// RetakeQuiz clears the answer set for another attempt.
func (l *Lab) RetakeQuiz() {
	l.Quiz.Retake()
}

// PassThreshold returns the effective quiz pass threshold.
func (l *Lab) PassThreshold() int {
	return l.passThreshold
}

// gate.Progress implementation — the phase predicates read this state.

func (l *Lab) PredictionChosen(p phase.Phase) bool {
	_, ok := l.predictions[p]
	return ok
}

func (l *Lab) TrialCount(p phase.Phase) int {
	return l.trials[p]
}

func (l *Lab) TransferAcked() bool {
	if len(l.Pack.Transfer) == 0 {
		return false
	}
	for i := range l.Pack.Transfer {
		if !l.acked[i] {
			return false
		}
	}
	return true
}

func (l *Lab) QuizPassed() bool {
	return l.Quiz.Passed(l.passThreshold)
}

var _ gate.Progress = (*Lab)(nil)
