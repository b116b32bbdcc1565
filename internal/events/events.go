package events

import "time"

// Kind identifies an event type on the wire.
type Kind string

const (
	KindPhaseChanged    Kind = "phase-changed"
	KindPredictionMade  Kind = "prediction-made"
	KindAnswerSubmitted Kind = "answer-submitted"
	KindCorrectAnswer   Kind = "correct-answer"
	KindIncorrectAnswer Kind = "incorrect-answer"
	KindMasteryAchieved Kind = "mastery-achieved"
)

// Event is a one-way notification to a host collaborator.
// Hosts never respond; emission is fire-and-forget.
type Event interface {
	Kind() Kind
}

// PhaseChanged records a phase transition.
type PhaseChanged struct {
	From      string
	To        string
	Timestamp time.Time
}

func (PhaseChanged) Kind() Kind { return KindPhaseChanged }

// PredictionMade records a prediction choice in a predict phase.
type PredictionMade struct {
	Phase  string
	Choice int
}

func (PredictionMade) Kind() Kind { return KindPredictionMade }

// AnswerSubmitted records a quiz answer selection.
type AnswerSubmitted struct {
	QuestionIndex int
	Choice        int
}

func (AnswerSubmitted) Kind() Kind { return KindAnswerSubmitted }

// CorrectAnswer signals the most recent answer matched the canonical option.
type CorrectAnswer struct{}

func (CorrectAnswer) Kind() Kind { return KindCorrectAnswer }

// IncorrectAnswer signals the most recent answer missed the canonical option.
type IncorrectAnswer struct{}

func (IncorrectAnswer) Kind() Kind { return KindIncorrectAnswer }

// MasteryAchieved signals the quiz was passed at the lab's threshold.
type MasteryAchieved struct{}

func (MasteryAchieved) Kind() Kind { return KindMasteryAchieved }

// Sink receives events from the engine.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// discard drops every event.
type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

// multi fans out to several sinks in order.
type multi struct {
	sinks []Sink
}

func (m multi) Emit(e Event) {
	for _, s := range m.sinks {
		s.Emit(e)
	}
}

// Multi combines sinks into one. Nil entries are skipped.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return Discard
	}
	if len(out) == 1 {
		return out[0]
	}
	return multi{sinks: out}
}

// Recorder is a Sink that retains every event, for tests and previews.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns the number of recorded events of the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind() == k {
			n++
		}
	}
	return n
}
