// Package gate holds the per-phase completion predicates consulted
// before forward navigation is honored. Predicates are pure functions
// over the session's accumulated interaction state; a false predicate
// leaves GoNext a silent no-op.
package gate

import "github.com/abhisek/simz/internal/phase"

// Progress is the interaction state the predicates read. Implemented by
// the session, never by the phase controller.
type Progress interface {
	// PredictionChosen reports whether a prediction was recorded for the
	// given predict phase.
	PredictionChosen(p phase.Phase) bool

	// TrialCount returns the number of parameter changes made while the
	// given play phase was active.
	TrialCount(p phase.Phase) int

	// TransferAcked reports whether all transfer items are acknowledged.
	TransferAcked() bool

	// QuizPassed reports whether the quiz was submitted at or above the
	// lab's pass threshold.
	QuizPassed() bool
}

// Predicate decides whether forward navigation out of a phase is open.
type Predicate func(st Progress) bool

// Rules maps phases to optional predicates. A nil or missing entry
// leaves the phase ungated.
type Rules map[phase.Phase]Predicate

// CanLeave evaluates the predicate for p, defaulting to open.
func (r Rules) CanLeave(p phase.Phase, st Progress) bool {
	pred, ok := r[p]
	if !ok || pred == nil {
		return true
	}
	return pred(st)
}

// Default builds the standard rule set. minTrials <= 0 leaves the play
// phases ungated — structurally identical labs differ here, so the
// trial requirement is per-lab configuration rather than a constant.
func Default(minTrials int) Rules {
	rules := Rules{
		phase.Predict: func(st Progress) bool {
			return st.PredictionChosen(phase.Predict)
		},
		phase.TwistPredict: func(st Progress) bool {
			return st.PredictionChosen(phase.TwistPredict)
		},
		phase.Transfer: func(st Progress) bool {
			return st.TransferAcked()
		},
		phase.Test: func(st Progress) bool {
			return st.QuizPassed()
		},
	}
	if minTrials > 0 {
		rules[phase.Play] = func(st Progress) bool {
			return st.TrialCount(phase.Play) >= minTrials
		}
		rules[phase.TwistPlay] = func(st Progress) bool {
			return st.TrialCount(phase.TwistPlay) >= minTrials
		}
	}
	return rules
}
