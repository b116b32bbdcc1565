// Package quiz is the assessment engine behind a lab's test phase: a
// fixed ordered question bank, per-question answer tracking, one-shot
// scoring and a configurable pass threshold.
package quiz

// BankSize is the fixed question count per lab.
const BankSize = 10

// Unanswered marks a question index with no recorded answer.
const Unanswered = -1

// Question is a single multiple-choice item. Immutable; exactly one
// canonical-correct option per question is a content-authoring
// invariant, not enforced here.
type Question struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Engine tracks answers against a fixed bank and scores them once.
type Engine struct {
	bank      []Question
	answers   []int
	submitted bool
	score     int
}

// NewEngine creates an engine over the given bank. The bank is used as
// supplied; order is never changed.
func NewEngine(bank []Question) *Engine {
	answers := make([]int, len(bank))
	for i := range answers {
		answers[i] = Unanswered
	}
	return &Engine{bank: bank, answers: answers}
}

// Len returns the question count.
func (e *Engine) Len() int {
	return len(e.bank)
}

// Question returns the question at index i.
func (e *Engine) Question(i int) (Question, bool) {
	if i < 0 || i >= len(e.bank) {
		return Question{}, false
	}
	return e.bank[i], true
}

// Record stores the chosen option for a question, overwriting any prior
// answer. Permitted only pre-submission; out-of-range indexes and
// post-submission calls are ignored. Returns whether the answer landed.
func (e *Engine) Record(index, option int) bool {
	if e.submitted {
		return false
	}
	if index < 0 || index >= len(e.bank) {
		return false
	}
	if option < 0 || option >= len(e.bank[index].Options) {
		return false
	}
	e.answers[index] = option
	return true
}

// Answer returns the recorded option for a question, or Unanswered.
func (e *Engine) Answer(index int) int {
	if index < 0 || index >= len(e.answers) {
		return Unanswered
	}
	return e.answers[index]
}

// Complete reports whether every question has a recorded answer. The
// caller gates Submit on this; Submit itself does not re-validate.
func (e *Engine) Complete() bool {
	if len(e.bank) == 0 {
		return false
	}
	for _, a := range e.answers {
		if a == Unanswered {
			return false
		}
	}
	return true
}

// Submit computes the score once and freezes the answer set. Repeat
// calls return the same score without recomputing.
func (e *Engine) Submit() int {
	if e.submitted {
		return e.score
	}
	score := 0
	for i, q := range e.bank {
		if e.answers[i] == q.CorrectIndex {
			score++
		}
	}
	e.score = score
	e.submitted = true
	return score
}

// Submitted reports whether the answer set is frozen.
func (e *Engine) Submitted() bool {
	return e.submitted
}

// Score returns the computed score; 0 before submission.
func (e *Engine) Score() int {
	return e.score
}

// Passed reports Score >= threshold after submission.
func (e *Engine) Passed(threshold int) bool {
	return e.submitted && e.score >= threshold
}

// Retake clears the answer set and score, returning the engine to its
// unsubmitted state. The bank and its order are untouched.
func (e *Engine) Retake() {
	for i := range e.answers {
		e.answers[i] = Unanswered
	}
	e.score = 0
	e.submitted = false
}
