package phase

// Phase is one step of the fixed 10-step guided sequence.
type Phase string

const (
	Hook         Phase = "hook"
	Predict      Phase = "predict"
	Play         Phase = "play"
	Review       Phase = "review"
	TwistPredict Phase = "twist_predict"
	TwistPlay    Phase = "twist_play"
	TwistReview  Phase = "twist_review"
	Transfer     Phase = "transfer"
	Test         Phase = "test"
	Mastery      Phase = "mastery"
)

// order is the total progression order.
var order = []Phase{
	Hook,
	Predict,
	Play,
	Review,
	TwistPredict,
	TwistPlay,
	TwistReview,
	Transfer,
	Test,
	Mastery,
}

var ordinal = func() map[Phase]int {
	m := make(map[Phase]int, len(order))
	for i, p := range order {
		m[p] = i
	}
	return m
}()

// All returns the phases in progression order.
func All() []Phase {
	out := make([]Phase, len(order))
	copy(out, order)
	return out
}

// Valid reports whether p belongs to the phase set.
func Valid(p Phase) bool {
	_, ok := ordinal[p]
	return ok
}

// Index returns the position of p in the total order, or -1 for unknown phases.
func Index(p Phase) int {
	if i, ok := ordinal[p]; ok {
		return i
	}
	return -1
}

// Next returns the phase following p. ok is false at the terminal phase
// and for unknown phases.
func Next(p Phase) (Phase, bool) {
	i, in := ordinal[p]
	if !in || i == len(order)-1 {
		return p, false
	}
	return order[i+1], true
}

// Prev returns the phase preceding p. ok is false at the first phase
// and for unknown phases.
func Prev(p Phase) (Phase, bool) {
	i, in := ordinal[p]
	if !in || i == 0 {
		return p, false
	}
	return order[i-1], true
}

// Parse converts an externally supplied string into a Phase.
// ok is false when the value is not in the phase set.
func Parse(s string) (Phase, bool) {
	p := Phase(s)
	if Valid(p) {
		return p, true
	}
	return "", false
}

// DisplayName returns a human-readable name for a phase.
func DisplayName(p Phase) string {
	switch p {
	case Hook:
		return "Hook"
	case Predict:
		return "Predict"
	case Play:
		return "Play"
	case Review:
		return "Review"
	case TwistPredict:
		return "Twist: Predict"
	case TwistPlay:
		return "Twist: Play"
	case TwistReview:
		return "Twist: Review"
	case Transfer:
		return "Apply"
	case Test:
		return "Test"
	case Mastery:
		return "Mastery"
	default:
		return string(p)
	}
}

// IsPredict reports whether p is one of the two prediction phases.
func IsPredict(p Phase) bool {
	return p == Predict || p == TwistPredict
}

// IsPlay reports whether p is one of the two free-play phases.
func IsPlay(p Phase) bool {
	return p == Play || p == TwistPlay
}
