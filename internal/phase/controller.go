package phase

import (
	"time"

	"github.com/abhisek/simz/internal/events"
)

// DefaultCooldown is the debounce window started after every successful
// transition. Navigation requests inside the window are dropped. This
// guards against rapid repeated input; it is not a timeout on the phase.
const DefaultCooldown = 400 * time.Millisecond

// Gate decides whether forward navigation out of a phase is currently
// allowed. GoBack is never gated.
type Gate interface {
	CanLeave(p Phase) bool
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func(p Phase) bool

func (f GateFunc) CanLeave(p Phase) bool { return f(p) }

// openGate permits every forward transition.
type openGate struct{}

func (openGate) CanLeave(Phase) bool { return true }

// Config holds controller construction options. The zero value is usable.
type Config struct {
	// Resume is an externally supplied initial phase. Empty or invalid
	// values fall back to the first phase.
	Resume string

	// Cooldown overrides DefaultCooldown when > 0.
	Cooldown time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Controller owns the current phase and mediates every transition.
// Invalid targets, gated transitions and requests inside the cooldown
// window are silently dropped; no error surfaces beyond the unchanged
// resulting phase.
type Controller struct {
	current       Phase
	cooldown      time.Duration
	cooldownUntil time.Time
	transitioning bool
	gate          Gate
	sink          events.Sink
	now           func() time.Time
}

// NewController creates a controller at cfg.Resume (or the first phase)
// reporting transitions to sink and consulting gate on GoNext.
// gate and sink may be nil.
func NewController(cfg Config, gate Gate, sink events.Sink) *Controller {
	if gate == nil {
		gate = openGate{}
	}
	if sink == nil {
		sink = events.Discard
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	current := Hook
	if p, ok := Parse(cfg.Resume); ok {
		current = p
	}

	return &Controller{
		current:  current,
		cooldown: cooldown,
		gate:     gate,
		sink:     sink,
		now:      now,
	}
}

// Current returns the current phase.
func (c *Controller) Current() Phase {
	return c.current
}

// GoTo transitions to target. No-op when target is outside the phase set,
// a transition is already in flight, or the cooldown has not elapsed.
func (c *Controller) GoTo(target Phase) {
	if !Valid(target) {
		return
	}
	c.transition(target)
}

// GoNext advances to the next phase in the total order. No-op at the
// terminal phase or while the current phase's gate predicate is false.
func (c *Controller) GoNext() {
	next, ok := Next(c.current)
	if !ok {
		return
	}
	if !c.gate.CanLeave(c.current) {
		return
	}
	c.transition(next)
}

// GoBack moves to the preceding phase. No-op at the first phase.
// Backward navigation is never gated, only debounced.
func (c *Controller) GoBack() {
	prev, ok := Prev(c.current)
	if !ok {
		return
	}
	c.transition(prev)
}

// CanAdvance reports whether GoNext would currently be honored, ignoring
// the cooldown. The UI uses this to withhold the forward affordance.
func (c *Controller) CanAdvance() bool {
	if _, ok := Next(c.current); !ok {
		return false
	}
	return c.gate.CanLeave(c.current)
}

// Sync re-synchronizes to an externally changed phase value, bypassing
// gating. This is the sanctioned escape hatch for resume: the host owns
// the authoritative phase and the controller follows it. The value is
// still validated against the phase set and still emits phase-changed.
func (c *Controller) Sync(external string) {
	p, ok := Parse(external)
	if !ok || p == c.current {
		return
	}
	from := c.current
	c.current = p
	c.emit(from, p)
}

// transition applies the debounce and re-entrancy guards, then commits.
func (c *Controller) transition(target Phase) {
	if c.transitioning {
		return
	}
	ts := c.now()
	if ts.Before(c.cooldownUntil) {
		return
	}
	if target == c.current {
		return
	}

	from := c.current
	c.current = target
	c.cooldownUntil = ts.Add(c.cooldown)
	c.emit(from, target)
}

// emit notifies the sink with the re-entrancy guard held, so a sink that
// calls back into the controller cannot start a nested transition.
func (c *Controller) emit(from, to Phase) {
	c.transitioning = true
	defer func() { c.transitioning = false }()
	c.sink.Emit(events.PhaseChanged{
		From:      string(from),
		To:        string(to),
		Timestamp: c.now(),
	})
}
