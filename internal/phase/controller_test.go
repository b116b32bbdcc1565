package phase

import (
	"testing"
	"time"

	"github.com/abhisek/simz/internal/events"
)

// fakeClock is a manually advanced clock for cooldown tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestController(gate Gate, sink events.Sink) (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewController(Config{Now: clock.now}, gate, sink)
	return c, clock
}

func TestController_DefaultsToHook(t *testing.T) {
	c, _ := newTestController(nil, nil)
	if c.Current() != Hook {
		t.Errorf("Current() = %s, want hook", c.Current())
	}
}

func TestController_ResumeValid(t *testing.T) {
	c := NewController(Config{Resume: "transfer"}, nil, nil)
	if c.Current() != Transfer {
		t.Errorf("Current() = %s, want transfer", c.Current())
	}
}

func TestController_ResumeInvalidFallsBack(t *testing.T) {
	for _, resume := range []string{"", "warmup", "TEST"} {
		c := NewController(Config{Resume: resume}, nil, nil)
		if c.Current() != Hook {
			t.Errorf("Resume %q: Current() = %s, want hook", resume, c.Current())
		}
	}
}

func TestController_NineStepsReachMastery(t *testing.T) {
	// Every gate forced true: hook + 9 GoNext calls must land on mastery,
	// and a tenth call must be a no-op.
	c, clock := newTestController(GateFunc(func(Phase) bool { return true }), nil)

	for i := 0; i < 9; i++ {
		c.GoNext()
		clock.advance(DefaultCooldown + time.Millisecond)
	}
	if c.Current() != Mastery {
		t.Fatalf("after 9 GoNext calls Current() = %s, want mastery", c.Current())
	}

	c.GoNext()
	if c.Current() != Mastery {
		t.Errorf("GoNext at mastery moved to %s", c.Current())
	}
}

func TestController_GateBlocksGoNext(t *testing.T) {
	c, _ := newTestController(GateFunc(func(Phase) bool { return false }), nil)
	c.GoNext()
	if c.Current() != Hook {
		t.Errorf("gated GoNext moved to %s", c.Current())
	}
	if c.CanAdvance() {
		t.Error("CanAdvance() = true with a closed gate")
	}
}

func TestController_GoBackUngated(t *testing.T) {
	c, clock := newTestController(GateFunc(func(Phase) bool { return false }), nil)
	c.GoTo(Review)
	clock.advance(time.Second)

	c.GoBack()
	if c.Current() != Play {
		t.Errorf("GoBack from review = %s, want play", c.Current())
	}

	// At the first phase GoBack is a no-op.
	c2, _ := newTestController(nil, nil)
	c2.GoBack()
	if c2.Current() != Hook {
		t.Errorf("GoBack at hook moved to %s", c2.Current())
	}
}

func TestController_GoToInvalidTarget(t *testing.T) {
	c, _ := newTestController(nil, nil)
	c.GoTo(Phase("nonsense"))
	if c.Current() != Hook {
		t.Errorf("invalid GoTo moved to %s", c.Current())
	}
}

func TestController_CooldownDropsSecondRequest(t *testing.T) {
	// Two GoTo(test) requests inside the cooldown window: only the first
	// lands and exactly one phase-changed event fires.
	rec := &events.Recorder{}
	c, clock := newTestController(nil, rec)

	c.GoTo(Test)
	clock.advance(50 * time.Millisecond)
	c.GoTo(Mastery)

	if c.Current() != Test {
		t.Errorf("Current() = %s, want test", c.Current())
	}
	if n := rec.Count(events.KindPhaseChanged); n != 1 {
		t.Errorf("phase-changed events = %d, want 1", n)
	}
}

func TestController_CooldownExpires(t *testing.T) {
	c, clock := newTestController(nil, nil)
	c.GoTo(Play)
	clock.advance(DefaultCooldown + time.Millisecond)
	c.GoTo(Test)
	if c.Current() != Test {
		t.Errorf("Current() = %s, want test after cooldown elapsed", c.Current())
	}
}

func TestController_SinkReentrancyDropped(t *testing.T) {
	// A sink that navigates during emission must not start a nested
	// transition.
	var c *Controller
	sink := events.SinkFunc(func(events.Event) {
		c.GoTo(Mastery)
	})
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c = NewController(Config{Now: clock.now}, nil, sink)

	c.GoTo(Predict)
	if c.Current() != Predict {
		t.Errorf("Current() = %s, want predict", c.Current())
	}
}

func TestController_SyncBypassesGate(t *testing.T) {
	rec := &events.Recorder{}
	c, _ := newTestController(GateFunc(func(Phase) bool { return false }), rec)

	c.Sync("test")
	if c.Current() != Test {
		t.Errorf("Sync(test): Current() = %s, want test", c.Current())
	}
	if n := rec.Count(events.KindPhaseChanged); n != 1 {
		t.Errorf("phase-changed events = %d, want 1", n)
	}

	// Invalid external values are ignored.
	c.Sync("limbo")
	if c.Current() != Test {
		t.Errorf("Sync(limbo) moved to %s", c.Current())
	}

	// Syncing to the current phase emits nothing.
	c.Sync("test")
	if n := rec.Count(events.KindPhaseChanged); n != 1 {
		t.Errorf("redundant Sync emitted extra events: %d", n)
	}
}

func TestController_EventPayload(t *testing.T) {
	rec := &events.Recorder{}
	c, _ := newTestController(nil, rec)
	c.GoTo(Predict)

	if len(rec.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.Events))
	}
	pc, ok := rec.Events[0].(events.PhaseChanged)
	if !ok {
		t.Fatalf("event type = %T, want PhaseChanged", rec.Events[0])
	}
	if pc.From != "hook" || pc.To != "predict" {
		t.Errorf("PhaseChanged = %s→%s, want hook→predict", pc.From, pc.To)
	}
	if pc.Timestamp.IsZero() {
		t.Error("PhaseChanged.Timestamp is zero")
	}
}
