package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/simz/internal/events"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, "s1", "circuit", events.PredictionMade{Phase: "predict", Choice: 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(ctx, "s1", "circuit", events.CorrectAnswer{}); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Newest first.
	if rows[0].Kind != string(events.KindCorrectAnswer) {
		t.Errorf("rows[0].Kind = %s", rows[0].Kind)
	}
	if rows[1].Kind != string(events.KindPredictionMade) {
		t.Errorf("rows[1].Kind = %s", rows[1].Kind)
	}
	if rows[1].Payload == "" || rows[1].Lab != "circuit" || rows[1].SessionID != "s1" {
		t.Errorf("row fields not persisted: %+v", rows[1])
	}
	if rows[0].Sequence <= rows[1].Sequence {
		t.Errorf("sequence not monotonic: %d then %d", rows[1].Sequence, rows[0].Sequence)
	}
}

func TestSessionEventsOrdered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Append(ctx, "a", "yield", events.PhaseChanged{From: "hook", To: "predict"})
	s.Append(ctx, "b", "yield", events.PhaseChanged{From: "hook", To: "predict"})
	s.Append(ctx, "a", "yield", events.PhaseChanged{From: "predict", To: "play"})

	rows, err := s.SessionEvents(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows for session a, want 2", len(rows))
	}
	if rows[0].Sequence >= rows[1].Sequence {
		t.Error("session events not in append order")
	}
}

func TestSinkSwallowsNothingOnHealthyDB(t *testing.T) {
	s := openTestStore(t)
	sink := s.Sink("s9", "interconnect")

	sink.Emit(events.MasteryAchieved{})

	rows, err := s.Recent(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Kind != string(events.KindMasteryAchieved) {
		t.Errorf("sink did not persist event: %+v", rows)
	}
}

func TestRecentLimitDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Append(ctx, "s", "circuit", events.CorrectAnswer{})
	}
	rows, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}
