package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/simz/internal/quiz"
	"github.com/abhisek/simz/internal/sim"
)

func TestExplainAnswer(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "  Current splits across branches. \n"})
	c := New(mock)

	q := quiz.Question{
		Prompt:       "What happens to total resistance when a parallel branch is added?",
		Options:      []string{"It rises", "It falls", "It is unchanged", "It doubles"},
		CorrectIndex: 1,
		Explanation:  "Each extra branch offers another path for current.",
	}

	got, err := c.ExplainAnswer(context.Background(), "Circuit Lab", q, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Current splits across branches." {
		t.Errorf("got %q", got)
	}

	prompt := mock.Calls[0].Prompt
	for _, want := range []string{"Circuit Lab", q.Prompt, "It rises", "It falls", q.Explanation} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExplainAnswerRejectsBadChoice(t *testing.T) {
	c := New(NewMockProvider())
	q := quiz.Question{Options: []string{"a", "b"}}
	if _, err := c.ExplainAnswer(context.Background(), "Lab", q, 5); err == nil {
		t.Error("out-of-range choice should fail before any provider call")
	}
}

func TestReviewInsightIncludesMetrics(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "The reading confirms it."})
	c := New(mock)

	metrics := sim.Metrics{Items: []sim.Metric{
		{Name: "latency_steps", Label: "Worst-case hops", Unit: "hops", Value: 7},
	}}
	_, err := c.ReviewInsight(context.Background(), "Interconnect Lab", "latency will drop", metrics)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mock.Calls[0].Prompt, "Worst-case hops") {
		t.Error("prompt missing observed metric")
	}
}

func TestRetryRecoversFromTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Text: "ok"},
	)
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Microsecond,
		MaxWait:     time.Millisecond,
		Multiplier:  2,
	})

	resp, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "ok" {
		t.Errorf("got %q", resp.Text)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Microsecond, MaxWait: time.Millisecond, Multiplier: 2})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryEmptyResponseOnlyOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrEmptyResponse{}},
		MockResponse{Err: &ErrEmptyResponse{}},
		MockResponse{Text: "never reached"},
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 5, InitialWait: time.Microsecond, MaxWait: time.Millisecond, Multiplier: 2})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Errorf("err = %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("anthropic without key should fail")
	}
	cfg.Anthropic.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected: %v", err)
	}
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock should not need a key: %v", err)
	}
	cfg.Provider = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail")
	}
}
