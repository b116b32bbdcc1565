package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/simz/internal/quiz"
	"github.com/abhisek/simz/internal/sim"
)

const systemPrompt = `You are a friendly lab coach inside a terminal
learning app. The learner just worked through an interactive simulation.
Answer in at most three short sentences of plain text. Explain the
underlying cause-and-effect, never just restate the correct option.`

// Coach turns lab context into short generated explanations.
type Coach struct {
	provider Provider
}

// New creates a Coach on top of a provider.
func New(p Provider) *Coach {
	return &Coach{provider: p}
}

// ExplainAnswer generates a short explanation for a missed quiz
// question.
func (c *Coach) ExplainAnswer(ctx context.Context, labTitle string, q quiz.Question, chosen int) (string, error) {
	if chosen < 0 || chosen >= len(q.Options) {
		return "", fmt.Errorf("chosen option %d out of range", chosen)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lab: %s\n", labTitle)
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	fmt.Fprintf(&b, "The learner answered %q, but the correct answer is %q.\n",
		q.Options[chosen], q.Options[q.CorrectIndex])
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Reference explanation: %s\n", q.Explanation)
	}
	b.WriteString("Explain why the learner's choice is wrong and the correct one is right.")

	resp, err := c.provider.Generate(ctx, Request{
		System:      systemPrompt,
		Prompt:      b.String(),
		MaxTokens:   300,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// ReviewInsight generates a comparison between a prediction made before
// the play phase and the metrics the learner then observed.
func (c *Coach) ReviewInsight(ctx context.Context, labTitle, prediction string, metrics sim.Metrics) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Lab: %s\n", labTitle)
	fmt.Fprintf(&b, "Before experimenting, the learner predicted: %q\n", prediction)
	b.WriteString("They then observed these readings:\n")
	for _, m := range metrics.Items {
		fmt.Fprintf(&b, "  %s: %.4g %s\n", m.Label, m.Value, m.Unit)
	}
	b.WriteString("Point out whether the readings support the prediction and what to look at next.")

	resp, err := c.provider.Generate(ctx, Request{
		System:      systemPrompt,
		Prompt:      b.String(),
		MaxTokens:   300,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
