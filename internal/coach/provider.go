// Package coach generates short explanations for lab learners through
// an LLM provider. The engine works fully without it; hosts wire a
// provider in when an API key is available.
package coach

import "context"

// Provider is the abstraction over LLM backends. Coaching is always
// single-turn plain text, so the surface is much smaller than a full
// chat API.
type Provider interface {
	// Generate sends one prompt and returns the model's text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the single user message.
	Prompt string

	// MaxTokens bounds the reply length.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Response holds the model's output.
type Response struct {
	// Text is the generated reply.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
