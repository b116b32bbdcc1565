package coach

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// middleware.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown coach provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from SIMZ_* variables when set,
// falling back to probing the standard API key variables. Returns an
// error when no provider is configured; callers treat coaching as
// optional.
func NewProviderFromEnv(ctx context.Context) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return NewProvider(ctx, cfg)
	}

	discovered, ok := DiscoverConfig()
	if !ok {
		return nil, fmt.Errorf("no coach provider configured: set SIMZ_COACH_PROVIDER or an API key env var")
	}
	return NewProvider(ctx, discovered)
}
