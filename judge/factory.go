package judge

import "fmt"

// New creates a Provider from configuration, wrapped with retry and
// logging middleware.
func New(cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIJudge(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicJudge(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown judge provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s judge: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	return WithRetry(WithLogging(base), cfg.Retry), nil
}
