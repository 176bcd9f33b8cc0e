package judge

import (
	"context"
	"time"
)

// Enhancer adapts a Provider to the enhancer contract of the root
// package, letting an LLM give second opinions where the local
// transformer model is not installed.
type Enhancer struct {
	provider Provider
	timeout  time.Duration
}

// NewEnhancer wraps a Provider. timeout bounds each judgment; zero
// means the default from DefaultConfig.
func NewEnhancer(p Provider, timeout time.Duration) *Enhancer {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Enhancer{provider: p, timeout: timeout}
}

// Available reports whether a provider is wired in.
func (e *Enhancer) Available() bool {
	return e.provider != nil
}

// Predict asks the judge whether text is gibberish.
func (e *Enhancer) Predict(ctx context.Context, text string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	j, err := e.provider.Judge(ctx, text)
	if err != nil {
		return false, err
	}
	return j.Gibberish, nil
}
