package judge

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that records every judgment through
// the ambient structured logger.
type LoggingProvider struct {
	inner Provider
	log   *slog.Logger
}

// WithLogging wraps a Provider with judgment logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p, log: slog.Default()}
}

func (l *LoggingProvider) Judge(ctx context.Context, text string) (*Judgment, error) {
	start := time.Now()
	j, err := l.inner.Judge(ctx, text)
	elapsed := time.Since(start)

	if err != nil {
		l.log.Warn("judgment failed",
			"model", l.inner.ModelID(),
			"elapsed", elapsed,
			"error", err)
		return nil, err
	}

	l.log.Debug("judgment",
		"model", l.inner.ModelID(),
		"elapsed", elapsed,
		"gibberish", j.Gibberish,
		"confidence", j.Confidence)
	return j, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
