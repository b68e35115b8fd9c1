package parser

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"billsight/internal/domain"
	"billsight/internal/port"
)

// DefaultMaxAttempts is the attempt ceiling used when none is configured.
const DefaultMaxAttempts = 5

// Backoff computes the delay before retrying after a throttled attempt:
// Unit * (2^attempt + Linear*attempt + jitter), jitter uniform in [0, 1).
type Backoff struct {
	Unit   time.Duration
	Linear float64
	// Jitter returns a value in [0, 1). Defaults to rand.Float64.
	Jitter func() float64
}

// Delay returns the wait after the 0-indexed attempt.
func (b Backoff) Delay(attempt int) time.Duration {
	unit := b.Unit
	if unit <= 0 {
		unit = time.Second
	}
	jitter := b.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}
	units := math.Pow(2, float64(attempt)) + b.Linear*float64(attempt) + jitter()
	return time.Duration(units * float64(unit))
}

// RetryConfig controls RetryingParser.
type RetryConfig struct {
	MaxAttempts int
	Backoff     Backoff
	// Sleep blocks for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RetryingParser retries a DocumentParser on throttling with exponential
// backoff. Attempts are strictly sequential.
type RetryingParser struct {
	next   port.DocumentParser
	cfg    RetryConfig
	logger *zap.Logger
}

// NewRetryingParser wraps next with bounded throttling retries.
func NewRetryingParser(next port.DocumentParser, cfg RetryConfig, logger *zap.Logger) *RetryingParser {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingParser{next: next, cfg: cfg, logger: logger}
}

func (r *RetryingParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	for attempt := 0; ; attempt++ {
		r.logger.Info("invoking model",
			zap.String("key", input.DocumentKey),
			zap.Int("attempt", attempt+1),
		)

		out, err := r.next.Parse(ctx, input)
		switch Classify(err) {
		case domain.OutcomeSuccess:
			if out == nil {
				return nil, eris.Wrapf(domain.ErrInvalidModelOutput, "empty parse output on attempt %d", attempt+1)
			}
			out.Attempts = attempt + 1
			return out, nil

		case domain.OutcomeTerminalFailure:
			return nil, eris.Wrapf(err, "model invocation failed on attempt %d", attempt+1)
		}

		if attempt+1 >= r.cfg.MaxAttempts {
			r.logger.Error("max retries reached, model is overloaded",
				zap.String("key", input.DocumentKey),
				zap.Int("attempts", attempt+1),
			)
			return nil, eris.Wrapf(domain.ErrModelOverloaded, "%d attempts, last error: %v", attempt+1, err)
		}

		delay := r.cfg.Backoff.Delay(attempt)
		r.logger.Warn("throttled, retrying",
			zap.String("key", input.DocumentKey),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := r.cfg.Sleep(ctx, delay); err != nil {
			return nil, eris.Wrap(err, "waiting to retry model invocation")
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
