package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 2 * time.Second
)

// Retryer re-runs an operation with linearly growing delays: the wait before
// retry n is n*BaseDelay.
type Retryer struct {
	Attempts  uint
	BaseDelay time.Duration
	Logger    *slog.Logger
}

// NewRetryer creates a Retryer with default attempts and delay.
func NewRetryer(logger *slog.Logger) *Retryer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retryer{
		Attempts:  DefaultAttempts,
		BaseDelay: DefaultBaseDelay,
		Logger:    logger,
	}
}

// Do runs op until it succeeds or attempts are exhausted, returning the last
// error. Context cancellation aborts waiting between attempts.
func Do[T any](ctx context.Context, r *Retryer, name string, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := r.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}
	baseDelay := r.BaseDelay

	return retry.DoWithData(
		func() (T, error) {
			return op(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			// n is zero-based; first retry waits 1*BaseDelay.
			return time.Duration(n+1) * baseDelay
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if r.Logger != nil {
				r.Logger.Warn("operation failed, retrying",
					"operation", name,
					"attempt", n+1,
					"error", err)
			}
		}),
	)
}
