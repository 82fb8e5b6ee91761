package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingSource wraps a TabSource with exponential backoff and records every attempt.
type retryingSource struct {
	inner       TabSource
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingSource wraps inner with retries. If maxAttempts/initial are <= 0, defaults are used.
// ErrNotConfigured and context cancellation are returned without retrying.
func NewRetryingSource(inner TabSource, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) TabSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingSource) FetchTab(ctx context.Context, tab string) (string, error) {
	var (
		body    string
		attempt int
	)

	operation := func() error {
		attempt++
		start := time.Now()
		text, err := r.inner.FetchTab(ctx, tab)
		r.metrics.RecordTabFetch(r.name, tab, time.Since(start), err)
		if err == nil {
			body = text
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
		}
		if errors.Is(err, ErrNotConfigured) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.name, "tab fetch retry",
			slog.String(logging.FieldTab, tab),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Int64("backoff_ms", wait.Milliseconds()),
			slog.Any("error", err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			logWithSource(ctx, r.logger, slog.LevelWarn, r.name, "tab fetch failed",
				slog.String(logging.FieldTab, tab),
				slog.Int("attempts", attempt),
				slog.Any("error", err),
			)
		}
		return "", err
	}
	return body, nil
}
