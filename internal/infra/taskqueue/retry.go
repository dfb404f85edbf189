package taskqueue

import (
	"context"
	"log/slog"
	"math"
	"time"
)

const defaultMaxRetries = 3

func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

// retry runs fn up to maxRetries times with exponential backoff between
// attempts and returns the last error. A permanent error ends the loop
// immediately.
func retry(ctx context.Context, maxRetries int, operation string, attrs []slog.Attr, fn func() error) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.LogAttrs(ctx, slog.LevelDebug, "retrying "+operation,
				append(attrs,
					slog.Int("attempt", attempt+1),
					slog.Duration("backoff", backoff),
				)...,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if isPermanent(lastErr) {
			slog.LogAttrs(ctx, slog.LevelWarn, operation+" failed permanently",
				append(attrs,
					slog.Int("attempt", attempt+1),
					slog.String("error", lastErr.Error()),
				)...,
			)
			return lastErr
		}
	}

	slog.LogAttrs(ctx, slog.LevelError, "all retries exhausted for "+operation,
		append(attrs,
			slog.Int("max_retries", maxRetries),
			slog.String("error", lastErr.Error()),
		)...,
	)
	return lastErr
}
