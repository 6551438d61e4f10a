package pair

import (
	"context"
	"time"
)

// Backoff floor applied when callers pass a non-positive backoff.
const minMetadataRetryBackoff = 100 * time.Millisecond

// withRetry runs fn up to maxRetries extra times with doubling backoff.
// Only the startup metadata calls use this; the poll loop retries by
// re-ticking, never here.
func withRetry(ctx context.Context, maxRetries int, backoff time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = minMetadataRetryBackoff
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}
}
