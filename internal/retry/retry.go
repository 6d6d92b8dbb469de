package retry

import (
	"context"
	"time"
)

type Operation func(attempt int) error
type IsRetryableError func(error) bool

type Config struct {
	MaxRetries    int
	Delays        []time.Duration
	IsRetryableFn IsRetryableError
}

// Do runs op until it succeeds, fails with a non-retryable error or the retries run out.
// Once Delays is exhausted the last delay is reused.
func Do(ctx context.Context, cfg Config, op Operation) error {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	if cfg.Delays == nil {
		cfg.Delays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}
	}

	if cfg.IsRetryableFn == nil {
		cfg.IsRetryableFn = func(error) bool { return false }
	}

	var lastErr error

	for i := 0; i <= cfg.MaxRetries; i++ {
		err := op(i)
		if err == nil {
			return nil
		}

		if !cfg.IsRetryableFn(err) {
			return err
		}

		lastErr = err

		if i == cfg.MaxRetries || len(cfg.Delays) == 0 {
			continue
		}

		delay := cfg.Delays[len(cfg.Delays)-1]
		if i < len(cfg.Delays) {
			delay = cfg.Delays[i]
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
