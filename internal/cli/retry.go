package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cenkalti/backoff/v4"

	"github.com/nctl-dev/nctl/namecheap"
)

// isTransient reports whether a retry could plausibly succeed: transport
// failures and rate limiting, nothing else. Auth and validation failures
// will fail the same way every time.
func isTransient(err error) bool {
	var te *namecheap.TransportError
	if errors.As(err, &te) {
		return true
	}
	var ae *namecheap.APIError
	return errors.As(err, &ae) && ae.Category == namecheap.CategoryRateLimit
}

// withRetry runs fn, retrying transient failures with exponential backoff
// up to retries attempts beyond the first. The SDK never retries; this is
// the only retry loop in the program.
func withRetry(ctx context.Context, retries int, log *slog.Logger, fn func() error) error {
	if retries <= 0 {
		return fn()
	}

	attempt := 0
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries)), ctx)
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		log.Debug("transient failure, will retry", "attempt", attempt, "error", err)
		return err
	}, bo)
}
