package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/dgallion1/docoutline/internal/pathstore"
)

const maxStoreAttempts = 3

// isRetryable reports whether a pathstore failure is worth another attempt:
// network timeouts, throttling and server errors.
func isRetryable(err error) bool {
	var se *pathstore.StatusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= 500
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// backoff returns the wait before attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	return base + time.Duration(rand.Int64N(int64(base)/2))
}

// withRetry calls fn until it succeeds, fails permanently, or the attempts
// run out.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := range maxStoreAttempts {
		if err = fn(); err == nil || !isRetryable(err) {
			return err
		}
		if attempt == maxStoreAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
	return err
}
