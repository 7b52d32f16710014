package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// Connection attempts made by [NewRedisCache] before giving up. A Redis
// started alongside the server may take a moment to accept connections.
const (
	connectAttempts = 3
	connectDelay    = 200 * time.Millisecond
)

// transientError marks a failure worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// markTransient wraps network errors so [retry] repeats them. Other errors,
// such as a rejected password, are returned as is.
func markTransient(err error) error {
	var ne net.Error
	if errors.As(err, &ne) {
		return &transientError{err}
	}
	return err
}

// retry calls fn up to attempts times, doubling delay after each transient
// failure. A non-transient error ends the loop at once. The last error is
// returned unwrapped, or ctx.Err() if ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var te *transientError

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, &te) {
			return err
		}
		if i == attempts-1 {
			return te.err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return nil
}
