package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is joined into errors from a remote backend that could not be reached.
var ErrNetwork = errors.New("network error")

// RetryableError marks a transient failure. Only errors carrying it are
// retried by a backend.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is an exponential retry schedule.
type backoff struct {
	attempts int
	delay    time.Duration
}

// redisBackoff covers a short network blip. Cache reads sit on the render
// path, so the whole schedule stays well under a second.
var redisBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// do calls fn until it succeeds, returns a non-retryable error, or the
// attempts are used up. The wait doubles after every failure.
func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
