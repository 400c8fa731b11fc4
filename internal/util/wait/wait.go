// Package wait provides a fixed-interval convergence poller for remote state.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadlineExceeded is returned when a poll deadline elapses before the
// condition converges.
var ErrDeadlineExceeded = errors.New("deadline exceeded while waiting for convergence")

// Condition reports whether the awaited state has been reached. A non-nil
// error aborts the poll unless the poll was configured with RetryAllErrors.
type Condition func(ctx context.Context) (done bool, err error)

// Config holds poll configuration.
type Config struct {
	Interval       time.Duration
	Deadline       time.Duration // zero means no deadline
	RetryAllErrors bool
}

// Option is a functional option for poll configuration.
type Option func(*Config)

// WithInterval sets the sleep between attempts.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithDeadline bounds the total time spent polling. The condition is never
// invoked after the deadline has expired.
func WithDeadline(d time.Duration) Option {
	return func(c *Config) {
		c.Deadline = d
	}
}

// WithRetryAllErrors treats every condition error as "not converged yet"
// instead of aborting. Only useful together with WithDeadline; without one
// the poll would mask a persistent failure forever.
func WithRetryAllErrors() Option {
	return func(c *Config) {
		c.RetryAllErrors = true
	}
}

// Until invokes cond at a fixed interval until it reports done, it returns an
// error (unless RetryAllErrors is set), the deadline elapses, or ctx is
// cancelled. With no deadline configured it polls indefinitely.
func Until(ctx context.Context, cond Condition, opts ...Option) error {
	cfg := &Config{
		Interval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var cutoff time.Time
	if cfg.Deadline > 0 {
		cutoff = time.Now().Add(cfg.Deadline)
	}

	var lastErr error
	for {
		done, err := cond(ctx)
		if done {
			return nil
		}
		if err != nil {
			if !cfg.RetryAllErrors {
				return err
			}
			lastErr = err
		}

		if !cutoff.IsZero() && !time.Now().Add(cfg.Interval).Before(cutoff) {
			if lastErr != nil {
				return fmt.Errorf("%w: last attempt: %v", ErrDeadlineExceeded, lastErr)
			}
			return ErrDeadlineExceeded
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait cancelled: %w", ctx.Err())
		case <-time.After(cfg.Interval):
		}
	}
}
