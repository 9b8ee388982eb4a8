package dataflow

import (
	"time"
)

// Option configures a ForEach run.
type Option func(*config)

type config struct {
	workers    int
	maxRetries int
	backoff    func(int) time.Duration
	retryable  func(error) bool
	// errorHandler returns true when the error is handled and the run
	// should go on without the item.
	errorHandler func(error) bool
}

func defaultConfig() *config {
	return &config{
		workers:   1,
		retryable: func(error) bool { return true },
	}
}

// WithWorkers sets the number of concurrent workers.
// Default is 1 (sequential).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithRetry retries a failed item up to maxRetries times, sleeping
// backoff(attempt) before each retry. backoff may be nil.
func WithRetry(maxRetries int, backoff func(attempt int) time.Duration) Option {
	return func(c *config) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

// WithRetryIf limits retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryable = fn
		}
	}
}

// WithErrorHandler sets a handler that may swallow an item's final error.
func WithErrorHandler(h func(error) bool) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// ExponentialBackoff doubles base on every attempt.
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}
