// Package dataflow runs a function over a stream of items with a bounded
// number of workers.
package dataflow

import (
	"context"
	"sync"
	"time"
)

// From emits items on a channel that closes after the last one or when ctx
// is done. Cancel ctx to release the sender if the consumer stops early.
func From[T any](ctx context.Context, items ...T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// ForEach calls fn for every item of input and blocks until input is drained.
// The first error that is neither retried away nor swallowed by the error
// handler cancels the remaining work and is returned.
func ForEach[T any](ctx context.Context, input <-chan T, fn func(context.Context, T) error, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-input:
				if !ok {
					return
				}
				err := cfg.call(ctx, func() error { return fn(ctx, item) })
				if err == nil {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return parent.Err()
}

// call runs op once plus up to maxRetries more times while the error is
// retryable.
func (c *config) call(ctx context.Context, op func() error) error {
	err := op()
	for attempt := 1; err != nil && attempt <= c.maxRetries && c.retryable(err); attempt++ {
		if c.backoff != nil {
			select {
			case <-ctx.Done():
				return err
			case <-time.After(c.backoff(attempt)):
			}
		}
		err = op()
	}
	return err
}
