// Package dispatch provides single-writer execution lanes. Each concern
// (database, network) gets its own Queue so that two operations of the same
// concern never interleave, while different concerns run concurrently.
package dispatch

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Queue serializes the functions submitted to it.
type Queue struct {
	name    string
	sem     *semaphore.Weighted
	onError func(ctx context.Context, name string, err error)
	wg      sync.WaitGroup
}

// Option configures a Queue.
type Option func(*Queue)

// WithErrorHandler sets the callback receiving errors from functions started
// with Go. The default drops them.
func WithErrorHandler(fn func(ctx context.Context, name string, err error)) Option {
	return func(q *Queue) { q.onError = fn }
}

// New creates a queue labelled name.
func New(name string, opts ...Option) *Queue {
	q := &Queue{
		name:    name,
		sem:     semaphore.NewWeighted(1),
		onError: func(context.Context, string, error) {},
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Name returns the queue label.
func (q *Queue) Name() string { return q.name }

// Do waits for the lane, runs fn and returns its error. If ctx is done
// before the lane frees up, fn is not run and ctx.Err() is returned.
func (q *Queue) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer q.sem.Release(1)
	return fn(ctx)
}

// Go runs fn in the lane without blocking the caller. Errors go to the
// configured error handler.
func (q *Queue) Go(ctx context.Context, fn func(ctx context.Context) error) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := q.Do(ctx, fn); err != nil {
			q.onError(ctx, q.name, err)
		}
	}()
}

// Wait blocks until every function started with Go has returned.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// DoValue is Do for functions returning a value.
func DoValue[T any](ctx context.Context, q *Queue, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := q.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
