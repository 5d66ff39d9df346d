// Package query tracks loading, error and data state around API calls.
package query

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// State is a copy of a Query's state.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     error
}

// Query runs fn and remembers the last params, result and error.
type Query[P, T any] struct {
	fn      func(context.Context, P) (T, error)
	initial T
	hasInit bool
	logger  *zap.Logger

	mu      sync.Mutex
	data    T
	hasData bool
	loading bool
	err     error
	last    *P
}

type Option[T any] func(*queryOptions[T])

type queryOptions[T any] struct {
	initial *T
	logger  *zap.Logger
}

// WithInitial seeds Data until the first successful run and after Reset.
func WithInitial[T any](v T) Option[T] { return func(o *queryOptions[T]) { o.initial = &v } }

func WithLogger[T any](l *zap.Logger) Option[T] { return func(o *queryOptions[T]) { o.logger = l } }

func New[P, T any](fn func(context.Context, P) (T, error), opts ...Option[T]) *Query[P, T] {
	var o queryOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	q := &Query[P, T]{fn: fn, logger: o.logger}
	if q.logger == nil {
		q.logger = zap.NewNop()
	}
	if o.initial != nil {
		q.initial, q.hasInit = *o.initial, true
	}
	q.data, q.hasData = q.initial, q.hasInit
	return q
}

// Execute runs the call with params. The error is both stored and returned;
// data from an earlier success is kept when the call fails.
func (q *Query[P, T]) Execute(ctx context.Context, params P) (T, error) {
	q.mu.Lock()
	q.loading = true
	q.err = nil
	q.last = &params
	q.mu.Unlock()

	v, err := q.fn(ctx, params)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = false
	if err != nil {
		if err2 := context.Cause(ctx); err2 == nil || !errors.Is(err, err2) {
			q.logger.Error("API Error", zap.Error(err))
		}
		q.err = err
		var zero T
		return zero, err
	}
	q.data, q.hasData = v, true
	return v, nil
}

// Refresh re-runs with the last params. Without a previous Execute it does
// nothing and reports ok=false.
func (q *Query[P, T]) Refresh(ctx context.Context) (v T, ok bool, err error) {
	q.mu.Lock()
	last := q.last
	q.mu.Unlock()
	if last == nil {
		return v, false, nil
	}
	v, err = q.Execute(ctx, *last)
	return v, true, err
}

// Reset forgets params, error and data, restoring the initial data.
func (q *Query[P, T]) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data, q.hasData = q.initial, q.hasInit
	q.loading = false
	q.err = nil
	q.last = nil
}

func (q *Query[P, T]) Snapshot() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return State[T]{Data: q.data, HasData: q.hasData, Loading: q.loading, Err: q.err}
}

func (q *Query[P, T]) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}
