// Package reqstate models a remote read or write as a small explicit state
// machine: idle → pending → success | error. A Query caches its last
// successful result until it is invalidated; a Mutation runs once at a time
// and signals registered listeners on success. Together they give the
// cache-read / mutate / invalidate / refetch cycle the management views
// depend on, without an external caching library.
package reqstate

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle phase of a request.
type State int32

const (
	Idle State = iota
	Pending
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by Mutation.Dispatch while a previous dispatch is
// still outstanding.
var ErrBusy = errors.New("mutation already in flight")

// FetchFunc loads the value a Query caches.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Query is a cacheable, re-fetchable read. The zero fetch happens lazily on
// the first Get; afterwards Get serves the cached value until Invalidate
// marks it stale or the last fetch errored. Concurrent Gets share a single
// in-flight fetch.
type Query[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	state    State
	stale    bool
	data     T
	err      error
	inflight chan struct{}
}

// NewQuery builds an idle Query around fetch.
func NewQuery[T any](fetch FetchFunc[T]) *Query[T] {
	return &Query[T]{fetch: fetch}
}

// Get returns the cached value, or dispatches the fetch when the query is
// idle, stale, or in the error state. Waiters attached while a fetch is in
// flight observe that fetch's outcome instead of starting their own.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		if q.state == Success && !q.stale {
			data := q.data
			q.mu.Unlock()
			return data, nil
		}
		if q.state == Pending {
			done := q.inflight
			q.mu.Unlock()
			select {
			case <-ctx.Done():
				var zero T
				return zero, ctx.Err()
			case <-done:
			}
			continue
		}

		done := make(chan struct{})
		q.state = Pending
		q.stale = false
		q.inflight = done
		q.mu.Unlock()

		data, err := q.fetch(ctx)

		q.mu.Lock()
		if err != nil {
			q.state = Error
			q.err = err
		} else {
			q.state = Success
			q.data = data
			q.err = nil
		}
		q.inflight = nil
		close(done)
		q.mu.Unlock()

		return data, err
	}
}

// Invalidate marks the cached value stale. The next Get refetches; until
// then State still reports the previous outcome.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	q.stale = true
	q.mu.Unlock()
}

// State returns the current lifecycle phase.
func (q *Query[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Fresh reports whether the next Get would be served from cache.
func (q *Query[T]) Fresh() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state == Success && !q.stale
}

// Err returns the error from the last failed fetch, or nil.
func (q *Query[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// MutateFunc performs the write a Mutation wraps.
type MutateFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Mutation is a fire-once write with a busy flag. While a dispatch is
// outstanding further dispatches are rejected with ErrBusy; a failed
// dispatch retains its error until the next attempt; success runs the
// registered invalidation hooks.
type Mutation[In, Out any] struct {
	mu        sync.Mutex
	fn        MutateFunc[In, Out]
	state     State
	busy      bool
	err       error
	onSuccess []func()
}

// NewMutation builds an idle Mutation around fn.
func NewMutation[In, Out any](fn MutateFunc[In, Out]) *Mutation[In, Out] {
	return &Mutation[In, Out]{fn: fn}
}

// OnSuccess registers a hook run after every successful dispatch, typically
// a dependent Query's Invalidate.
func (m *Mutation[In, Out]) OnSuccess(hook func()) {
	m.mu.Lock()
	m.onSuccess = append(m.onSuccess, hook)
	m.mu.Unlock()
}

// Dispatch runs the mutation. The busy flag clears whatever the outcome.
func (m *Mutation[In, Out]) Dispatch(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		var zero Out
		return zero, ErrBusy
	}
	m.busy = true
	m.state = Pending
	m.mu.Unlock()

	out, err := m.fn(ctx, in)

	m.mu.Lock()
	m.busy = false
	var hooks []func()
	if err != nil {
		m.state = Error
		m.err = err
	} else {
		m.state = Success
		m.err = nil
		hooks = append(hooks, m.onSuccess...)
	}
	m.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return out, err
}

// Busy reports whether a dispatch is outstanding.
func (m *Mutation[In, Out]) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// State returns the current lifecycle phase.
func (m *Mutation[In, Out]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the error retained from the last failed dispatch, or nil.
func (m *Mutation[In, Out]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
