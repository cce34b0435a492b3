package jrpc

import "sync"

// Future is the asynchronous single-result construct used by
// RegisterOneToFutureOne. A handler returns a Future and completes it later,
// from whatever goroutine the work finishes on; the registry attaches
// continuations and never blocks on it.
//
// A Future completes exactly once. Resolve and Reject after completion are
// no-ops. Continuations registered before completion run on the completing
// goroutine, in registration order; continuations registered after
// completion run immediately on the registering goroutine.
type Future[R any] struct {
	mu        sync.Mutex
	completed bool
	value     R
	err       error
	onSuccess []func(R)
	onFailure []func(error)
}

// NewFuture returns an incomplete Future.
func NewFuture[R any]() *Future[R] {
	return &Future[R]{}
}

// Resolved returns a Future already completed with v.
func Resolved[R any](v R) *Future[R] {
	return &Future[R]{completed: true, value: v}
}

// Rejected returns a Future already failed with err.
func Rejected[R any](err error) *Future[R] {
	return &Future[R]{completed: true, err: err}
}

// Resolve completes the Future with a value and runs any registered
// success continuations.
func (f *Future[R]) Resolve(v R) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return
	}
	f.completed = true
	f.value = v
	fns := f.onSuccess
	f.onSuccess, f.onFailure = nil, nil
	f.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Reject fails the Future and runs any registered failure continuations.
func (f *Future[R]) Reject(err error) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return
	}
	f.completed = true
	f.err = err
	fns := f.onFailure
	f.onSuccess, f.onFailure = nil, nil
	f.mu.Unlock()

	for _, fn := range fns {
		fn(err)
	}
}

// OnSuccess registers a continuation invoked with the value once the Future
// resolves. Returns the Future for chaining.
func (f *Future[R]) OnSuccess(fn func(R)) *Future[R] {
	f.mu.Lock()
	if !f.completed {
		f.onSuccess = append(f.onSuccess, fn)
		f.mu.Unlock()
		return f
	}
	done, v := f.err == nil, f.value
	f.mu.Unlock()

	if done {
		fn(v)
	}
	return f
}

// OnFailure registers a continuation invoked with the error once the Future
// is rejected. Returns the Future for chaining.
func (f *Future[R]) OnFailure(fn func(error)) *Future[R] {
	f.mu.Lock()
	if !f.completed {
		f.onFailure = append(f.onFailure, fn)
		f.mu.Unlock()
		return f
	}
	err := f.err
	f.mu.Unlock()

	if err != nil {
		fn(err)
	}
	return f
}
