package jrpc

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Filter is a per-method interceptor run after parameter decoding and
// before the handler. It receives the method name and the decoded
// parameter value: nil for no-param methods, the typed value for one-param
// methods, and a typed slice for many-param methods.
//
// Returning an error aborts the dispatch before the handler runs; the
// rejection is sent back as a fault envelope when the call carries a
// request id.
type Filter func(method string, params any) error

// RegisterFilter appends the filter to each named method's chain. Filters
// accumulate and run in registration order on every dispatch of those
// methods. Filters never run for methods that are not registered: the
// lookup failure aborts the dispatch first.
func (r *Registry) RegisterFilter(f Filter, methods ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, method := range methods {
		r.filters[method] = append(r.filters[method], f)
	}
}

// runFilters runs the method's chain against the decoded params. The slice
// header is captured under the read lock; concurrent RegisterFilter only
// ever appends past the captured length, so iterating after unlock is safe.
func (r *Registry) runFilters(method string, params any) error {
	r.mu.RLock()
	chain := r.filters[method]
	r.mu.RUnlock()

	for _, f := range chain {
		if err := f(method, params); err != nil {
			return &FilterError{Method: method, Err: err}
		}
	}
	return nil
}

// RateLimitFilter returns a filter that rejects dispatches once the token
// bucket is exhausted. One limiter is shared by every method the filter is
// registered for.
func RateLimitFilter(limit rate.Limit, burst int) Filter {
	l := rate.NewLimiter(limit, burst)
	return func(method string, params any) error {
		if !l.Allow() {
			return fmt.Errorf("rate limit exceeded")
		}
		return nil
	}
}

// LoggingFilter returns a filter that logs every dispatch it sees at debug
// level. It never rejects.
func LoggingFilter(log *zap.Logger) Filter {
	return func(method string, params any) error {
		log.Debug("dispatching",
			zap.String("method", method),
			zap.Any("params", params))
		return nil
	}
}
