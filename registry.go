package jrpc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// invoker wraps a typed handler so we can store handlers of different
// arities in a single map. It runs the full decode → filter → invoke →
// transmit pipeline for one inbound call.
type invoker func(ctx context.Context, c call) error

// call is the per-dispatch state. requestID is empty for notifications.
type call struct {
	endpointID string
	requestID  string
	method     string
	params     Params
}

// Registry binds method names to typed handlers and dispatches inbound
// calls to them. Construct one per process (or per test) with New and pass
// it to every dispatch call site.
//
// Registration, deregistration, and filter mutation are serialized against
// each other; dispatch of already-registered methods proceeds concurrently
// and only takes the read side of the lock for the table lookup.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]invoker
	filters  map[string][]Filter

	transmitter Transmitter
	composer    Composer
	marshaller  Marshaller
	log         *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithComposer overrides the default JSON parameter composer.
func WithComposer(c Composer) Option {
	return func(r *Registry) { r.composer = c }
}

// WithMarshaller overrides the default JSON response marshaller.
func WithMarshaller(m Marshaller) Option {
	return func(r *Registry) { r.marshaller = m }
}

// WithLogger sets the logger. The default is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New creates a Registry that delivers results through t.
//
// Example:
//
//	reg := jrpc.New(conn,
//	    jrpc.WithLogger(logger),
//	)
//	jrpc.RegisterOneToOne(reg, "math/add", addHandler)
func New(t Transmitter, opts ...Option) *Registry {
	r := &Registry{
		handlers:    make(map[string]invoker),
		filters:     make(map[string][]Filter),
		transmitter: t,
		composer:    JSONComposer(),
		marshaller:  JSONMarshaller(),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// register stores the invoker under method, failing when the name is
// already bound.
func (r *Registry) register(method string, inv invoker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[method]; ok {
		return fmt.Errorf("register %q: %w", method, ErrAlreadyRegistered)
	}
	r.handlers[method] = inv
	return nil
}

// IsRegistered reports whether a handler is bound to method.
func (r *Registry) IsRegistered(method string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[method]
	return ok
}

// Deregister removes the handler bound to method and reports whether one
// was actually present.
func (r *Registry) Deregister(method string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handlers[method]
	delete(r.handlers, method)
	return ok
}

// Methods returns a sorted snapshot of the registered method names.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for method := range r.handlers {
		out = append(out, method)
	}
	sort.Strings(out)
	return out
}

// HandleRequest dispatches an inbound request. Exactly one response
// envelope (success or fault) is transmitted to endpointID for it, except
// for no-result handler arities, which never respond.
//
// The returned error reports the dispatch outcome to the transport; it has
// already been transmitted or logged as appropriate.
func (r *Registry) HandleRequest(ctx context.Context, endpointID, requestID, method string, params Params) error {
	return r.dispatch(ctx, call{
		endpointID: endpointID,
		requestID:  requestID,
		method:     method,
		params:     params,
	})
}

// HandleNotification dispatches an inbound notification. The handler runs
// through the same lookup → filter → decode → invoke pipeline as a request,
// but no response is ever sent: any result is discarded and any fault is
// only logged.
func (r *Registry) HandleNotification(ctx context.Context, endpointID, method string, params Params) error {
	return r.dispatch(ctx, call{
		endpointID: endpointID,
		method:     method,
		params:     params,
	})
}

func (r *Registry) dispatch(ctx context.Context, c call) error {
	r.mu.RLock()
	inv, ok := r.handlers[c.method]
	r.mu.RUnlock()
	if !ok {
		r.log.Error("no handler registered",
			zap.String("method", c.method),
			zap.String("endpoint", c.endpointID))
		return fmt.Errorf("dispatch %q: %w", c.method, ErrMethodNotFound)
	}
	return inv(ctx, c)
}
