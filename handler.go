package jrpc

import (
	"context"

	"go.uber.org/zap"
)

// The ten registration functions below cover the arity cross product of
// {no, one, many} parameters × {no, one, many} results, plus one-param →
// asynchronous one-result. They are package-level functions rather than
// Registry methods because methods cannot have type parameters independent
// of the receiver.
//
// Each stores a closure that decodes the raw params to the handler's
// types, runs the method's filter chain, invokes the handler, and — for
// result-bearing arities — transmits the outcome when the call carries a
// request id. All of them fail with ErrAlreadyRegistered when the method
// name is taken.

// decodeOne decodes the whole container into a single P.
func decodeOne[P any](c Composer, params Params) (P, error) {
	var p P
	if err := c.One(params, &p); err != nil {
		return p, &DecodeError{Err: err}
	}
	return p, nil
}

// decodeMany decodes a list container element-wise into []P.
func decodeMany[P any](c Composer, params Params) ([]P, error) {
	elems, err := c.Elements(params)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	out := make([]P, 0, len(elems))
	for _, el := range elems {
		var p P
		if err := c.One(el, &p); err != nil {
			return nil, &DecodeError{Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

// RegisterNoneToNone binds a no-param, no-result handler. Handler side
// effects are the entire observable outcome; nothing is ever transmitted.
func RegisterNoneToNone(r *Registry, method string, fn func(ctx context.Context, endpointID string) error) error {
	return r.register(method, func(ctx context.Context, c call) error {
		if err := r.runFilters(c.method, nil); err != nil {
			return r.fault(c, err)
		}
		if err := fn(ctx, c.endpointID); err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		return nil
	})
}

// RegisterNoneToOne binds a no-param handler returning a single result.
func RegisterNoneToOne[R any](r *Registry, method string, fn func(ctx context.Context, endpointID string) (R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		if err := r.runFilters(c.method, nil); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterNoneToMany binds a no-param handler returning a list of results.
func RegisterNoneToMany[R any](r *Registry, method string, fn func(ctx context.Context, endpointID string) ([]R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		if err := r.runFilters(c.method, nil); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterOneToNone binds a one-param, no-result handler.
func RegisterOneToNone[P any](r *Registry, method string, fn func(ctx context.Context, endpointID string, p P) error) error {
	return r.register(method, func(ctx context.Context, c call) error {
		p, err := decodeOne[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, p); err != nil {
			return r.fault(c, err)
		}
		if err := fn(ctx, c.endpointID, p); err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		return nil
	})
}

// RegisterOneToOne binds a one-param handler returning a single result.
func RegisterOneToOne[P, R any](r *Registry, method string, fn func(ctx context.Context, endpointID string, p P) (R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		p, err := decodeOne[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, p); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID, p)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterOneToMany binds a one-param handler returning a list of results.
func RegisterOneToMany[P, R any](r *Registry, method string, fn func(ctx context.Context, endpointID string, p P) ([]R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		p, err := decodeOne[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, p); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID, p)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterManyToNone binds a many-param, no-result handler.
func RegisterManyToNone[P any](r *Registry, method string, fn func(ctx context.Context, endpointID string, ps []P) error) error {
	return r.register(method, func(ctx context.Context, c call) error {
		ps, err := decodeMany[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, ps); err != nil {
			return r.fault(c, err)
		}
		if err := fn(ctx, c.endpointID, ps); err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		return nil
	})
}

// RegisterManyToOne binds a many-param handler returning a single result.
func RegisterManyToOne[P, R any](r *Registry, method string, fn func(ctx context.Context, endpointID string, ps []P) (R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		ps, err := decodeMany[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, ps); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID, ps)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterManyToMany binds a many-param handler returning a list of results.
func RegisterManyToMany[P, R any](r *Registry, method string, fn func(ctx context.Context, endpointID string, ps []P) ([]R, error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		ps, err := decodeMany[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, ps); err != nil {
			return r.fault(c, err)
		}
		res, err := fn(ctx, c.endpointID, ps)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID != "" {
			r.transmitResult(c.endpointID, c.requestID, res)
		}
		return nil
	})
}

// RegisterOneToFutureOne binds a one-param handler that produces its single
// result asynchronously. The dispatch attaches continuations to the
// returned Future and returns without blocking; the response is transmitted
// from whatever goroutine completes the Future.
//
// For a request, exactly one envelope is sent: success on Resolve, fault on
// Reject. For a notification, the result is discarded and a rejection is
// only logged. A synchronous error from fn short-circuits the Future path
// entirely.
func RegisterOneToFutureOne[P, R any](r *Registry, method string, fn func(ctx context.Context, endpointID string, p P) (*Future[R], error)) error {
	return r.register(method, func(ctx context.Context, c call) error {
		p, err := decodeOne[P](r.composer, c.params)
		if err != nil {
			return r.fault(c, err)
		}
		if err := r.runFilters(c.method, p); err != nil {
			return r.fault(c, err)
		}
		fut, err := fn(ctx, c.endpointID, p)
		if err != nil {
			return r.fault(c, &HandlerError{Err: err})
		}
		if c.requestID == "" {
			fut.OnFailure(func(err error) {
				r.log.Warn("async notification handler failed",
					zap.String("method", c.method),
					zap.String("endpoint", c.endpointID),
					zap.Error(err))
			})
			return nil
		}
		fut.OnSuccess(func(res R) {
			r.transmitResult(c.endpointID, c.requestID, res)
		})
		fut.OnFailure(func(err error) {
			r.transmitError(c.endpointID, c.requestID, &HandlerError{Err: err})
		})
		return nil
	})
}
