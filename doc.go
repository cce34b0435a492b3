// Package jrpc provides the request-handler dispatch core for a JSON-RPC
// endpoint: a registry that binds method names to strongly-typed handlers
// of varying arity, invokes the right one for each inbound request or
// notification, and delivers results back to the originating endpoint.
//
// The package deliberately excludes the transport: message delivery is
// consumed through the Transmitter interface, so the same registry works
// over websockets, raw TCP, pipes, or an in-memory harness in tests.
//
// # Quick Start
//
// Create a registry, bind handlers, and feed it inbound calls:
//
//	type AddParams struct {
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//
//	reg := jrpc.New(transmitter)
//
//	jrpc.RegisterOneToOne(reg, "math/add",
//	    func(ctx context.Context, endpointID string, p AddParams) (int, error) {
//	        return p.A + p.B, nil
//	    })
//
//	// Request: a response envelope goes back to "ep1".
//	reg.HandleRequest(ctx, "ep1", "42", "math/add", jrpc.ParamsFromJSON(raw))
//
//	// Notification: the handler runs, nothing is ever sent back.
//	reg.HandleNotification(ctx, "ep1", "math/add", jrpc.ParamsFromJSON(raw))
//
// # Handler Arities
//
// Ten registration functions cover {no, one, many} parameters crossed with
// {no, one, many} results, plus an asynchronous variant:
//
//   - RegisterNoneToNone — notification w/o parameters
//   - RegisterNoneToOne — request w/o parameters, single result
//   - RegisterNoneToMany — request w/o parameters, multiple results
//   - RegisterOneToNone — notification with a single parameter
//   - RegisterOneToOne — request with a single parameter, single result
//   - RegisterOneToMany — request with a single parameter, multiple results
//   - RegisterManyToNone — notification with multiple parameters
//   - RegisterManyToOne — request with multiple parameters, single result
//   - RegisterManyToMany — request with multiple parameters, multiple results
//   - RegisterOneToFutureOne — request with a single parameter whose single
//     result arrives asynchronously
//
// These are package-level generic functions rather than methods because
// methods cannot have type parameters independent of the receiver. Each
// fails with ErrAlreadyRegistered if the method name is already bound;
// exactly one handler exists per method at any time.
//
// # Dispatch Flow
//
// Every inbound call follows the same pipeline:
//
//	lookup → filter chain → parameter decode → handler → (optional) transmit
//
// A call with a request id gets exactly one envelope back: the handler's
// result on success, a fault descriptor otherwise. A call without a request
// id is a notification: the handler still runs, but no response is ever
// sent and faults are only logged.
//
// # Filters
//
// Filters are per-method interceptors run with the decoded parameters
// before the handler, in registration order. A filter error aborts the
// dispatch before the handler sees the call — the intended home for
// cross-cutting checks like authorization:
//
//	reg.RegisterFilter(func(method string, params any) error {
//	    if !authorized(method) {
//	        return errors.New("not allowed")
//	    }
//	    return nil
//	}, "workspace/delete", "workspace/stop")
//
// RateLimitFilter and LoggingFilter are provided as ready-made filters.
//
// # Asynchronous Results
//
// RegisterOneToFutureOne handlers return a Future and complete it whenever
// their work finishes; the dispatch never blocks on it. The registry
// attaches continuations so that exactly one response is transmitted on
// completion, from the completing goroutine:
//
//	jrpc.RegisterOneToFutureOne(reg, "build/start",
//	    func(ctx context.Context, endpointID string, p BuildParams) (*jrpc.Future[BuildResult], error) {
//	        fut := jrpc.NewFuture[BuildResult]()
//	        go func() {
//	            res, err := runBuild(ctx, p)
//	            if err != nil {
//	                fut.Reject(err)
//	                return
//	            }
//	            fut.Resolve(res)
//	        }()
//	        return fut, nil
//	    })
//
// # Codecs
//
// Parameter decoding and response serialization are pluggable. The default
// codec is JSON; a CBOR codec ships alongside it:
//
//	reg := jrpc.New(transmitter,
//	    jrpc.WithComposer(jrpc.CBORComposer()),
//	    jrpc.WithMarshaller(jrpc.CBORMarshaller()),
//	)
//
// # Error Handling
//
// Registration and dispatch faults are plain errors: ErrAlreadyRegistered
// and ErrMethodNotFound are sentinels, while DecodeError, FilterError, and
// HandlerError wrap their causes. On the wire, faults map to the JSON-RPC
// 2.0 code set; a handler may return an *Error to pick the code itself.
// Every fault is contained to its own dispatch: nothing here crashes the
// process or disturbs other in-flight calls.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Registration, deregistration, and
// filter mutation are serialized; dispatches of registered methods run
// concurrently and independently.
package jrpc
