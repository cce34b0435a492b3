package jrpc

import "go.uber.org/zap"

// Transmitter sends a serialized message to a specific endpoint. It is the
// transport-side collaborator of the registry: fire-and-forget, with no
// acknowledgement contract. Implementations must be safe for concurrent use.
type Transmitter interface {
	Transmit(endpointID string, message []byte) error
}

// TransmitterFunc adapts a function to the Transmitter interface.
type TransmitterFunc func(endpointID string, message []byte) error

func (f TransmitterFunc) Transmit(endpointID string, message []byte) error {
	return f(endpointID, message)
}

func (r *Registry) transmitResult(endpointID, requestID string, result any) {
	r.transmit(endpointID, &Response{ID: requestID, Result: result})
}

func (r *Registry) transmitError(endpointID, requestID string, err error) {
	r.transmit(endpointID, &Response{ID: requestID, Error: wireError(err)})
}

func (r *Registry) transmit(endpointID string, resp *Response) {
	msg, err := r.marshaller.Marshal(resp)
	if err != nil {
		r.log.Error("marshal response",
			zap.String("endpoint", endpointID),
			zap.String("id", resp.ID),
			zap.Error(err))
		return
	}
	if err := r.transmitter.Transmit(endpointID, msg); err != nil {
		r.log.Error("transmit response",
			zap.String("endpoint", endpointID),
			zap.String("id", resp.ID),
			zap.Error(err))
	}
}

// fault finishes a failed dispatch: the fault is transmitted back when the
// call carries a request id, and only logged when it does not (a
// notification fault has nowhere else to surface).
func (r *Registry) fault(c call, err error) error {
	if c.requestID != "" {
		r.transmitError(c.endpointID, c.requestID, err)
	} else {
		r.log.Warn("notification dispatch failed",
			zap.String("method", c.method),
			zap.String("endpoint", c.endpointID),
			zap.Error(err))
	}
	return err
}
