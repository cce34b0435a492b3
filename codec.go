package jrpc

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/gjson"
)

// Composer decodes the raw parameter container into typed values. The
// registry calls One for single-parameter methods and Elements followed by
// One per element for many-parameter methods.
//
// The default is JSONComposer. Use WithComposer to swap it out, e.g. for
// transports that frame parameters as CBOR.
type Composer interface {
	// One decodes the whole container into out, which is always a non-nil
	// pointer to the handler's parameter type.
	One(params Params, out any) error

	// Elements splits a container holding a list of parameters into its
	// raw elements. Fails if the container is not a list.
	Elements(params Params) ([]Params, error)
}

// Marshaller serializes a response envelope for transmission.
type Marshaller interface {
	Marshal(resp *Response) ([]byte, error)
}

// JSONComposer returns a Composer for JSON-encoded parameters, backed by
// gjson for structural checks.
func JSONComposer() Composer { return jsonComposer{} }

type jsonComposer struct{}

func (jsonComposer) One(params Params, out any) error {
	if !gjson.ValidBytes(params) {
		return ErrInvalidJSON
	}
	// A single-element array decodes as its element, matching positional
	// JSON-RPC params like {"params": [{...}]}.
	if r := gjson.ParseBytes(params); r.IsArray() {
		if elems := r.Array(); len(elems) == 1 {
			return json.Unmarshal([]byte(elems[0].Raw), out)
		}
	}
	return json.Unmarshal(params, out)
}

func (jsonComposer) Elements(params Params) ([]Params, error) {
	if !gjson.ValidBytes(params) {
		return nil, ErrInvalidJSON
	}
	r := gjson.ParseBytes(params)
	if !r.IsArray() {
		return nil, fmt.Errorf("expected a params array, got %s", r.Type)
	}
	var out []Params
	for _, el := range r.Array() {
		out = append(out, Params(el.Raw))
	}
	return out, nil
}

// JSONMarshaller returns the default Marshaller producing JSON envelopes.
func JSONMarshaller() Marshaller { return jsonMarshaller{} }

type jsonMarshaller struct{}

func (jsonMarshaller) Marshal(resp *Response) ([]byte, error) {
	return json.Marshal(resp)
}

// CBORComposer returns a Composer for CBOR-encoded parameters.
func CBORComposer() Composer { return cborComposer{} }

type cborComposer struct{}

func (cborComposer) One(params Params, out any) error {
	return cbor.Unmarshal(params, out)
}

func (cborComposer) Elements(params Params) ([]Params, error) {
	var elems []cbor.RawMessage
	if err := cbor.Unmarshal(params, &elems); err != nil {
		return nil, fmt.Errorf("expected a params array: %w", err)
	}
	out := make([]Params, 0, len(elems))
	for _, el := range elems {
		out = append(out, Params(el))
	}
	return out, nil
}

// CBORMarshaller returns a Marshaller producing CBOR envelopes. Field names
// follow the same json tags as the JSON envelope.
func CBORMarshaller() Marshaller { return cborMarshaller{} }

type cborMarshaller struct{}

func (cborMarshaller) Marshal(resp *Response) ([]byte, error) {
	return cbor.Marshal(resp)
}
