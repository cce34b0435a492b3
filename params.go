package jrpc

import "github.com/tidwall/gjson"

// Params is the raw parameter container as received from the transport,
// not yet decoded into typed values. The registry never interprets it
// beyond what the Composer needs; handlers only ever see decoded values.
type Params []byte

// ParamsFromJSON wraps raw JSON bytes as a Params container.
func ParamsFromJSON(raw []byte) Params { return Params(raw) }

// IsEmpty reports whether the container carries no parameter data at all.
func (p Params) IsEmpty() bool {
	return len(p) == 0 || string(p) == "null"
}

// IsArray reports whether the container holds a JSON array. Only meaningful
// for JSON-encoded params; the CBOR composer does its own framing checks.
func (p Params) IsArray() bool {
	return gjson.ParseBytes(p).IsArray()
}
