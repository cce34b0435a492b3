package jrpc

import (
	"context"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONComposer_One(t *testing.T) {
	c := JSONComposer()

	t.Run("decodes an object", func(t *testing.T) {
		var p pair
		require.NoError(t, c.One(ParamsFromJSON([]byte(`{"a":1,"b":2}`)), &p))
		assert.Equal(t, pair{A: 1, B: 2}, p)
	})

	t.Run("unwraps a single-element array", func(t *testing.T) {
		var p pair
		require.NoError(t, c.One(ParamsFromJSON([]byte(`[{"a":1,"b":2}]`)), &p))
		assert.Equal(t, pair{A: 1, B: 2}, p)
	})

	t.Run("decodes scalars", func(t *testing.T) {
		var s string
		require.NoError(t, c.One(ParamsFromJSON([]byte(`"hello"`)), &s))
		assert.Equal(t, "hello", s)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		var p pair
		err := c.One(ParamsFromJSON([]byte(`{nope`)), &p)
		require.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("rejects mismatched shapes", func(t *testing.T) {
		var p pair
		err := c.One(ParamsFromJSON([]byte(`"not an object"`)), &p)
		require.Error(t, err)
	})
}

func TestJSONComposer_Elements(t *testing.T) {
	c := JSONComposer()

	t.Run("splits arrays", func(t *testing.T) {
		elems, err := c.Elements(ParamsFromJSON([]byte(`[1,"two",{"a":3}]`)))
		require.NoError(t, err)
		require.Len(t, elems, 3)
		assert.Equal(t, "1", string(elems[0]))
		assert.Equal(t, `"two"`, string(elems[1]))
	})

	t.Run("empty array yields no elements", func(t *testing.T) {
		elems, err := c.Elements(ParamsFromJSON([]byte(`[]`)))
		require.NoError(t, err)
		assert.Empty(t, elems)
	})

	t.Run("rejects non-arrays", func(t *testing.T) {
		_, err := c.Elements(ParamsFromJSON([]byte(`{"a":1}`)))
		require.Error(t, err)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := c.Elements(ParamsFromJSON([]byte(`[1,`)))
		require.ErrorIs(t, err, ErrInvalidJSON)
	})
}

func TestParams(t *testing.T) {
	assert.True(t, Params(nil).IsEmpty())
	assert.True(t, ParamsFromJSON([]byte(`null`)).IsEmpty())
	assert.False(t, ParamsFromJSON([]byte(`{}`)).IsEmpty())
	assert.True(t, ParamsFromJSON([]byte(`[1,2]`)).IsArray())
	assert.False(t, ParamsFromJSON([]byte(`{"a":1}`)).IsArray())
}

func TestCBORCodec_RoundTrip(t *testing.T) {
	tr := newCapture()
	reg := New(tr,
		WithComposer(CBORComposer()),
		WithMarshaller(CBORMarshaller()),
	)

	require.NoError(t, RegisterOneToOne(reg, "math/add", func(ctx context.Context, ep string, p pair) (int, error) {
		return p.A + p.B, nil
	}))

	params, err := cbor.Marshal(map[string]int{"a": 2, "b": 3})
	require.NoError(t, err)

	require.NoError(t, reg.HandleRequest(context.Background(), "ep1", "1", "math/add", Params(params)))
	require.Equal(t, 1, tr.count())

	var env struct {
		ID     string          `json:"id"`
		Result cbor.RawMessage `json:"result"`
		Error  *Error          `json:"error"`
	}
	require.NoError(t, cbor.Unmarshal(tr.last().message, &env))
	assert.Equal(t, "1", env.ID)

	var result int
	require.NoError(t, cbor.Unmarshal(env.Result, &result))
	assert.Equal(t, 5, result)
	assert.Nil(t, env.Error)
}

func TestCBORComposer_Elements(t *testing.T) {
	c := CBORComposer()

	raw, err := cbor.Marshal([]int{1, 2, 3})
	require.NoError(t, err)

	elems, err := c.Elements(Params(raw))
	require.NoError(t, err)
	require.Len(t, elems, 3)

	var v int
	require.NoError(t, c.One(elems[2], &v))
	assert.Equal(t, 3, v)

	notArray, err := cbor.Marshal(map[string]int{"a": 1})
	require.NoError(t, err)
	_, err = c.Elements(Params(notArray))
	require.Error(t, err)
}
