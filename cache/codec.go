package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts cached snapshots to and from the string payload stored in
// the KeyValueCache.
type Codec[V any] interface {
	Encode(V) (string, error)
	Decode(string) (V, error)
}

// JSONCodec is the default codec; cached values are JSON documents.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func (JSONCodec[V]) Decode(s string) (V, error) {
	var v V
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

// MsgpackCodec trades readability of cached values for smaller payloads.
type MsgpackCodec[V any] struct{}

func (MsgpackCodec[V]) Encode(v V) (string, error) {
	b, err := msgpack.Marshal(v)
	return string(b), err
}

func (MsgpackCodec[V]) Decode(s string) (V, error) {
	var v V
	err := msgpack.Unmarshal([]byte(s), &v)
	return v, err
}

// NewCodec returns the codec registered under name, defaulting to JSON.
func NewCodec[V any](name string) Codec[V] {
	if name == CodecMsgpack {
		return MsgpackCodec[V]{}
	}
	return JSONCodec[V]{}
}
