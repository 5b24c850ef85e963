package cache

import (
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrDecode reports that a cached payload does not match the expected shape
// or schema. Callers should treat it as a cache miss and refetch from the
// source of truth; stale entries written by an older schema self-heal this
// way instead of failing requests.
var ErrDecode = errors.New("cache: payload does not match expected schema")

// payloadKind tags the envelope so a single-entity value and a list value
// stored under the same opaque key space can never be confused for each other.
type payloadKind uint8

const (
	kindEntity payloadKind = 1
	kindList   payloadKind = 2
)

// envelope is the wire form of every cache value.
type envelope struct {
	Kind payloadKind        `msgpack:"k"`
	Data msgpack.RawMessage `msgpack:"d"`
}

// EncodeEntity serializes a single entity for storage.
func EncodeEntity[T any](v T) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "cache: encode entity")
	}
	return msgpack.Marshal(envelope{Kind: kindEntity, Data: data})
}

// DecodeEntity deserializes a single entity. Mismatched envelope kind,
// corrupt bytes, and schema drift all surface as ErrDecode.
func DecodeEntity[T any](payload []byte) (T, error) {
	var zero T
	env, err := decodeEnvelope(payload, kindEntity)
	if err != nil {
		return zero, err
	}
	var v T
	if err := msgpack.Unmarshal(env.Data, &v); err != nil {
		return zero, errors.Mark(errors.Wrap(err, "cache: decode entity"), ErrDecode)
	}
	return v, nil
}

// EncodeList serializes an ordered entity list for storage. Element order is
// preserved exactly through encode and decode.
func EncodeList[T any](vs []T) ([]byte, error) {
	data, err := msgpack.Marshal(vs)
	if err != nil {
		return nil, errors.Wrap(err, "cache: encode list")
	}
	return msgpack.Marshal(envelope{Kind: kindList, Data: data})
}

// DecodeList deserializes an ordered entity list.
func DecodeList[T any](payload []byte) ([]T, error) {
	env, err := decodeEnvelope(payload, kindList)
	if err != nil {
		return nil, err
	}
	var vs []T
	if err := msgpack.Unmarshal(env.Data, &vs); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "cache: decode list"), ErrDecode)
	}
	return vs, nil
}

func decodeEnvelope(payload []byte, want payloadKind) (envelope, error) {
	var env envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return env, errors.Mark(errors.Wrap(err, "cache: decode envelope"), ErrDecode)
	}
	if env.Kind != want {
		return env, errors.Mark(errors.Newf("cache: envelope kind %d, want %d", env.Kind, want), ErrDecode)
	}
	return env, nil
}
