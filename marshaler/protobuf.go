package marshaler

import (
	"google.golang.org/protobuf/proto"
)

// NewProto returns a marshaler that marshals and unmarshals Protocol Buffers
// messages.
//
// Messages are marshaled deterministically so that equal messages always
// produce the same bytes.
func NewProto[
	T interface {
		proto.Message
		*S
	},
	S any,
]() Marshaler[T] {
	opts := proto.MarshalOptions{Deterministic: true}

	return New(
		func(m T) ([]byte, error) {
			return opts.Marshal(m)
		},
		func(data []byte) (T, error) {
			var m T = new(S)
			return m, proto.Unmarshal(data, m)
		},
	)
}
