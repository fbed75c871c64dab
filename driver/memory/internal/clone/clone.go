package clone

import (
	"github.com/dogmatiq/dyad"
	"google.golang.org/protobuf/proto"
)

// Clone returns a deep copy of v.
//
// Protocol Buffers messages are copied with [proto.Clone], which understands
// their internal state. All other values are copied with [dyad.Clone].
func Clone[T any](v T) T {
	if m, ok := any(v).(proto.Message); ok {
		return proto.Clone(m).(T)
	}
	return dyad.Clone(v)
}
