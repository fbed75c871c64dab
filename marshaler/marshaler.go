// Package marshaler converts values to and from the binary representation
// stored in a [journal.BinaryJournal].
//
// [journal.BinaryJournal]: github.com/dogmatiq/searchkit/journal.BinaryJournal
package marshaler

// Marshaler converts values of type T to and from bytes.
type Marshaler[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
}

// Funcs is a [Marshaler] that delegates to a pair of functions.
type Funcs[T any] struct {
	MarshalFunc   func(T) ([]byte, error)
	UnmarshalFunc func([]byte) (T, error)
}

// New returns a [Marshaler] that uses marshal and unmarshal to convert values
// of type T.
func New[T any](
	marshal func(T) ([]byte, error),
	unmarshal func([]byte) (T, error),
) Marshaler[T] {
	return Funcs[T]{marshal, unmarshal}
}

// Marshal returns the binary representation of v.
func (f Funcs[T]) Marshal(v T) ([]byte, error) {
	return f.MarshalFunc(v)
}

// Unmarshal returns the value represented by data.
func (f Funcs[T]) Unmarshal(data []byte) (T, error) {
	return f.UnmarshalFunc(data)
}
