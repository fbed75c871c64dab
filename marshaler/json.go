package marshaler

import "encoding/json"

// NewJSON returns a [Marshaler] that represents values of type T as JSON.
func NewJSON[T any]() Marshaler[T] {
	return New(
		func(v T) ([]byte, error) {
			return json.Marshal(v)
		},
		func(data []byte) (v T, err error) {
			err = json.Unmarshal(data, &v)
			return v, err
		},
	)
}
