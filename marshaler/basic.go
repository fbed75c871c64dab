package marshaler

import (
	"encoding/binary"
	"fmt"
)

// The numeric and string marshalers below produce bytes that sort in the same
// order as the values they represent, so the keys of a binary journal can be
// compared without unmarshaling them.
var (
	// Bytes passes byte slices through unchanged.
	Bytes = New(
		func(v []byte) ([]byte, error) { return v, nil },
		func(data []byte) ([]byte, error) { return data, nil },
	)

	// String represents a string as its UTF-8 bytes.
	String = New(
		func(v string) ([]byte, error) { return []byte(v), nil },
		func(data []byte) (string, error) { return string(data), nil },
	)

	// Bool represents true as a single byte and false as no bytes.
	Bool = New(
		func(v bool) ([]byte, error) {
			if v {
				return []byte{1}, nil
			}
			return nil, nil
		},
		func(data []byte) (bool, error) {
			return len(data) > 0, nil
		},
	)

	// Uint64 represents a uint64 as 8 big-endian bytes.
	Uint64 = New(
		func(v uint64) ([]byte, error) {
			return binary.BigEndian.AppendUint64(nil, v), nil
		},
		func(data []byte) (uint64, error) {
			if err := checkLen("uint64", data, 8); err != nil {
				return 0, err
			}
			return binary.BigEndian.Uint64(data), nil
		},
	)

	// Int64 represents an int64 as 8 big-endian bytes with the sign bit
	// inverted, so that negative values sort before positive ones.
	Int64 = New(
		func(v int64) ([]byte, error) {
			return binary.BigEndian.AppendUint64(nil, uint64(v)^signBit), nil
		},
		func(data []byte) (int64, error) {
			if err := checkLen("int64", data, 8); err != nil {
				return 0, err
			}
			return int64(binary.BigEndian.Uint64(data) ^ signBit), nil
		},
	)
)

const signBit = 1 << 63

func checkLen(typ string, data []byte, n int) error {
	if len(data) != n {
		return fmt.Errorf("cannot unmarshal %s: expected %d bytes, got %d", typ, n, len(data))
	}
	return nil
}
