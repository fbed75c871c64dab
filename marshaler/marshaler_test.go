package marshaler_test

import (
	"bytes"
	"testing"

	. "github.com/dogmatiq/searchkit/marshaler"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func roundTrip[T any](t *testing.T, m Marshaler[T], v T) T {
	t.Helper()

	data, err := m.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return got
}

func TestNewJSON(t *testing.T) {
	type record struct {
		Key   int
		Value string
	}

	want := record{42, "<value>"}
	got := roundTrip(t, NewJSON[record](), want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}

	if _, err := NewJSON[record]().Unmarshal([]byte("{")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewProto(t *testing.T) {
	t.Run("it marshals and unmarshals messages", func(t *testing.T) {
		want := wrapperspb.String("<value>")
		got := roundTrip(t, NewProto[*wrapperspb.StringValue](), want)

		if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it marshals equal messages to the same bytes", func(t *testing.T) {
		m := NewProto[*structpb.Struct]()

		a, err := structpb.NewStruct(map[string]any{"a": 1, "b": "two", "c": true})
		if err != nil {
			t.Fatal(err)
		}

		b := proto.Clone(a).(*structpb.Struct)

		x, err := m.Marshal(a)
		if err != nil {
			t.Fatal(err)
		}

		y, err := m.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(x, y) {
			t.Fatal("expected deterministic output")
		}
	})
}

func TestUint64(t *testing.T) {
	t.Run("it preserves numeric order", func(t *testing.T) {
		values := []uint64{0, 1, 255, 256, 1 << 32, 1<<64 - 1}

		for i := 1; i < len(values); i++ {
			a, _ := Uint64.Marshal(values[i-1])
			b, _ := Uint64.Marshal(values[i])

			if bytes.Compare(a, b) >= 0 {
				t.Fatalf("expected %d to marshal before %d", values[i-1], values[i])
			}
		}
	})

	t.Run("it round-trips values", func(t *testing.T) {
		if got := roundTrip(t, Uint64, 1234567890); got != 1234567890 {
			t.Fatalf("unexpected value: got %d, want %d", got, 1234567890)
		}
	})

	t.Run("it returns an error if the data is the wrong length", func(t *testing.T) {
		if _, err := Uint64.Unmarshal([]byte{1, 2, 3}); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestInt64(t *testing.T) {
	t.Run("it preserves numeric order", func(t *testing.T) {
		values := []int64{-1 << 63, -256, -1, 0, 1, 256, 1<<63 - 1}

		for i := 1; i < len(values); i++ {
			a, _ := Int64.Marshal(values[i-1])
			b, _ := Int64.Marshal(values[i])

			if bytes.Compare(a, b) >= 0 {
				t.Fatalf("expected %d to marshal before %d", values[i-1], values[i])
			}
		}
	})

	t.Run("it round-trips values", func(t *testing.T) {
		for _, want := range []int64{-1 << 63, -42, 0, 42, 1<<63 - 1} {
			if got := roundTrip(t, Int64, want); got != want {
				t.Fatalf("unexpected value: got %d, want %d", got, want)
			}
		}
	})

	t.Run("it returns an error if the data is the wrong length", func(t *testing.T) {
		if _, err := Int64.Unmarshal(make([]byte, 9)); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestNew(t *testing.T) {
	m := New(
		func(v int) ([]byte, error) { return []byte{byte(v)}, nil },
		func(data []byte) (int, error) { return int(data[0]), nil },
	)

	if got := roundTrip(t, m, 7); got != 7 {
		t.Fatalf("unexpected value: got %d, want 7", got)
	}
}

func TestBasic(t *testing.T) {
	if got := roundTrip(t, Bytes, []byte("<value>")); string(got) != "<value>" {
		t.Fatalf("unexpected value: got %q", got)
	}

	if got := roundTrip(t, String, "<value>"); got != "<value>" {
		t.Fatalf("unexpected value: got %q", got)
	}

	if got := roundTrip(t, Bool, true); !got {
		t.Fatal("expected true")
	}

	if got := roundTrip(t, Bool, false); got {
		t.Fatal("expected false")
	}
}
