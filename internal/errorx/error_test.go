package errorx_test

import (
	"errors"
	"testing"

	. "github.com/dogmatiq/searchkit/internal/errorx"
	"github.com/dogmatiq/searchkit/journal"
)

func TestWrap(t *testing.T) {
	t.Run("it adds context to the error", func(t *testing.T) {
		cause := errors.New("<error>")
		err := cause

		Wrap(&err, "unable to %s", "<operation>")

		if got, want := err.Error(), "unable to <operation>: <error>"; got != want {
			t.Fatalf("unexpected error message: got %q, want %q", got, want)
		}

		if !errors.Is(err, cause) {
			t.Fatal("expected the wrapped error to match its cause")
		}
	})

	t.Run("it leaves nil errors unchanged", func(t *testing.T) {
		var err error
		Wrap(&err, "<context>")

		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	})

	t.Run("it leaves errors that callers inspect unchanged", func(t *testing.T) {
		cases := []error{
			journal.ErrConflict,
			journal.RecordNotFoundError{Position: 3},
			journal.ValueNotFoundError{},
		}

		for _, want := range cases {
			err := want
			Wrap(&err, "<context>")

			if err != want {
				t.Fatalf("unexpected error: got %v, want %v", err, want)
			}
		}
	})

	t.Run("it panics if err is nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()

		Wrap(nil, "<context>")
	})
}
