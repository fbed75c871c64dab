package journal_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/dogmatiq/searchkit/journal"
	"github.com/dogmatiq/searchkit/search"
)

func TestScan(t *testing.T) {
	j := openEvents(t, 10, 20, 30, 40)

	named := func(name string) ScanFunc[event, Position] {
		return func(_ context.Context, pos Position, e event) (Position, bool, error) {
			return pos, e.Name == name, nil
		}
	}

	t.Run("it returns the value produced by the first matching record", func(t *testing.T) {
		pos, err := Scan(t.Context(), j, 1, named("<event>"))
		if err != nil {
			t.Fatal(err)
		}

		if pos != 1 {
			t.Fatalf("unexpected position: got %d, want %d", pos, 1)
		}
	})

	t.Run("it returns a ValueNotFoundError if no record matches", func(t *testing.T) {
		_, err := Scan(t.Context(), j, 0, named("<other>"))
		if !errors.As(err, &ValueNotFoundError{}) {
			t.Fatalf("unexpected error: got %v, want ValueNotFoundError", err)
		}
	})
}

func TestScanFromKey(t *testing.T) {
	j := openEvents(t, 10, 20, 30, 40, 50)

	firstSeqAtLeast := func(min int) ScanFunc[event, int] {
		return func(_ context.Context, _ Position, e event) (int, bool, error) {
			return e.Seq, e.Seq >= min, nil
		}
	}

	cases := []struct {
		Name   string
		Key    int
		Min    int
		Expect int
	}{
		{"key found, matching record at search result", 30, 30, 30},
		{"key found, matching record after search result", 30, 45, 50},
		{"key not found, scanning from insertion point", 25, 0, 30},
		{"key sorts before all records", 5, 0, 10},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			got, err := ScanFromKey(
				t.Context(),
				j,
				Interval{0, 5},
				c.Key,
				selectSeq,
				search.Natural[int],
				firstSeqAtLeast(c.Min),
			)
			if err != nil {
				t.Fatal(err)
			}

			if got != c.Expect {
				t.Fatalf("unexpected value: got %d, want %d", got, c.Expect)
			}
		})
	}

	t.Run("it returns a ValueNotFoundError if the key sorts after all records", func(t *testing.T) {
		_, err := ScanFromKey(
			t.Context(),
			j,
			Interval{0, 5},
			60,
			selectSeq,
			search.Natural[int],
			firstSeqAtLeast(0),
		)
		if !errors.As(err, &ValueNotFoundError{}) {
			t.Fatalf("unexpected error: got %v, want ValueNotFoundError", err)
		}
	})
}
