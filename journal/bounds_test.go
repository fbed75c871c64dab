package journal_test

import (
	"testing"

	"github.com/dogmatiq/searchkit/driver/memory/memoryjournal"
	. "github.com/dogmatiq/searchkit/journal"
)

func TestBoundsHelpers(t *testing.T) {
	type record struct {
		Pos Position
		Rec int
		OK  bool
	}

	cases := []struct {
		Name        string
		Setup       func(*testing.T, Journal[int])
		ExpectFresh bool
		ExpectEmpty bool
		ExpectFirst record
		ExpectLast  record
	}{
		{
			Name:        "empty",
			Setup:       func(*testing.T, Journal[int]) {},
			ExpectFresh: true,
			ExpectEmpty: true,
		},
		{
			Name: "with records",
			Setup: func(t *testing.T, j Journal[int]) {
				appendInts(t, j, 100, 200, 300)
			},
			ExpectFirst: record{0, 100, true},
			ExpectLast:  record{2, 300, true},
		},
		{
			Name: "partially truncated",
			Setup: func(t *testing.T, j Journal[int]) {
				appendInts(t, j, 100, 200, 300)
				if err := j.Truncate(t.Context(), 1); err != nil {
					t.Fatal(err)
				}
			},
			ExpectFirst: record{1, 200, true},
			ExpectLast:  record{2, 300, true},
		},
		{
			Name: "fully truncated",
			Setup: func(t *testing.T, j Journal[int]) {
				appendInts(t, j, 100, 200, 300)
				if err := j.Truncate(t.Context(), 3); err != nil {
					t.Fatal(err)
				}
			},
			ExpectEmpty: true,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			store := &memoryjournal.Store[int]{}
			j, err := store.Open(t.Context(), "<journal>")
			if err != nil {
				t.Fatal(err)
			}
			defer j.Close()

			c.Setup(t, j)

			t.Run("IsFresh", func(t *testing.T) {
				ok, err := IsFresh(t.Context(), j)
				if err != nil {
					t.Fatal(err)
				}
				if ok != c.ExpectFresh {
					t.Fatalf("unexpected result: got %t, want %t", ok, c.ExpectFresh)
				}
			})

			t.Run("IsEmpty", func(t *testing.T) {
				ok, err := IsEmpty(t.Context(), j)
				if err != nil {
					t.Fatal(err)
				}
				if ok != c.ExpectEmpty {
					t.Fatalf("unexpected result: got %t, want %t", ok, c.ExpectEmpty)
				}
			})

			t.Run("FirstRecord", func(t *testing.T) {
				var got record
				var err error

				got.Pos, got.Rec, got.OK, err = FirstRecord(t.Context(), j)
				if err != nil {
					t.Fatal(err)
				}
				if got != c.ExpectFirst {
					t.Fatalf("unexpected result: got %+v, want %+v", got, c.ExpectFirst)
				}
			})

			t.Run("LastRecord", func(t *testing.T) {
				var got record
				var err error

				got.Pos, got.Rec, got.OK, err = LastRecord(t.Context(), j)
				if err != nil {
					t.Fatal(err)
				}
				if got != c.ExpectLast {
					t.Fatalf("unexpected result: got %+v, want %+v", got, c.ExpectLast)
				}
			})
		})
	}
}

// appendInts appends the given records to the end of j.
func appendInts(t *testing.T, j Journal[int], records ...int) {
	t.Helper()

	bounds, err := j.Bounds(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	for i, rec := range records {
		if err := j.Append(t.Context(), bounds.End+Position(i), rec); err != nil {
			t.Fatal(err)
		}
	}
}
