package journal_test

import (
	"testing"

	. "github.com/dogmatiq/searchkit/journal"
)

func TestInterval(t *testing.T) {
	cases := []struct {
		Name     string
		Interval Interval
		IsEmpty  bool
		Len      int
		String   string
	}{
		{"empty at zero", Interval{0, 0}, true, 0, "[0, 0)"},
		{"empty after truncation", Interval{10, 10}, true, 0, "[10, 10)"},
		{"inverted", Interval{10, 5}, true, 0, "[10, 5)"},
		{"non-empty", Interval{3, 7}, false, 4, "[3, 7)"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if got := c.Interval.IsEmpty(); got != c.IsEmpty {
				t.Fatalf("unexpected IsEmpty(): got %t, want %t", got, c.IsEmpty)
			}

			if got := c.Interval.Len(); got != c.Len {
				t.Fatalf("unexpected Len(): got %d, want %d", got, c.Len)
			}

			if got := c.Interval.String(); got != c.String {
				t.Fatalf("unexpected String(): got %q, want %q", got, c.String)
			}
		})
	}

	t.Run("Contains", func(t *testing.T) {
		in := Interval{3, 5}

		for pos, want := range map[Position]bool{
			2: false,
			3: true,
			4: true,
			5: false,
		} {
			if got := in.Contains(pos); got != want {
				t.Fatalf("unexpected Contains(%d): got %t, want %t", pos, got, want)
			}
		}
	})

	t.Run("Mid", func(t *testing.T) {
		cases := []struct {
			Interval Interval
			Mid      Position
		}{
			{Interval{0, 1}, 0},
			{Interval{0, 2}, 0},
			{Interval{0, 3}, 1},
			{Interval{0, 4}, 1},
			{Interval{5, 10}, 7},
			{Interval{^Position(0) - 2, ^Position(0)}, ^Position(0) - 2},
		}

		for _, c := range cases {
			if got := c.Interval.Mid(); got != c.Mid {
				t.Fatalf("unexpected Mid() of %s: got %d, want %d", c.Interval, got, c.Mid)
			}
		}
	})

	t.Run("Mid panics if the interval is empty", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()

		Interval{4, 4}.Mid()
	})
}
