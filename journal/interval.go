package journal

import (
	"fmt"
)

// Interval is the half-open interval [Begin, End) of positions in a [Journal].
//
// It is used both for the bounds of a journal and for the portion of a
// journal that is searched by [SearchBy].
type Interval struct {
	Begin Position
	End   Position
}

// IsEmpty returns true if there are no positions in the interval.
func (i Interval) IsEmpty() bool {
	return i.End <= i.Begin
}

// Len returns the number of positions in the interval. It returns zero if End
// is before Begin.
func (i Interval) Len() int {
	if i.IsEmpty() {
		return 0
	}
	return int(i.End - i.Begin)
}

// Contains returns true if pos is within the interval.
func (i Interval) Contains(pos Position) bool {
	return pos >= i.Begin && pos < i.End
}

// Mid returns the position probed by a binary search of the interval.
//
// For intervals with an even number of positions it is the lower of the two
// middle positions, matching the probe order of a search over the equivalent
// slice. It panics if the interval is empty.
func (i Interval) Mid() Position {
	if i.IsEmpty() {
		panic(fmt.Sprintf("empty interval %s has no mid-point", i))
	}
	return i.Begin + (i.End-i.Begin-1)/2
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d)", i.Begin, i.End)
}
