package search

import "golang.org/x/exp/constraints"

// Sequence is a randomly indexable, read-only sequence of elements of type T.
//
// It allows searching ordered collections that are not stored as a Go slice.
type Sequence[T any] interface {
	// Len returns the number of elements in the sequence.
	Len() int

	// At returns the element at index i, where 0 <= i < Len().
	At(i int) T
}

// Slice adapts a Go slice to the [Sequence] interface.
type Slice[T any] []T

// Len returns the number of elements in the slice.
func (s Slice[T]) Len() int { return len(s) }

// At returns the element at index i.
func (s Slice[T]) At(i int) T { return s[i] }

// SequenceSearchBy is like [BinarySearchBy] but searches a [Sequence].
func SequenceSearchBy[T any, K constraints.Ordered](
	source Sequence[T],
	key K,
	selector SelectorFunc[T, K],
) int {
	return SequenceSearchByFunc(source, key, selector, Natural[K])
}

// SequenceSearchByFunc is like [BinarySearchByFunc] but searches a [Sequence].
//
// source.Len() is called exactly once. The bisection of journal intervals
// probes the same indices in the same order; see journal.Interval.Mid.
func SequenceSearchByFunc[T, K any](
	source Sequence[T],
	key K,
	selector SelectorFunc[T, K],
	cmp CompareFunc[K],
) int {
	low, high := 0, source.Len()-1

	for low <= high {
		mid := low + (high-low)/2

		c := cmp(selector(source.At(mid)), key)
		if c == 0 {
			return mid
		}

		if c < 0 {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	return ^low
}
