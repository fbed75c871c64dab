// Package search locates elements within sorted sequences by a key that is
// derived from each element.
package search

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// A SelectorFunc returns the key of an element.
type SelectorFunc[T, K any] func(T) K

// A CompareFunc imposes a total order on keys.
//
// It returns a negative value if a sorts before b, a positive value if a sorts
// after b, and zero if a and b are equivalent.
type CompareFunc[K any] func(a, b K) int

// Natural is a [CompareFunc] that orders keys by their natural ordering, as
// defined by the < operator.
//
// NaN values sort before any other floating-point value.
func Natural[K constraints.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}

// BinarySearchBy searches source for an element with the given key, ordering
// keys by their natural ordering.
//
// It is equivalent to calling [BinarySearchByFunc] with [Natural] as the
// comparison function.
func BinarySearchBy[S ~[]T, T any, K constraints.Ordered](
	source S,
	key K,
	selector SelectorFunc[T, K],
) int {
	return BinarySearchByFunc(source, key, selector, Natural[K])
}

// BinarySearchByFunc searches source for an element with the given key.
//
// source must be sorted in ascending order of the key returned by selector, as
// ordered by cmp. If it is not, the result is undefined.
//
// If source contains an element with the given key, it returns the index of
// that element. If there are several such elements there is no guarantee as to
// which one is found.
//
// Otherwise, it returns ^p (that is, -p - 1), where p is the insertion point:
// the index at which the key would be inserted to keep source sorted. Thus,
// the result is non-negative if and only if the key is found. Use [IsFound] and
// [InsertionPoint] to decode the result.
func BinarySearchByFunc[S ~[]T, T, K any](
	source S,
	key K,
	selector SelectorFunc[T, K],
	cmp CompareFunc[K],
) int {
	return SequenceSearchByFunc(Slice[T](source), key, selector, cmp)
}

// FindBy searches source for an element with the given key, ordering keys by
// their natural ordering.
//
// If the key is found, it returns the index of the element and true. Otherwise,
// it returns the insertion point and false.
func FindBy[S ~[]T, T any, K constraints.Ordered](
	source S,
	key K,
	selector SelectorFunc[T, K],
) (int, bool) {
	return decode(BinarySearchBy(source, key, selector))
}

// FindByFunc is like [FindBy] but orders keys using cmp.
func FindByFunc[S ~[]T, T, K any](
	source S,
	key K,
	selector SelectorFunc[T, K],
	cmp CompareFunc[K],
) (int, bool) {
	return decode(BinarySearchByFunc(source, key, selector, cmp))
}

// IsFound returns true if r, a result returned by one of the BinarySearchBy
// functions, refers to an element that matches the search key.
func IsFound(r int) bool {
	return r >= 0
}

// InsertionPoint returns the index at which the search key would be inserted
// to keep the sequence sorted, given r, a result returned by one of the
// BinarySearchBy functions.
//
// If r refers to a matching element, the index of that element is returned.
func InsertionPoint(r int) int {
	if r < 0 {
		return ^r
	}
	return r
}

func decode(r int) (int, bool) {
	if r < 0 {
		return ^r, false
	}
	return r, true
}
