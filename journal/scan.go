package journal

import (
	"context"

	"github.com/dogmatiq/searchkit/search"
)

// ScanFunc is a predicate function that produces a value of type V from a
// record of type T.
//
// If the record cannot be used to produce a value of type V, ok is false.
type ScanFunc[T, V any] func(ctx context.Context, pos Position, rec T) (v V, ok bool, err error)

// Scan finds a value of type V within the journal by scanning all records
// beginning with the record at the given position.
//
// It returns a [ValueNotFoundError] if the value is not found.
func Scan[T, V any](
	ctx context.Context,
	j Journal[T],
	begin Position,
	scan ScanFunc[T, V],
) (V, error) {
	var (
		v  V
		ok bool
	)

	if err := j.Range(
		ctx,
		begin,
		func(ctx context.Context, pos Position, rec T) (bool, error) {
			var err error
			v, ok, err = scan(ctx, pos, rec)
			return !ok, err
		},
	); err != nil {
		return v, err
	}

	if !ok {
		return v, ValueNotFoundError{}
	}

	return v, nil
}

// ScanFromKey finds a value of type V by scanning the records of j, beginning
// at the position found by a [SearchBy] of the interval in for the given key.
//
// If the key is not found, scanning begins at the insertion point, that is,
// the first record with a key that sorts after the search key. Records beyond
// the end of the interval are scanned if necessary.
//
// It returns a [ValueNotFoundError] if the value is not found.
func ScanFromKey[T, K, V any](
	ctx context.Context,
	j Journal[T],
	in Interval,
	key K,
	selector search.SelectorFunc[T, K],
	cmp search.CompareFunc[K],
	scan ScanFunc[T, V],
) (V, error) {
	res, err := SearchBy(ctx, j, in, key, selector, cmp)
	if err != nil {
		var zero V
		return zero, err
	}

	if res.Found {
		v, ok, err := scan(ctx, res.Position, res.Record)
		if ok || err != nil {
			return v, err
		}
		res.Position++
	}

	return Scan(ctx, j, res.Position, scan)
}
