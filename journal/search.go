package journal

import (
	"context"
	"errors"

	"github.com/dogmatiq/searchkit/search"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// CompareFunc is a function that compares a record to some datum.
//
// If the record is less than the datum, cmp is negative. If the record is
// greater than the datum, cmp is positive. Otherwise, the record is considered
// equal to the datum.
type CompareFunc[T any] func(ctx context.Context, pos Position, rec T) (cmp int, err error)

// SearchResult is the result of a keyed search of a [Journal].
type SearchResult[T any] struct {
	// Position is the position of the matching record, if Found is true.
	// Otherwise, it is the insertion point: the position at which a record
	// with the search key would need to appear to keep the journal sorted.
	Position Position

	// Record is the matching record. It is the zero value if Found is false.
	Record T

	// Found is true if a record with the search key was found.
	Found bool

	// Probes is the number of records that were read during the search.
	Probes int
}

// Search performs a binary search of the half-open interval [begin, end) of j
// to find the position of the record for which cmp() returns zero.
//
// It returns a [ValueNotFoundError] if there is no such record.
func Search[T any](
	ctx context.Context,
	j Journal[T],
	begin, end Position,
	cmp CompareFunc[T],
) (Position, T, error) {
	res, err := bisect(ctx, j, Interval{begin, end}, cmp)
	if err != nil {
		return 0, res.Record, err
	}

	if !res.Found {
		return 0, res.Record, ValueNotFoundError{}
	}

	return res.Position, res.Record, nil
}

// SearchBy performs a binary search of the records of j within the interval in
// to find a record with the given key.
//
// The records within the interval must be sorted in ascending order of the key
// returned by selector, as ordered by cmp. If they are not, the result is
// undefined. If several records have the given key there is no guarantee as to
// which one is found.
//
// Not finding the key is not an error; see [SearchResult]. Errors returned by
// j, such as a [RecordNotFoundError] if part of the interval has been
// truncated, are returned unchanged.
func SearchBy[T, K any](
	ctx context.Context,
	j Journal[T],
	in Interval,
	key K,
	selector search.SelectorFunc[T, K],
	cmp search.CompareFunc[K],
) (SearchResult[T], error) {
	return bisect(
		ctx,
		j,
		in,
		func(_ context.Context, _ Position, rec T) (int, error) {
			return cmp(selector(rec), key), nil
		},
	)
}

// SearchByOrdered is like [SearchBy] but orders keys by their natural ordering.
func SearchByOrdered[T any, K constraints.Ordered](
	ctx context.Context,
	j Journal[T],
	in Interval,
	key K,
	selector search.SelectorFunc[T, K],
) (SearchResult[T], error) {
	return SearchBy(ctx, j, in, key, selector, search.Natural[K])
}

// SearchAllBy is like [SearchBy] but searches every record in j.
//
// If the journal is truncated while it is being searched, the search is
// restarted within the new bounds.
func SearchAllBy[T, K any](
	ctx context.Context,
	j Journal[T],
	key K,
	selector search.SelectorFunc[T, K],
	cmp search.CompareFunc[K],
) (SearchResult[T], error) {
	bounds, err := j.Bounds(ctx)
	if err != nil {
		return SearchResult[T]{}, err
	}

	for {
		res, searchErr := SearchBy(ctx, j, bounds, key, selector, cmp)
		if !errors.As(searchErr, &RecordNotFoundError{}) {
			return res, searchErr
		}

		prev := bounds
		bounds, err = j.Bounds(ctx)
		if err != nil {
			return SearchResult[T]{}, err
		}

		// Only a concurrent truncation is retried.
		if bounds.Begin == prev.Begin {
			return res, searchErr
		}
	}
}

// SearchMany performs a [SearchBy] for each of the given keys, running up to
// concurrency searches at once. If concurrency is zero or negative the number
// of concurrent searches is not limited.
//
// j must be safe for concurrent use. The results are in the same order as
// keys. If any search fails, the remaining searches are canceled and the first
// error is returned.
func SearchMany[T, K any](
	ctx context.Context,
	j Journal[T],
	in Interval,
	keys []K,
	selector search.SelectorFunc[T, K],
	cmp search.CompareFunc[K],
	concurrency int,
) ([]SearchResult[T], error) {
	results := make([]SearchResult[T], len(keys))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, key := range keys {
		g.Go(func() error {
			res, err := SearchBy(ctx, j, in, key, selector, cmp)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// bisect performs a binary search of the interval in.
//
// It probes the same positions, in the same order, as
// [search.BinarySearchByFunc] does for the equivalent slice, so both find the
// same record when the interval contains duplicate keys.
func bisect[T any](
	ctx context.Context,
	j Journal[T],
	in Interval,
	cmp CompareFunc[T],
) (res SearchResult[T], err error) {
	if o, ok := j.(searchObserver); ok {
		var done func(SearchResult[T], error)
		ctx, done = observeSearch[T](ctx, o, in)
		defer func() { done(res, err) }()
	}

	// This is the loop of search.SequenceSearchByFunc over a half-open
	// interval. Both probe the same positions in the same order.
	for !in.IsEmpty() {
		mid := in.Mid()

		rec, err := j.Get(ctx, mid)
		if err != nil {
			return res, err
		}
		res.Probes++

		c, err := cmp(ctx, mid, rec)
		if err != nil {
			return res, err
		}

		switch {
		case c < 0:
			in.Begin = mid + 1
		case c > 0:
			in.End = mid
		default:
			res.Position = mid
			res.Record = rec
			res.Found = true
			return res, nil
		}
	}

	res.Position = in.Begin
	return res, nil
}
