package journal

import (
	"context"
	"errors"

	"github.com/dogmatiq/searchkit/search"
)

// AppendOrdered appends rec to the end of j, provided that its key does not
// sort before the key of the last record in the journal. It returns the
// position at which the record was appended.
//
// It keeps a journal sorted by key, so that it can be searched with [SearchBy].
// It returns an [OutOfOrderError] if the record would sort before the last
// record. Optimistic concurrency conflicts are resolved by re-reading the end
// of the journal and retrying.
//
// If all records have been truncated, the new record is not compared to any
// prior record.
func AppendOrdered[T, K any](
	ctx context.Context,
	j Journal[T],
	rec T,
	selector search.SelectorFunc[T, K],
	cmp search.CompareFunc[K],
) (Position, error) {
	key := selector(rec)

	for {
		bounds, err := j.Bounds(ctx)
		if err != nil {
			return 0, err
		}

		if !bounds.IsEmpty() {
			last, err := j.Get(ctx, bounds.End-1)
			if errors.As(err, &RecordNotFoundError{}) {
				continue
			}
			if err != nil {
				return 0, err
			}

			if cmp(selector(last), key) > 0 {
				return 0, OutOfOrderError{bounds.End}
			}
		}

		err = j.Append(ctx, bounds.End, rec)
		if IsConflict(err) {
			continue
		}
		if err != nil {
			return 0, err
		}

		return bounds.End, nil
	}
}
