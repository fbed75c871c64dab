package journal

import (
	"context"
	"errors"
)

// IsFresh returns true if j has never contained any records.
func IsFresh[T any](ctx context.Context, j Journal[T]) (bool, error) {
	bounds, err := j.Bounds(ctx)
	return bounds.End == 0, err
}

// IsEmpty returns true if j does not currently contain any records.
func IsEmpty[T any](ctx context.Context, j Journal[T]) (bool, error) {
	bounds, err := j.Bounds(ctx)
	return bounds.IsEmpty(), err
}

// FirstRecord returns the oldest record in a journal.
func FirstRecord[T any](ctx context.Context, j Journal[T]) (Position, T, bool, error) {
	for {
		bounds, err := j.Bounds(ctx)
		if bounds.IsEmpty() || err != nil {
			var zero T
			return 0, zero, false, err
		}

		rec, err := j.Get(ctx, bounds.Begin)

		if !errors.As(err, &RecordNotFoundError{}) {
			return bounds.Begin, rec, err == nil, err
		}

		// The journal was truncated after the call to Bounds() but before the
		// call to Get(), so we re-read the bounds and try again.
	}
}

// LastRecord returns the newest record in a journal.
func LastRecord[T any](ctx context.Context, j Journal[T]) (Position, T, bool, error) {
	for {
		bounds, err := j.Bounds(ctx)
		if bounds.IsEmpty() || err != nil {
			var zero T
			return 0, zero, false, err
		}

		pos := bounds.End - 1
		rec, err := j.Get(ctx, pos)

		if !errors.As(err, &RecordNotFoundError{}) {
			return pos, rec, err == nil, err
		}

		// The journal was truncated after the call to Bounds() but before the
		// call to Get(), so we re-read the bounds and try again.
	}
}
