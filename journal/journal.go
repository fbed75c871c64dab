package journal

import (
	"context"
)

// Position is the index of a record within a [Journal]. The first record is
// always at position 0.
type Position uint64

// A RangeFunc is a function used to range over the records in a [Journal].
//
// If err is non-nil, ranging stops and err is propagated up the stack.
// Otherwise, if ok is false, ranging stops without any error being propagated.
type RangeFunc[T any] func(ctx context.Context, pos Position, rec T) (ok bool, err error)

// A Journal is an append-only log containing records of type T.
//
// Records are addressed by [Position], which makes a journal a randomly
// indexable sequence. Journals whose records are appended in order of some key
// can be searched with [SearchBy].
type Journal[T any] interface {
	// Name returns the name of the journal.
	Name() string

	// Bounds returns the half-open interval [begin, end) describing the
	// positions of the first and last records in the journal.
	Bounds(ctx context.Context) (Interval, error)

	// Get returns the record at the given position.
	//
	// It returns a [RecordNotFoundError] if there is no record at the given
	// position.
	Get(ctx context.Context, pos Position) (rec T, err error)

	// Range invokes fn for each record in the journal, in order, starting with
	// the record at the given position.
	//
	// If pos is the end of the journal, fn is never invoked. It returns a
	// [RecordNotFoundError] if pos is before the beginning of the journal or
	// after its end.
	Range(ctx context.Context, pos Position, fn RangeFunc[T]) error

	// Append adds a record to the journal at the given position.
	//
	// pos must be the end of the journal, as returned by [Journal.Bounds]. If
	// pos < end then [ErrConflict] is returned, indicating that there is
	// already a record at the given position. The behavior is undefined if
	// pos > end.
	Append(ctx context.Context, pos Position, rec T) error

	// Truncate removes journal records in the half-open interval [begin, pos),
	// such that pos becomes the new beginning of the journal.
	//
	// The behavior is undefined if pos > end.
	Truncate(ctx context.Context, pos Position) error

	// Close closes the journal.
	Close() error
}
