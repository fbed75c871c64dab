package memoryjournal

import (
	"context"
	"errors"
	"sync"

	"github.com/dogmatiq/searchkit/driver/memory/internal/clone"
	"github.com/dogmatiq/searchkit/journal"
)

// state is the in-memory state of a journal.
type state[T any] struct {
	sync.RWMutex
	Begin, End journal.Position
	Records    []T
}

// journ is an implementation of [journal.Journal] that manipulates a journal's
// in-memory [state].
type journ[T any] struct {
	name         string
	state        *state[T]
	beforeGet    func(name string, pos journal.Position) error
	beforeAppend func(name string, rec T) error
	afterAppend  func(name string, rec T) error
}

func (j *journ[T]) Name() string {
	return j.name
}

func (j *journ[T]) Bounds(ctx context.Context) (journal.Interval, error) {
	if j.state == nil {
		panic("journal is closed")
	}

	j.state.RLock()
	defer j.state.RUnlock()

	return journal.Interval{
		Begin: j.state.Begin,
		End:   j.state.End,
	}, ctx.Err()
}

func (j *journ[T]) Get(ctx context.Context, pos journal.Position) (T, error) {
	if j.state == nil {
		panic("journal is closed")
	}

	if j.beforeGet != nil {
		if err := j.beforeGet(j.name, pos); err != nil {
			var zero T
			return zero, err
		}
	}

	j.state.RLock()
	defer j.state.RUnlock()

	if !(journal.Interval{Begin: j.state.Begin, End: j.state.End}).Contains(pos) {
		var zero T
		return zero, journal.RecordNotFoundError{Position: pos}
	}

	return clone.Clone(j.state.Records[pos-j.state.Begin]), ctx.Err()
}

func (j *journ[T]) Range(
	ctx context.Context,
	pos journal.Position,
	fn journal.RangeFunc[T],
) error {
	if j.state == nil {
		panic("journal is closed")
	}

	j.state.RLock()
	begin := j.state.Begin
	end := j.state.End
	records := j.state.Records
	j.state.RUnlock()

	if pos < begin || pos > end {
		return journal.RecordNotFoundError{Position: pos}
	}

	for i, rec := range records[pos-begin:] {
		ok, err := fn(ctx, pos+journal.Position(i), clone.Clone(rec))
		if !ok || err != nil {
			return err
		}
	}

	return ctx.Err()
}

func (j *journ[T]) Append(ctx context.Context, pos journal.Position, rec T) error {
	if j.state == nil {
		panic("journal is closed")
	}

	rec = clone.Clone(rec)

	j.state.Lock()
	defer j.state.Unlock()

	if j.beforeAppend != nil {
		if err := j.beforeAppend(j.name, rec); err != nil {
			return err
		}
	}

	switch {
	case pos < j.state.End:
		return journal.ErrConflict
	case pos == j.state.End:
		j.state.Records = append(j.state.Records, rec)
		j.state.End++
	default:
		panic("position out of range, this causes undefined behavior in a 'real' journal implementation")
	}

	if j.afterAppend != nil {
		if err := j.afterAppend(j.name, rec); err != nil {
			return err
		}
	}

	return ctx.Err()
}

func (j *journ[T]) Truncate(ctx context.Context, pos journal.Position) error {
	if j.state == nil {
		panic("journal is closed")
	}

	j.state.Lock()
	defer j.state.Unlock()

	if pos > j.state.End {
		panic("position out of range, this causes undefined behavior in a 'real' journal implementation")
	}

	if pos > j.state.Begin {
		j.state.Records = j.state.Records[pos-j.state.Begin:]
		j.state.Begin = pos
	}

	return ctx.Err()
}

func (j *journ[T]) Close() error {
	if j.state == nil {
		return errors.New("journal is already closed")
	}

	j.state = nil

	return nil
}
