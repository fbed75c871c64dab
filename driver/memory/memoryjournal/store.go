package memoryjournal

import (
	"context"
	"sync"

	"github.com/dogmatiq/searchkit/journal"
)

// Store is an implementation of [journal.Store] that stores records in
// memory.
//
// Records are deep-copied as they are appended and read, so callers may
// freely modify the values they pass in and receive.
type Store[T any] struct {
	// BeforeOpen, if non-nil, is called before a journal is opened.
	BeforeOpen func(name string) error

	// BeforeGet, if non-nil, is called before a record is read by
	// [journal.Journal.Get], which is how journals are probed by a binary
	// search.
	BeforeGet func(name string, pos journal.Position) error

	// BeforeAppend, if non-nil, is called before a record is appended.
	BeforeAppend func(name string, rec T) error

	// AfterAppend, if non-nil, is called after a record is appended.
	AfterAppend func(name string, rec T) error

	journals sync.Map // map[string]*state[T]
}

// BinaryStore is an implementation of [journal.BinaryStore] that stores records
// in memory.
type BinaryStore = Store[[]byte]

// Open returns the journal with the given name.
func (s *Store[T]) Open(ctx context.Context, name string) (journal.Journal[T], error) {
	if s.BeforeOpen != nil {
		if err := s.BeforeOpen(name); err != nil {
			return nil, err
		}
	}

	st, _ := s.journals.LoadOrStore(name, &state[T]{})

	return &journ[T]{
		name:         name,
		state:        st.(*state[T]),
		beforeGet:    s.BeforeGet,
		beforeAppend: s.BeforeAppend,
		afterAppend:  s.AfterAppend,
	}, ctx.Err()
}
