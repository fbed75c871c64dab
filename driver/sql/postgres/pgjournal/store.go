package pgjournal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dogmatiq/searchkit/driver/sql/postgres/internal/bigint"
	"github.com/dogmatiq/searchkit/driver/sql/postgres/internal/pgerror"
	"github.com/dogmatiq/searchkit/journal"
)

// Store is an implementation of [journal.BinaryStore] that persists to a
// PostgreSQL database.
//
// The schema must be created with [CreateSchema] before the store is used.
type Store struct {
	// DB is the PostgreSQL database connection.
	DB *sql.DB
}

// Open returns the journal with the given name.
func (s *Store) Open(ctx context.Context, name string) (journal.BinaryJournal, error) {
	row := s.DB.QueryRowContext(
		ctx,
		`INSERT INTO searchkit.journal
		(name, begin_position, end_position) VALUES ($1, $2, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		name,
		bigint.Encode(journal.Position(0)),
	)

	j := &journ{
		name: name,
		db:   s.DB,
	}

	if err := row.Scan(&j.id); err != nil {
		if pgerror.Is(err, pgerror.CodeUndefinedTable) {
			return nil, fmt.Errorf("cannot open journal, has CreateSchema() been called?: %w", err)
		}
		return nil, fmt.Errorf("cannot open journal: %w", err)
	}

	return j, nil
}
