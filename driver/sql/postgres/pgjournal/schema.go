package pgjournal

import (
	"context"
	"database/sql"

	"github.com/dogmatiq/searchkit/driver/sql/postgres/internal/pgerror"
)

// schema is the DDL for the tables used by [Store].
//
// The bounds of each journal are stored alongside its name so that they
// survive truncation of every record.
const schema = `
CREATE SCHEMA IF NOT EXISTS searchkit;

CREATE TABLE IF NOT EXISTS searchkit.journal (
	id             BIGSERIAL NOT NULL PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	begin_position BIGINT NOT NULL,
	end_position   BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS searchkit.journal_record (
	journal_id       BIGINT NOT NULL REFERENCES searchkit.journal (id),
	encoded_position BIGINT NOT NULL,
	record           BYTEA NOT NULL,

	PRIMARY KEY (journal_id, encoded_position)
);
`

// CreateSchema creates the PostgreSQL schema elements required by [Store].
func CreateSchema(
	ctx context.Context,
	db *sql.DB,
) error {
	return pgerror.Retry(
		ctx,
		db,
		func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, schema)
			return err
		},
		// IF NOT EXISTS does not prevent unique violations when the schema is
		// created by several connections at once.
		pgerror.CodeUniqueViolation,
	)
}
