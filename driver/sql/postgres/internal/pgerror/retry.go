package pgerror

import (
	"context"
	"database/sql"
	"fmt"
)

// Retry runs fn within a transaction. If the transaction fails with one of the
// given error codes it is rolled back and attempted again, until it succeeds,
// fails with some other error, or ctx is canceled.
func Retry(
	ctx context.Context,
	db *sql.DB,
	fn func(*sql.Tx) error,
	codes ...string,
) error {
	for attempt := 1; ; attempt++ {
		err := inTx(ctx, db, fn)
		if err == nil {
			return nil
		}

		if !Is(err, codes...) || ctx.Err() != nil {
			return fmt.Errorf("transaction failed (attempt #%d): %w", attempt, err)
		}
	}
}

// inTx runs fn within a transaction, committing it if fn succeeds.
func inTx(
	ctx context.Context,
	db *sql.DB,
	fn func(*sql.Tx) error,
) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit transaction: %w", err)
	}

	return nil
}
