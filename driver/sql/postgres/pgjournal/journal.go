package pgjournal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dogmatiq/searchkit/driver/sql/postgres/internal/bigint"
	"github.com/dogmatiq/searchkit/journal"
)

// journ is an implementation of [journal.BinaryJournal] that persists to a
// PostgreSQL database.
type journ struct {
	name string
	db   *sql.DB
	id   int64
}

func (j *journ) Name() string {
	return j.name
}

func (j *journ) Bounds(ctx context.Context) (bounds journal.Interval, err error) {
	row := j.db.QueryRowContext(
		ctx,
		`SELECT begin_position, end_position
		FROM searchkit.journal
		WHERE id = $1`,
		j.id,
	)

	if err := row.Scan(
		bigint.Scan(&bounds.Begin),
		bigint.Scan(&bounds.End),
	); err != nil {
		return journal.Interval{}, fmt.Errorf("cannot query journal bounds: %w", err)
	}

	return bounds, nil
}

func (j *journ) Get(ctx context.Context, pos journal.Position) ([]byte, error) {
	row := j.db.QueryRowContext(
		ctx,
		`SELECT record
		FROM searchkit.journal_record
		WHERE journal_id = $1
		AND encoded_position = $2`,
		j.id,
		bigint.Encode(pos),
	)

	var rec []byte
	if err := row.Scan(&rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, journal.RecordNotFoundError{Position: pos}
		}
		return nil, fmt.Errorf("cannot scan journal record: %w", err)
	}

	return rec, nil
}

func (j *journ) Range(
	ctx context.Context,
	pos journal.Position,
	fn journal.BinaryRangeFunc,
) error {
	bounds, err := j.Bounds(ctx)
	if err != nil {
		return err
	}

	if pos < bounds.Begin || pos > bounds.End {
		return journal.RecordNotFoundError{Position: pos}
	}

	// TODO: paginate results across multiple queries to avoid loading the
	// entire tail of a long journal at once.
	rows, err := j.db.QueryContext(
		ctx,
		`SELECT encoded_position, record
		FROM searchkit.journal_record
		WHERE journal_id = $1
		AND encoded_position >= $2
		ORDER BY encoded_position`,
		j.id,
		bigint.Encode(pos),
	)
	if err != nil {
		return fmt.Errorf("cannot query journal records: %w", err)
	}
	defer rows.Close()

	expectPos := pos

	for rows.Next() {
		var (
			p   journal.Position
			rec []byte
		)
		if err := rows.Scan(
			bigint.Scan(&p),
			&rec,
		); err != nil {
			return fmt.Errorf("cannot scan journal record: %w", err)
		}

		// A gap means the journal was truncated after the bounds were read.
		if p != expectPos {
			return journal.RecordNotFoundError{Position: expectPos}
		}

		expectPos++

		ok, err := fn(ctx, p, rec)
		if !ok || err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("cannot range over journal records: %w", err)
	}

	return nil
}

func (j *journ) Append(ctx context.Context, pos journal.Position, rec []byte) error {
	res, err := j.db.ExecContext(
		ctx,
		`WITH advanced AS (
			UPDATE searchkit.journal
			SET end_position = $3
			WHERE id = $1
			AND end_position = $2
			RETURNING id
		)
		INSERT INTO searchkit.journal_record
		(journal_id, encoded_position, record)
		SELECT id, $2, $4 FROM advanced`,
		j.id,
		bigint.Encode(pos),
		bigint.Encode(pos + 1),
		rec,
	)
	if err != nil {
		return fmt.Errorf("cannot insert journal record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cannot determine affected rows: %w", err)
	}

	if n != 1 {
		return journal.ErrConflict
	}

	return nil
}

func (j *journ) Truncate(ctx context.Context, pos journal.Position) error {
	if _, err := j.db.ExecContext(
		ctx,
		`WITH truncated AS (
			DELETE FROM searchkit.journal_record
			WHERE journal_id = $1
			AND encoded_position < $2
		)
		UPDATE searchkit.journal
		SET begin_position = $2
		WHERE id = $1
		AND begin_position < $2`,
		j.id,
		bigint.Encode(pos),
	); err != nil {
		return fmt.Errorf("cannot truncate journal records: %w", err)
	}

	return nil
}

func (j *journ) Close() error {
	return nil
}
