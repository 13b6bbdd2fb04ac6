package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrCounterMissing is returned when the id_counter row has not been
// seeded.  This indicates the schema migration never ran and is treated
// as fatal by callers.
var ErrCounterMissing = errors.New("id counter row missing, run migrations first")

// IDRepo issues globally unique, monotonically increasing ids shared
// across all entity kinds.  A single persisted counter backs every
// table; ids are never reused and gaps are acceptable (an id may be
// allocated and then discarded when a later step of the command fails).
type IDRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewIDRepo constructs an IDRepo with the provided DB handle.
func NewIDRepo(db *sql.DB) *IDRepo {
	return &IDRepo{db: db}
}

// Next returns the current counter value and advances the persisted
// counter by one.  The read and the increment run in one transaction so
// the issued value is durable before it is handed out.
func (r *IDRepo) Next(ctx context.Context) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var next uint64
	if err := tx.QueryRowContext(ctx, `SELECT next FROM id_counter WHERE id = 1`).Scan(&next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCounterMissing
		}
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE id_counter SET next = next + 1 WHERE id = 1`); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}
