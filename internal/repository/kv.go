// Package repository contains data access logic separated from HTTP
// handlers.  Every entity lives in its own key-value table holding a
// JSON record under the entity id; this file implements the raw table
// operations shared by the typed repositories.  The storage layer has
// no foreign keys, no secondary indexes and no multi-key transactions:
// all filtering is a full scan and all cross-table consistency is
// maintained by the licensing package.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sql sentinel values
)

// kvGet returns the raw record stored under id, or nil when absent.
func kvGet(ctx context.Context, db *sql.DB, table string, id uint64) ([]byte, error) {
	var rec []byte
	err := db.QueryRowContext(ctx, "SELECT record FROM "+table+" WHERE id = ?", id).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// kvPut stores the record under id and returns the previous record if
// one existed.  Callers use the previous value to distinguish an
// overwrite from a fresh insert.
func kvPut(ctx context.Context, db *sql.DB, table string, id uint64, rec []byte) ([]byte, error) {
	prev, err := kvGet(ctx, db, table, id)
	if err != nil {
		return nil, err
	}
	// REPLACE INTO is supported by both mysql and sqlite3.
	if _, err := db.ExecContext(ctx, "REPLACE INTO "+table+" (id, record) VALUES (?, ?)", id, rec); err != nil {
		return nil, err
	}
	return prev, nil
}

// kvRemove deletes the record stored under id and returns it, or nil
// when no record existed.
func kvRemove(ctx context.Context, db *sql.DB, table string, id uint64) ([]byte, error) {
	prev, err := kvGet(ctx, db, table, id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, nil
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return nil, err
	}
	return prev, nil
}

// kvAll returns every record in the table in ascending id order.  Each
// call produces a fresh snapshot.
func kvAll(ctx context.Context, db *sql.DB, table string) ([][]byte, error) {
	rows, err := db.QueryContext(ctx, "SELECT record FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var rec []byte
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
