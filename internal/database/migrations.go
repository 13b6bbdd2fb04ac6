package database

import (
	"context"
	"database/sql"
)

// The storage layout is deliberately key-value: every entity is a JSON
// record stored under its id, with no foreign keys and no secondary
// indexes.  Referential integrity between the tables is maintained in
// application code.  The DDL below is valid for both supported drivers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS songs (
		id     BIGINT UNSIGNED PRIMARY KEY,
		record TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS owners (
		id     BIGINT UNSIGNED PRIMARY KEY,
		record TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS licenses (
		id     BIGINT UNSIGNED PRIMARY KEY,
		record TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS licensees (
		id     BIGINT UNSIGNED PRIMARY KEY,
		record TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS id_counter (
		id   INT PRIMARY KEY,
		next BIGINT UNSIGNED NOT NULL
	)`,
}

// Migrate creates the entity tables and seeds the shared id counter.
// It is idempotent and safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Seed the counter row once; later runs leave the persisted value alone.
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM id_counter WHERE id = 1`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if _, err := db.ExecContext(ctx, `INSERT INTO id_counter (id, next) VALUES (1, 0)`); err != nil {
			return err
		}
	}
	return nil
}
