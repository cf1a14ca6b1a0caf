// Package sqlite implements the persistence repositories on SQLite via the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store owns the database handle and implements every persistence
// repository interface.
type Store struct {
	db *sql.DB
}

// Open establishes a connection pool for the given DSN. Foreign keys are
// enforced on every connection.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = "file:equity.db?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single writer connection
	// avoids SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS participants (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	timezone    TEXT NOT NULL,
	country     TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	proposed_time     TIMESTAMP NOT NULL,
	duration_minutes  INTEGER NOT NULL CHECK (duration_minutes BETWEEN 15 AND 480),
	notes             TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMP NOT NULL,
	updated_at        TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS meeting_participants (
	meeting_id      TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
	participant_id  TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	PRIMARY KEY (meeting_id, participant_id)
);

CREATE TABLE IF NOT EXISTS working_hours (
	country               TEXT PRIMARY KEY,
	green_start           INTEGER NOT NULL,
	green_end             INTEGER NOT NULL,
	orange_morning_start  INTEGER NOT NULL,
	orange_morning_end    INTEGER NOT NULL,
	orange_evening_start  INTEGER NOT NULL,
	orange_evening_end    INTEGER NOT NULL,
	work_days             TEXT NOT NULL,
	created_at            TIMESTAMP NOT NULL,
	updated_at            TIMESTAMP NOT NULL
);
`

// Migrate applies the schema. It is idempotent and safe to run at every
// startup.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// withTransaction runs fn inside a transaction, rolling back on error.
func (s *Store) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
