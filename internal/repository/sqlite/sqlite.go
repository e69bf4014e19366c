// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// SQLite is embedded — the database lives in a single file next to the
// binary, and ":memory:" gives every test a fresh, disposable database.
// modernc.org/sqlite is a pure Go translation of SQLite, so no C compiler
// is needed and cross-compilation stays simple.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath, configures it, and runs
// migrations. Use ":memory:" for an in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open only creates the pool; Ping forces a real connection so a bad
	// path or permissions problem surfaces now instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a vote update is being written.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite; the quote→user reference
	// needs them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is still reachable. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			name             TEXT NOT NULL,
			email            TEXT NOT NULL UNIQUE,
			password         TEXT NOT NULL,
			date_of_creation DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS quote (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			content          TEXT NOT NULL,
			date_of_creation DATETIME NOT NULL,
			date_of_update   DATETIME,
			user_id          INTEGER NOT NULL REFERENCES user(id),
			votes            INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_quote_votes ON quote(votes);
		CREATE INDEX IF NOT EXISTS idx_quote_user_id ON quote(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating quote table: %w", err)
	}

	return nil
}
