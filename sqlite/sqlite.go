// Package sqlite provides SQLite-based storage implementations for mailclean
// services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist. Raw and
// cleaned databases share one schema: an imported database simply leaves the
// body_clean columns empty, and a cleaned database fills them in. Two FTS5
// indexes cover the raw payload and the cleaned body respectively, kept in
// sync by triggers.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL DEFAULT '',
			sender TEXT NOT NULL DEFAULT '',
			recipients TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			headers TEXT NOT NULL DEFAULT '{}',
			attachments TEXT NOT NULL DEFAULT '[]',
			payload TEXT NOT NULL DEFAULT '',
			body_clean TEXT NOT NULL DEFAULT '',
			cleaning_stats TEXT NOT NULL DEFAULT '',
			imported_at TEXT NOT NULL DEFAULT '',
			cleaned_at TEXT NOT NULL DEFAULT ''
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
			subject, payload, content='messages', content_rowid='rowid'
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS messages_clean_fts USING fts5(
			subject, body_clean, content='messages', content_rowid='rowid'
		);

		CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
			INSERT INTO messages_fts(rowid, subject, payload)
				VALUES (new.rowid, new.subject, new.payload);
			INSERT INTO messages_clean_fts(rowid, subject, body_clean)
				VALUES (new.rowid, new.subject, new.body_clean);
		END;

		CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
			INSERT INTO messages_fts(messages_fts, rowid, subject, payload)
				VALUES ('delete', old.rowid, old.subject, old.payload);
			INSERT INTO messages_clean_fts(messages_clean_fts, rowid, subject, body_clean)
				VALUES ('delete', old.rowid, old.subject, old.body_clean);
		END;

		CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
			INSERT INTO messages_fts(messages_fts, rowid, subject, payload)
				VALUES ('delete', old.rowid, old.subject, old.payload);
			INSERT INTO messages_fts(rowid, subject, payload)
				VALUES (new.rowid, new.subject, new.payload);
			INSERT INTO messages_clean_fts(messages_clean_fts, rowid, subject, body_clean)
				VALUES ('delete', old.rowid, old.subject, old.body_clean);
			INSERT INTO messages_clean_fts(rowid, subject, body_clean)
				VALUES (new.rowid, new.subject, new.body_clean);
		END;
	`

	_, err := db.db.Exec(schema)
	return err
}
