// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite, so
// the binary builds without CGo and cross-compiles anywhere Go runs. On top
// of database/sql we use sqlx, which scans rows straight into structs via
// their `db:` tags and removes a lot of Scan boilerplate.
//
// Primary keys are snowflake ids: 64-bit integers that embed a timestamp,
// so they're unique across processes (distinct node ids) and roughly sort
// by creation time. They're generated here, not by AUTOINCREMENT, so a row
// has its final id before the INSERT runs.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // registers the "sqlite" driver with database/sql
)

// DB owns the connection pool and the snowflake node. It hands out
// repository implementations via Users() and Notes(); the caller (the
// server) controls the lifecycle and must Close on shutdown.
type DB struct {
	conn *sqlx.DB
	node *snowflake.Node
}

// New opens the database at dbPath (":memory:" for tests), configures it,
// and creates the schema. nodeID distinguishes processes generating ids
// concurrently; a single-server deployment can leave it at 1.
func New(dbPath string, nodeID int64) (*DB, error) {
	conn, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection; with a pool of more than
	// one, each connection would see its own empty database. Pin the pool to
	// a single connection for ":memory:" (used by tests).
	if strings.Contains(dbPath, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	// WAL lets reads proceed while a write is in flight — important under
	// concurrent requests. Foreign keys are off by default in SQLite; the
	// notes.user_id constraint (and its ON DELETE CASCADE) needs them on.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: creating snowflake node %d: %w", nodeID, err)
	}

	db := &DB{conn: conn, node: node}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer this right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserDB {
	return &UserDB{db: db}
}

// Notes returns the note repository backed by this database.
func (db *DB) Notes() *NoteDB {
	return &NoteDB{db: db}
}

// newID generates a fresh snowflake id.
func (db *DB) newID() int64 {
	return db.node.Generate().Int64()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
//
// Deleting a user cascades to their notes — a note must always reference a
// live owner, so orphaning rows on user deletion is not an option.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY,
			username   TEXT NOT NULL UNIQUE,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			edited_at  DATETIME,
			user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating notes table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite doesn't export a typed error for this, so we match the
// message SQLite produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
