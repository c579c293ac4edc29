// Package index mirrors the snippet store into SQLite for full-text search,
// with FTS5 when built with the sqlite_fts5 tag.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS snippets (
	id          INTEGER PRIMARY KEY,
	tag         TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	code        TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT '',
	created     TEXT NOT NULL DEFAULT '',
	checksum    TEXT NOT NULL DEFAULT '',
	indexed_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_snippets_tag ON snippets(tag);
CREATE INDEX IF NOT EXISTS idx_snippets_language ON snippets(language);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
