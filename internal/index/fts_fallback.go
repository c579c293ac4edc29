//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE fallback on the snippets table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ SnippetRow) error {
	// Content is already stored in the snippets table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ uint32) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + likeEscaper.Replace(query) + "%"
	rows, err := db.conn.Query(`
		SELECT id, tag, language, substr(code, 1, 120)
		FROM snippets
		WHERE tag LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
			OR code LIKE ? ESCAPE '\' OR language LIKE ? ESCAPE '\'
		ORDER BY id
		LIMIT ?
	`, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}
