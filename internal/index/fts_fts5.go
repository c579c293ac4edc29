//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
			id UNINDEXED,
			tag,
			description,
			code,
			language,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, r SnippetRow) error {
	_, _ = tx.Exec(`DELETE FROM snippets_fts WHERE id = ?`, r.ID)
	_, err := tx.Exec(`INSERT INTO snippets_fts (id, tag, description, code, language) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Tag, r.Description, r.Code, r.Language)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id uint32) {
	_, _ = tx.Exec(`DELETE FROM snippets_fts WHERE id = ?`, id)
}

// Search performs an FTS5 full-text search and returns matching results with excerpts.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT s.id,
		       s.tag,
		       s.language,
		       snippet(snippets_fts, 3, '[', ']', '...', 16)
		FROM snippets_fts
		JOIN snippets s ON s.id = snippets_fts.id
		WHERE snippets_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, matchExpr(query), limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}

// matchExpr quotes every whitespace-separated term so operator characters
// in code (e.g. "-", ":", "*") are matched literally.
func matchExpr(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}
