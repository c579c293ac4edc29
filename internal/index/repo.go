package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/codevault/internal/models"
)

// SnippetRow represents a row in the snippets table.
type SnippetRow struct {
	ID          uint32
	Tag         string
	Description string
	Code        string
	Language    string
	Created     string
	Checksum    string
}

// RowFromSnippet converts a stored snippet into an index row.
func RowFromSnippet(s models.Snippet, checksum string) SnippetRow {
	return SnippetRow{
		ID:          s.ID,
		Tag:         s.Tag,
		Description: s.DescriptionOrEmpty(),
		Code:        s.Code,
		Language:    s.LanguageOrEmpty(),
		Created:     s.Timestamp,
		Checksum:    checksum,
	}
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID       uint32 `json:"id"`
	Tag      string `json:"tag"`
	Language string `json:"language,omitempty"`
	Excerpt  string `json:"excerpt"`
}

// UpsertSnippet inserts or replaces a snippet and its FTS entry within a transaction.
func (db *DB) UpsertSnippet(r SnippetRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO snippets (id, tag, description, code, language, created, checksum, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			tag         = excluded.tag,
			description = excluded.description,
			code        = excluded.code,
			language    = excluded.language,
			created     = excluded.created,
			checksum    = excluded.checksum,
			indexed_at  = excluded.indexed_at
	`, r.ID, r.Tag, r.Description, r.Code, r.Language, r.Created, r.Checksum)
	if err != nil {
		return fmt.Errorf("index: upsert snippet: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSnippet removes a snippet and its FTS entry.
func (db *DB) DeleteSnippet(id uint32) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	if _, err := tx.Exec(`DELETE FROM snippets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("index: delete snippet: %w", err)
	}

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a snippet, or empty string if not indexed.
func (db *DB) GetChecksum(id uint32) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM snippets WHERE id = ?`, id).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed snippet keyed by ID.
func (db *DB) AllChecksums() (map[uint32]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM snippets`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[uint32]string)
	for rows.Next() {
		var (
			id uint32
			cs string
		)
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Tag, &r.Language, &r.Excerpt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
