//go:build sqlite_fts5

package index

import (
	"strings"
	"testing"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM snippets_fts`).Scan(&count); err != nil {
		t.Fatalf("snippets_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithExcerpt(t *testing.T) {
	db := testDB(t)
	row := SnippetRow{
		ID:       3,
		Tag:      "retry",
		Code:     "for attempt := 0; attempt < 3; attempt++ { backoff(attempt) }",
		Language: "Go",
		Checksum: "f1",
	}
	if err := db.UpsertSnippet(row); err != nil {
		t.Fatalf("UpsertSnippet: %v", err)
	}

	results, err := db.Search("backoff", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != 3 {
		t.Errorf("id = %d", results[0].ID)
	}
	if !strings.Contains(results[0].Excerpt, "[backoff]") {
		t.Errorf("excerpt %q lacks highlighted term", results[0].Excerpt)
	}
}

func TestFTS5_DeleteRemovesFromSearch(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertSnippet(SnippetRow{ID: 1, Tag: "temp", Code: "ephemeral", Checksum: "1"})
	if err := db.DeleteSnippet(1); err != nil {
		t.Fatalf("DeleteSnippet: %v", err)
	}
	results, err := db.Search("ephemeral", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestMatchExpr_QuotesOperators(t *testing.T) {
	got := matchExpr(`a-b "c"`)
	want := `"a-b" """c"""`
	if got != want {
		t.Errorf("matchExpr = %s, want %s", got, want)
	}
}
