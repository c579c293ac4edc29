// Package testutil provides shared test helpers for setting up stores,
// indexes and services.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/snippetservice"
	"github.com/starford/codevault/internal/store"
)

// QuietLogger discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite index that is closed on cleanup.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "codevault.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a store whose file lives in a fresh temp directory.
// The file itself does not exist until the first write.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data", "codevault.json"))
	if err != nil {
		t.Fatal(err)
	}
	return st
}

// TestService wires a service over TestStore and TestDB.
func TestService(t *testing.T) *snippetservice.Service {
	t.Helper()
	return snippetservice.NewService(TestStore(t), TestDB(t), QuietLogger())
}
