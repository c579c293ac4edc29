package index

// SnippetIndex defines the interface for snippet indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type SnippetIndex interface {
	UpsertSnippet(row SnippetRow) error
	DeleteSnippet(id uint32) error
	GetChecksum(id uint32) (string, error)
	AllChecksums() (map[uint32]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies SnippetIndex at compile time.
var _ SnippetIndex = (*DB)(nil)
