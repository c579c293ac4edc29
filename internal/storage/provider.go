// Package storage defines the file-system abstraction behind the snippet
// store and the export directory.
package storage

// Provider is the interface for rooted file operations.
type Provider interface {
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path (relative to the root).
	Write(path string, content []byte) error
	// Exists reports whether a file is present at path (relative to the root).
	Exists(path string) (bool, error)
	// Abs resolves path (relative to the root) to an absolute path.
	Abs(path string) (string, error)
}
