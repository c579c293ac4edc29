// Package store owns the persisted snippet collection: one pretty-printed
// JSON file that is rewritten whole on every mutation.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/storage"
)

// Confirmer asks the operator to approve a destructive step.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Store persists the snippet collection in a single file.
type Store struct {
	fs   storage.Provider
	name string
}

// New creates a Store for the file name (relative to the provider root).
func New(provider storage.Provider, name string) *Store {
	return &Store{fs: provider, name: name}
}

// Open creates a Store for the file at path, creating its directory if needed.
// The file itself is not created until the first write.
func Open(path string) (*Store, error) {
	provider, err := storage.EnsureFS(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return New(provider, filepath.Base(path)), nil
}

// Path returns the absolute path of the backing file.
func (s *Store) Path() string {
	abs, err := s.fs.Abs(s.name)
	if err != nil {
		return s.name
	}
	return abs
}

// Load decodes the full collection.
func (s *Store) Load() ([]models.Snippet, error) {
	data, err := s.fs.Read(s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.StoreMissing(s.Path(), err)
		}
		return nil, fmt.Errorf("store: load: %w", err)
	}
	return s.decode(data)
}

// Raw returns the stored bytes without decoding them.
func (s *Store) Raw() ([]byte, error) {
	data, err := s.fs.Read(s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.StoreMissing(s.Path(), err)
		}
		return nil, fmt.Errorf("store: read: %w", err)
	}
	return data, nil
}

// Append adds one snippet, starting from an empty collection when the store
// does not exist yet.
func (s *Store) Append(snippet models.Snippet) error {
	snippets, err := s.Load()
	if err != nil && !errors.Is(err, apperr.ErrStoreMissing) {
		return err
	}
	return s.ReplaceAll(append(snippets, snippet))
}

// ReplaceAll persists snippets as the complete new state.
func (s *Store) ReplaceAll(snippets []models.Snippet) error {
	data, err := Encode(snippets)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := s.fs.Write(s.name, data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	return nil
}

// DeleteByIDs removes every snippet listed in ids. All IDs are validated
// before anything is touched; if any is missing nothing is deleted and the
// error names every missing ID. The deletion runs only after confirm approves.
func (s *Store) DeleteByIDs(ids []uint32, confirm Confirmer) (int, error) {
	if len(ids) == 0 {
		return 0, apperr.InvalidInput("no snippet IDs given")
	}
	snippets, err := s.Load()
	if err != nil {
		return 0, err
	}

	present := make(map[uint32]struct{}, len(snippets))
	for _, sn := range snippets {
		present[sn.ID] = struct{}{}
	}
	remove := make(map[uint32]struct{}, len(ids))
	var missing []uint32
	for _, id := range ids {
		if _, ok := remove[id]; ok {
			continue
		}
		remove[id] = struct{}{}
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return 0, apperr.NotFoundIDs(missing...)
	}

	if confirm != nil {
		noun := "snippet"
		if len(remove) > 1 {
			noun = "snippets"
		}
		ok, err := confirm.Confirm(fmt.Sprintf("Are you sure you want to permanently delete %s %s?", noun, apperr.JoinIDs(ids)))
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, apperr.Cancelled("snippet deletion")
		}
	}

	kept := make([]models.Snippet, 0, len(snippets)-len(remove))
	for _, sn := range snippets {
		if _, ok := remove[sn.ID]; !ok {
			kept = append(kept, sn)
		}
	}
	if err := s.ReplaceAll(kept); err != nil {
		return 0, err
	}
	return len(snippets) - len(kept), nil
}

// NextID allocates the next identifier from the persisted collection.
// A missing or unreadable store yields 1.
func (s *Store) NextID() uint32 {
	snippets, err := s.Load()
	if err != nil {
		return 1
	}
	return NextID(snippets)
}

func (s *Store) decode(data []byte) ([]models.Snippet, error) {
	var snippets []models.Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, apperr.StoreUnreadable(s.Path(), err)
	}
	if snippets == nil {
		// A literal "null" is not a collection.
		return nil, apperr.StoreUnreadable(s.Path(), errors.New("top-level value is not a list"))
	}
	return snippets, nil
}

// Encode renders snippets in the persisted form: an indented JSON list.
func Encode(snippets []models.Snippet) ([]byte, error) {
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snippets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
