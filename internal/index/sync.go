package index

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/checksum"
	"github.com/starford/codevault/internal/models"
)

// Source yields the current snippet collection.
type Source interface {
	Load() ([]models.Snippet, error)
}

// Changes lists the snippet IDs touched by one Sync pass.
type Changes struct {
	Created []uint32
	Updated []uint32
	Deleted []uint32
}

// Empty reports whether the pass changed nothing.
func (c Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// Sync loads the store and brings the index up to date:
//   - new/changed snippets are upserted
//   - snippets no longer in the store are deleted from the index
//
// A missing store counts as an empty collection. An unreadable store aborts
// the pass and leaves the index untouched.
func Sync(db SnippetIndex, src Source, logger *slog.Logger) (Changes, error) {
	var ch Changes

	snippets, err := src.Load()
	if errors.Is(err, apperr.ErrStoreMissing) {
		snippets, err = nil, nil
	}
	if err != nil {
		return ch, err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return ch, err
	}

	seen := make(map[uint32]struct{}, len(snippets))
	for _, s := range snippets {
		seen[s.ID] = struct{}{}

		cs, err := checksum.Of(s)
		if err != nil {
			logger.Warn("sync: checksum failed", slog.Uint64("id", uint64(s.ID)), slog.String("error", err.Error()))
			continue
		}
		old, indexed := checksums[s.ID]
		if indexed && old == cs {
			continue
		}
		if err := db.UpsertSnippet(RowFromSnippet(s, cs)); err != nil {
			logger.Warn("sync: index failed", slog.Uint64("id", uint64(s.ID)), slog.String("error", err.Error()))
			continue
		}
		if indexed {
			ch.Updated = append(ch.Updated, s.ID)
		} else {
			ch.Created = append(ch.Created, s.ID)
		}
		logger.Debug("sync: indexed", slog.Uint64("id", uint64(s.ID)))
	}

	// Remove stale entries.
	for id := range checksums {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := db.DeleteSnippet(id); err != nil {
			logger.Warn("sync: delete failed", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
			continue
		}
		ch.Deleted = append(ch.Deleted, id)
		logger.Debug("sync: removed stale", slog.Uint64("id", uint64(id)))
	}

	sortIDs(ch.Created)
	sortIDs(ch.Updated)
	sortIDs(ch.Deleted)
	return ch, nil
}

func sortIDs(ids []uint32) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// Syncer serializes Sync passes against one index and reports every change
// to the registered callback, whichever caller triggered the pass.
type Syncer struct {
	mu     sync.Mutex
	db     SnippetIndex
	src    Source
	logger *slog.Logger
	notify EventCallback
}

// NewSyncer creates a Syncer for db fed from src.
func NewSyncer(db SnippetIndex, src Source, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{db: db, src: src, logger: logger}
}

// OnChange sets the callback invoked for each snippet a pass touches.
func (s *Syncer) OnChange(cb EventCallback) {
	s.mu.Lock()
	s.notify = cb
	s.mu.Unlock()
}

// Sync runs one pass and dispatches its changes before releasing the lock,
// so events from concurrent passes never interleave.
func (s *Syncer) Sync() (Changes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := Sync(s.db, s.src, s.logger)
	if err != nil {
		return ch, err
	}
	if s.notify == nil {
		return ch, nil
	}
	for _, id := range ch.Created {
		s.notify("created", id)
	}
	for _, id := range ch.Updated {
		s.notify("updated", id)
	}
	for _, id := range ch.Deleted {
		s.notify("deleted", id)
	}
	return ch, nil
}
