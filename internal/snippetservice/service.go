// Package snippetservice implements the codevault commands on top of the
// store, the filter engine, the edit resolver, the exporter and the index.
package snippetservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/export"
	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/highlight"
	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/resolve"
	"github.com/starford/codevault/internal/store"
)

// Interactor is the operator side of the edit flow.
type Interactor interface {
	resolve.Chooser
	store.Confirmer
	ReadLine(question string) (string, error)
	ReadAll(banner string) (string, error)
}

// CaptureInput is a new snippet before an ID and timestamp are assigned.
type CaptureInput struct {
	Tag         string
	Description string
	Language    string
	Code        string
}

// Validate implements validation.Validatable.
func (in CaptureInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Tag, validation.Required, validation.Length(1, 200)),
	)
}

// Service coordinates store, index and export operations.
type Service struct {
	store    *store.Store
	exporter *export.Exporter
	db       index.SnippetIndex
	syncer   *index.Syncer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a snippet service. db may be nil when search is not needed.
func NewService(st *store.Store, db index.SnippetIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:    st,
		exporter: export.New(logger),
		db:       db,
		logger:   logger,
		now:      time.Now,
	}
	if db != nil {
		s.syncer = index.NewSyncer(db, st, logger)
	}
	return s
}

// Syncer returns the index syncer shared by search and the watcher, or nil
// when no index is configured.
func (s *Service) Syncer() *index.Syncer { return s.syncer }

// Store exposes the underlying snippet store.
func (s *Service) Store() *store.Store { return s.store }

// Capture validates in, assigns the next ID and a local timestamp, and appends it.
func (s *Service) Capture(_ context.Context, in CaptureInput) (models.Snippet, error) {
	in.Tag = strings.TrimSpace(in.Tag)
	in.Description = strings.TrimSpace(in.Description)
	in.Language = strings.TrimSpace(in.Language)
	if err := in.Validate(); err != nil {
		return models.Snippet{}, apperr.InvalidInput("capture: %v", err)
	}

	sn := models.Snippet{
		ID:          s.store.NextID(),
		Tag:         in.Tag,
		Description: models.OptionalString(in.Description),
		Code:        in.Code,
		Language:    models.OptionalString(in.Language),
		Timestamp:   s.now().Format(models.TimestampLayout),
	}
	if err := s.store.Append(sn); err != nil {
		return models.Snippet{}, err
	}
	s.logger.Debug("snippet captured", slog.Uint64("id", uint64(sn.ID)), slog.String("tag", sn.Tag))
	return sn, nil
}

// List returns the snippets matching q in stored order.
func (s *Service) List(_ context.Context, q filter.Query) ([]models.Snippet, error) {
	snippets, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return filter.Apply(snippets, q)
}

// Get returns the snippet with the given ID.
func (s *Service) Get(ctx context.Context, id uint32) (models.Snippet, error) {
	found, err := s.List(ctx, filter.Query{ID: &id})
	if err != nil {
		return models.Snippet{}, err
	}
	return found[0], nil
}

// Edit resolves the target, asks ui for replacement values and persists the
// result. Blank answers keep the current value. The edited snippet receives a
// fresh ID (one past the highest ID before the edit) and keeps its timestamp.
func (s *Service) Edit(_ context.Context, sel resolve.Selector, ui Interactor) (models.Snippet, error) {
	snippets, err := s.store.Load()
	if err != nil {
		return models.Snippet{}, err
	}
	target, rest, err := resolve.ForEdit(snippets, sel, ui)
	if err != nil {
		return models.Snippet{}, err
	}

	edited := target
	edited.ID = store.NextID(snippets)

	tag, err := ui.ReadLine(fmt.Sprintf("New tag [%s]:", target.Tag))
	if err != nil {
		return models.Snippet{}, err
	}
	if tag != "" {
		edited.Tag = tag
	}
	desc, err := ui.ReadLine(fmt.Sprintf("New description [%s]:", target.DescriptionOrEmpty()))
	if err != nil {
		return models.Snippet{}, err
	}
	if desc != "" {
		edited.Description = models.OptionalString(desc)
	}
	lang, err := ui.ReadLine(fmt.Sprintf("New language [%s]:", target.LanguageOrEmpty()))
	if err != nil {
		return models.Snippet{}, err
	}
	if lang != "" {
		edited.Language = models.OptionalString(lang)
	}
	code, err := ui.ReadAll("New code (finish with Ctrl-D, leave empty to keep the current code):")
	if err != nil {
		return models.Snippet{}, err
	}
	if strings.TrimSpace(code) != "" {
		edited.Code = code
	}

	if err := s.store.ReplaceAll(append(rest, edited)); err != nil {
		return models.Snippet{}, err
	}
	s.logger.Debug("snippet edited",
		slog.Uint64("from", uint64(target.ID)),
		slog.Uint64("to", uint64(edited.ID)))
	return edited, nil
}

// Delete removes the snippets with the given IDs after confirmation.
func (s *Service) Delete(_ context.Context, ids []uint32, confirm store.Confirmer) (int, error) {
	n, err := s.store.DeleteByIDs(ids, confirm)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("snippets deleted", slog.Int("count", n))
	return n, nil
}

// Export writes every snippet matching q to dir. Batches of more than one
// snippet need confirmation.
func (s *Service) Export(_ context.Context, q filter.Query, dir string, confirm store.Confirmer) ([]export.Result, error) {
	snippets, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	matched, err := filter.Apply(snippets, q)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, apperr.NotFoundf("no snippets match the export filter")
	}
	if len(matched) > 1 && confirm != nil {
		ok, err := confirm.Confirm(fmt.Sprintf("Export %d snippets to %s?", len(matched), dir))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Cancelled("export")
		}
	}
	return s.exporter.Export(dir, matched)
}

// Languages lists the language names the highlighter understands.
func (s *Service) Languages() []string {
	return highlight.Languages()
}

// Reindex brings the search index in line with the store.
func (s *Service) Reindex(_ context.Context) (index.Changes, error) {
	if s.db == nil {
		return index.Changes{}, errors.New("snippetservice: search index not configured")
	}
	return s.syncer.Sync()
}

// Search re-syncs the index and runs a full-text query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.InvalidInput("search query must not be empty")
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	results, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	return results, nil
}
