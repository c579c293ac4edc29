package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/models"
)

const maxSearchLimit = 100

// Handler holds API route handlers.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListSnippets handles GET /api/snippets.
//
// Query parameters tag, language and keyword accept comma-separated terms,
// matched the same way as the CLI filters.
func (h *Handler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := filter.Query{
		Tag:      q.Get("tag"),
		Language: q.Get("language"),
		Keyword:  q.Get("keyword"),
	}
	if raw := q.Get("id"); raw != "" {
		id, err := filter.ParseID(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		query.ID = &id
	}

	items, err := h.svc.List(r.Context(), query)
	if errors.Is(err, apperr.ErrStoreMissing) {
		items, err = nil, nil
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.Snippet{}
	}
	writeJSON(w, http.StatusOK, SnippetListResponse{Snippets: items, Total: len(items)})
}

// GetSnippet handles GET /api/snippets/{id}.
func (h *Handler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	sn, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sn)
}

// GetSnippetCode handles GET /api/snippets/{id}/raw and returns the code verbatim.
func (h *Handler) GetSnippetCode(w http.ResponseWriter, r *http.Request) {
	sn, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sn.Code))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Snippet, bool) {
	id, err := filter.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return models.Snippet{}, false
	}
	sn, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, apperr.ErrStoreMissing) {
		err = apperr.NotFoundIDs(id)
	}
	if err != nil {
		writeError(w, err)
		return models.Snippet{}, false
	}
	return sn, true
}

// Search handles GET /api/search?q=...&limit=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Languages handles GET /api/languages.
func (h *Handler) Languages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, LanguagesResponse{Languages: h.svc.Languages()})
}
