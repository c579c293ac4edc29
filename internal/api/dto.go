package api

import (
	"context"

	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/models"
)

// Service is the read side of the snippet service used by the handlers.
type Service interface {
	List(ctx context.Context, q filter.Query) ([]models.Snippet, error)
	Get(ctx context.Context, id uint32) (models.Snippet, error)
	Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error)
	Languages() []string
}

// SnippetListResponse wraps snippet listings.
type SnippetListResponse struct {
	Snippets []models.Snippet `json:"snippets"`
	Total    int              `json:"total"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// LanguagesResponse lists highlightable language names.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}
