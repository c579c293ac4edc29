// Package resolve picks the snippet an edit applies to, either by exact ID
// or by a tag selector that may need operator disambiguation.
package resolve

import (
	"strings"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/models"
)

// Chooser obtains one ID from the operator when a tag matches several snippets.
type Chooser interface {
	ChooseID(candidates []uint32) (uint32, error)
}

// Selector identifies an edit target. ID takes precedence over Tag.
type Selector struct {
	ID  *uint32
	Tag string
}

// ForEdit returns the selected snippet and the collection without it.
// Tag matching is a case-insensitive substring match, the same policy the
// filter engine uses. When the tag matches more than one snippet, chooser
// picks among the candidates; a nil chooser yields an ambiguous-selector error.
func ForEdit(snippets []models.Snippet, sel Selector, chooser Chooser) (models.Snippet, []models.Snippet, error) {
	if sel.ID != nil {
		return take(snippets, *sel.ID)
	}

	tag := strings.TrimSpace(sel.Tag)
	if tag == "" {
		return models.Snippet{}, nil, apperr.InvalidInput("missing selector: give a snippet ID or tag")
	}

	var candidates []uint32
	for _, s := range snippets {
		if filter.ContainsFold(s.Tag, tag) {
			candidates = append(candidates, s.ID)
		}
	}

	switch len(candidates) {
	case 0:
		return models.Snippet{}, nil, apperr.NotFoundTag(tag)
	case 1:
		return take(snippets, candidates[0])
	}

	if chooser == nil {
		return models.Snippet{}, nil, apperr.Ambiguous(tag, candidates)
	}
	chosen, err := chooser.ChooseID(candidates)
	if err != nil {
		return models.Snippet{}, nil, err
	}
	for _, c := range candidates {
		if c == chosen {
			return take(snippets, chosen)
		}
	}
	return models.Snippet{}, nil, apperr.InvalidInput("ID %d is not in the list of matching snippets", chosen)
}

func take(snippets []models.Snippet, id uint32) (models.Snippet, []models.Snippet, error) {
	for i, s := range snippets {
		if s.ID != id {
			continue
		}
		rest := make([]models.Snippet, 0, len(snippets)-1)
		rest = append(rest, snippets[:i]...)
		rest = append(rest, snippets[i+1:]...)
		return s, rest, nil
	}
	return models.Snippet{}, nil, apperr.NotFoundIDs(id)
}
