// Package filter narrows a snippet collection by tag, language, keyword, and ID.
//
// Each dimension is a comma-separated list of terms matched case-insensitively
// by substring; terms within a dimension are ORed, dimensions are ANDed, and an
// omitted dimension matches everything. The ID is applied last as an exact
// post-filter.
package filter

import (
	"strconv"
	"strings"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/models"
)

// Query holds the optional criteria for Apply.
type Query struct {
	Tag      string
	Language string
	Keyword  string
	ID       *uint32
}

// Narrows reports whether q has at least one non-blank criterion.
func (q Query) Narrows() bool {
	return q.ID != nil || len(Terms(q.Tag)) > 0 || len(Terms(q.Language)) > 0 || len(Terms(q.Keyword)) > 0
}

// Apply returns the snippets matching q in collection order.
func Apply(snippets []models.Snippet, q Query) ([]models.Snippet, error) {
	tags := Terms(q.Tag)
	langs := Terms(q.Language)
	keywords := Terms(q.Keyword)

	out := make([]models.Snippet, 0, len(snippets))
	for _, s := range snippets {
		if matchTag(s, tags) && matchLanguage(s, langs) && matchKeyword(s, keywords) {
			out = append(out, s)
		}
	}

	if q.ID == nil {
		return out, nil
	}
	for _, s := range out {
		if s.ID == *q.ID {
			return []models.Snippet{s}, nil
		}
	}
	return nil, apperr.NotFoundIDs(*q.ID)
}

// Terms splits a comma-separated list, trimming whitespace and dropping empty terms.
func Terms(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ContainsFold reports whether sub occurs in s, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// MatchTag reports whether the snippet tag contains any of terms.
func MatchTag(s models.Snippet, terms []string) bool {
	return matchTag(s, terms)
}

func matchTag(s models.Snippet, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		if ContainsFold(s.Tag, t) {
			return true
		}
	}
	return false
}

func matchLanguage(s models.Snippet, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	if s.Language == nil {
		return false
	}
	for _, t := range terms {
		if ContainsFold(*s.Language, t) {
			return true
		}
	}
	return false
}

func matchKeyword(s models.Snippet, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		if ContainsFold(s.Tag, t) || ContainsFold(s.Code, t) {
			return true
		}
		if s.Description != nil && ContainsFold(*s.Description, t) {
			return true
		}
	}
	return false
}

// ParseID parses a single snippet ID.
func ParseID(raw string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, apperr.InvalidInput("invalid snippet ID %q", strings.TrimSpace(raw))
	}
	return uint32(v), nil
}

// ParseIDs parses a comma-separated ID list, dropping duplicates while
// keeping first-seen order.
func ParseIDs(csv string) ([]uint32, error) {
	parts := strings.Split(csv, ",")
	seen := make(map[uint32]struct{}, len(parts))
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		id, err := ParseID(p)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
