// Package models defines the domain types for codevault.
package models

// Snippet is one stored code fragment. Field order matches the on-disk record.
type Snippet struct {
	ID          uint32  `json:"id"`
	Tag         string  `json:"tag"`
	Description *string `json:"description"`
	Code        string  `json:"code"`
	Language    *string `json:"language"`
	Timestamp   string  `json:"timestamp"`
}

// TimestampLayout is the human-readable local creation time format.
const TimestampLayout = "2006-01-02 15:04:05.000000000 -07:00"

// DescriptionOrEmpty returns the description, or "" when absent.
func (s Snippet) DescriptionOrEmpty() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// LanguageOrEmpty returns the language hint, or "" when absent.
func (s Snippet) LanguageOrEmpty() string {
	if s.Language == nil {
		return ""
	}
	return *s.Language
}

// OptionalString returns nil for an empty string and a pointer to v otherwise.
func OptionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// IDs returns the identifiers of snippets in collection order.
func IDs(snippets []Snippet) []uint32 {
	out := make([]uint32, len(snippets))
	for i, s := range snippets {
		out[i] = s.ID
	}
	return out
}
