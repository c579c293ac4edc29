package store

import "github.com/starford/codevault/internal/models"

// NextID returns one past the highest ID in snippets, or 1 when empty.
// Gaps left by deletions are never refilled.
func NextID(snippets []models.Snippet) uint32 {
	var highest uint32
	for _, s := range snippets {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest + 1
}
