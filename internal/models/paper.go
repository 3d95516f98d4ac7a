// Package models defines core data structures for papers, queries, and search results.
package models

import (
	"strings"
	"time"
)

// Paper represents a stored research paper record.
type Paper struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Authors   []string  `json:"authors" db:"authors"`
	Link      string    `json:"link" db:"link"`
	Year      int       `json:"year" db:"year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmbeddingText returns the text representation used for semantic indexing:
// the title followed by the author names.
func (p *Paper) EmbeddingText() string {
	if len(p.Authors) == 0 {
		return p.Title
	}
	return p.Title + " " + strings.Join(p.Authors, " ")
}
