// Package keyword provides lexical (full-text) paper search.
package keyword

import (
	"context"

	"github.com/hyperjump/kasane/internal/models"
)

// Searcher is the lexical search collaborator. Results are ordered best match
// first; order is guaranteed, scores are not.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	AuthorSearch(ctx context.Context, name string, limit int) ([]string, error)
}

// Index extends Searcher with write operations.
type Index interface {
	Searcher
	Add(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, id string) error
	DocCount() (uint64, error)
	Close() error
}
