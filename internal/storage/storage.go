// Package storage defines the persistence interface for paper records.
package storage

import (
	"context"

	"github.com/hyperjump/kasane/internal/models"
)

// Storage defines paper persistence operations.
type Storage interface {
	InsertPapers(ctx context.Context, papers []*models.Paper) (int, error)
	GetPaper(ctx context.Context, id string) (*models.Paper, error)
	ListPapers(ctx context.Context, offset, limit int) ([]*models.Paper, error)
	// AllPapers returns every paper in insertion order; used for index rebuilds.
	AllPapers(ctx context.Context) ([]*models.Paper, error)
	CountPapers(ctx context.Context) (int64, error)
	Close() error
}
