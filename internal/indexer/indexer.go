// Package indexer builds the vector and keyword indices from stored papers.
package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/kasane/internal/embedding"
	"github.com/hyperjump/kasane/internal/keyword"
	"github.com/hyperjump/kasane/internal/storage"
	"github.com/hyperjump/kasane/internal/vector"
)

// Indexer rebuilds the retrieval indices from the paper store.
type Indexer struct {
	storage  storage.Storage
	embedder embedding.Embedder
	store    *vector.Store
	keyword  keyword.Index
	logger   *zap.Logger
}

// NewIndexer creates an indexer with the given dependencies.
func NewIndexer(
	st storage.Storage,
	embedder embedding.Embedder,
	store *vector.Store,
	kw keyword.Index,
	logger *zap.Logger,
) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		storage:  st,
		embedder: embedder,
		store:    store,
		keyword:  kw,
		logger:   logger,
	}
}

// BuildIndex embeds every stored paper and rebuilds both indices, replacing
// prior content. A paper whose embedding fails is logged and skipped; the rest
// of the batch proceeds. Returns the number of papers indexed into the vector
// store.
func (ix *Indexer) BuildIndex(ctx context.Context) (int, error) {
	papers, err := ix.storage.AllPapers(ctx)
	if err != nil {
		return 0, fmt.Errorf("load papers: %w", err)
	}
	if len(papers) == 0 {
		ix.logger.Info("no papers to index")
		return 0, ix.store.Build(nil)
	}

	items := make([]vector.Item, 0, len(papers))
	for _, paper := range papers {
		vec, err := ix.embedder.Embed(ctx, paper.EmbeddingText())
		if err != nil {
			ix.logger.Warn("embedding failed, skipping paper",
				zap.String("id", paper.ID), zap.String("title", paper.Title), zap.Error(err))
			continue
		}
		if isZero(vec) {
			ix.logger.Warn("zero embedding, skipping paper",
				zap.String("id", paper.ID), zap.String("title", paper.Title))
			continue
		}
		items = append(items, vector.Item{ID: paper.ID, Vector: vec})
	}

	// Content is constructed fully above; Build publishes it atomically so
	// in-flight queries never observe a half-rebuilt store.
	if err := ix.store.Build(items); err != nil {
		return 0, fmt.Errorf("build vector store: %w", err)
	}

	for _, paper := range papers {
		if err := ix.keyword.Add(ctx, paper); err != nil {
			ix.logger.Warn("keyword indexing failed, skipping paper",
				zap.String("id", paper.ID), zap.Error(err))
		}
	}

	ix.logger.Info("index built",
		zap.Int("papers", len(papers)), zap.Int("vectors", len(items)))
	return len(items), nil
}

// LoadSnapshot restores the vector store from a snapshot, skipping
// re-embedding. The caller decides whether a failure warrants a full rebuild.
func (ix *Indexer) LoadSnapshot(path string) error {
	if err := ix.store.Load(path); err != nil {
		return err
	}
	ix.logger.Info("vector snapshot loaded",
		zap.String("path", path), zap.Int("vectors", ix.store.Size()))
	return nil
}

// SaveSnapshot persists the vector store for the next session.
func (ix *Indexer) SaveSnapshot(path string) error {
	if err := ix.store.Save(path); err != nil {
		return err
	}
	ix.logger.Info("vector snapshot saved",
		zap.String("path", path), zap.Int("vectors", ix.store.Size()))
	return nil
}

func isZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
