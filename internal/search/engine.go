package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kasane/internal/embedding"
	"github.com/hyperjump/kasane/internal/keyword"
	"github.com/hyperjump/kasane/internal/models"
	"github.com/hyperjump/kasane/internal/storage"
	"github.com/hyperjump/kasane/internal/vector"
)

// Engine runs hybrid (semantic + keyword) paper search.
type Engine struct {
	storage  storage.Storage
	embedder embedding.Embedder
	store    *vector.Store
	keyword  keyword.Searcher
	logger   *zap.Logger
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(
	store *vector.Store,
	embedder embedding.Embedder,
	kw keyword.Searcher,
	st storage.Storage,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		storage:  st,
		embedder: embedder,
		store:    store,
		keyword:  kw,
		logger:   logger,
	}
}

// Search dispatches a query by mode and returns paper-level results.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := validate(query.Query, query.TopK, query.EffectiveWeight()); err != nil {
		return nil, err
	}

	mode := query.Mode
	if mode == "" {
		mode = models.ModeHybrid
	}

	var fused []Fused
	switch mode {
	case models.ModeHybrid:
		results, err := e.HybridSearch(ctx, query.Query, query.TopK, query.EffectiveWeight())
		if err != nil {
			return nil, err
		}
		fused = results
	case models.ModeSemantic:
		ranked, err := e.SemanticSearch(ctx, query.Query, query.TopK)
		if err != nil {
			return nil, err
		}
		for _, s := range ranked {
			fused = append(fused, Fused{ID: s.ID, Score: s.Score, SemanticScore: s.Score})
		}
	case models.ModeKeyword:
		ids, err := e.KeywordSearch(ctx, query.Query, query.TopK)
		if err != nil {
			return nil, err
		}
		for _, s := range keywordRanked(ids) {
			fused = append(fused, Fused{ID: s.ID, Score: s.Score, KeywordScore: s.Score})
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, mode)
	}

	response := &models.SearchResponse{
		Results:   make([]*models.SearchResult, 0, len(fused)),
		Total:     len(fused),
		QueryTime: time.Since(startTime).Milliseconds(),
		Query:     query.Query,
		Mode:      mode,
	}
	for i, f := range fused {
		paper, err := e.storage.GetPaper(ctx, f.ID)
		if err != nil {
			e.logger.Warn("paper lookup failed", zap.String("id", f.ID), zap.Error(err))
			continue
		}
		response.Results = append(response.Results, &models.SearchResult{
			Paper:         paper,
			Score:         f.Score,
			SemanticScore: f.SemanticScore,
			KeywordScore:  f.KeywordScore,
			Rank:          i + 1,
		})
	}
	return response, nil
}

// HybridSearch runs both signals in parallel, fuses them with the given
// semantic weight, and returns at most topK entries. A failed signal degrades
// to an empty contribution (logged) so a partially answerable query still
// returns the other signal's hits.
func (e *Engine) HybridSearch(ctx context.Context, query string, topK int, weight float64) ([]Fused, error) {
	if err := validate(query, topK, weight); err != nil {
		return nil, err
	}

	// Each signal over-fetches so fusion can still fill topK after dedup.
	candidates := topK * candidateMultiplier

	var (
		semantic []Scored
		kwIDs    []string
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ranked, err := e.SemanticSearch(ctx, query, candidates)
		if err != nil {
			e.logger.Warn("semantic signal unavailable", zap.String("query", query), zap.Error(err))
			return
		}
		semantic = ranked
	}()
	go func() {
		defer wg.Done()
		ids, err := e.keyword.Search(ctx, query, candidates)
		if err != nil {
			e.logger.Warn("keyword signal unavailable", zap.String("query", query), zap.Error(err))
			return
		}
		kwIDs = ids
	}()
	wg.Wait()

	return Fuse(semantic, keywordRanked(kwIDs), weight, topK), nil
}

// SemanticSearch embeds the query and returns the topK most similar papers by
// cosine similarity. Unlike the hybrid path, collaborator errors are surfaced.
func (e *Engine) SemanticSearch(ctx context.Context, query string, topK int) ([]Scored, error) {
	if err := validate(query, topK, 0); err != nil {
		return nil, err
	}
	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := e.store.Query(queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	return semanticRanked(results), nil
}

// KeywordSearch returns up to topK paper identifiers from the lexical backend,
// best match first.
func (e *Engine) KeywordSearch(ctx context.Context, query string, topK int) ([]string, error) {
	if err := validate(query, topK, 0); err != nil {
		return nil, err
	}
	ids, err := e.keyword.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	return ids, nil
}

// SearchByAuthor returns papers whose author list matches name.
func (e *Engine) SearchByAuthor(ctx context.Context, name string, topK int) ([]*models.Paper, error) {
	if err := validate(name, topK, 0); err != nil {
		return nil, err
	}
	ids, err := e.keyword.AuthorSearch(ctx, name, topK)
	if err != nil {
		return nil, fmt.Errorf("author search: %w", err)
	}
	papers := make([]*models.Paper, 0, len(ids))
	for _, id := range ids {
		paper, err := e.storage.GetPaper(ctx, id)
		if err != nil {
			e.logger.Warn("paper lookup failed", zap.String("id", id), zap.Error(err))
			continue
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// IndexSize returns the number of vectors currently resident in the store.
func (e *Engine) IndexSize() int {
	return e.store.Size()
}

func validate(query string, topK int, weight float64) error {
	if query == "" {
		return fmt.Errorf("%w: query cannot be empty", ErrInvalidArgument)
	}
	if topK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidArgument, topK)
	}
	if weight < 0 || weight > 1 {
		return fmt.Errorf("%w: weight must be in [0,1], got %g", ErrInvalidArgument, weight)
	}
	return nil
}
