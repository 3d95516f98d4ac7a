// Package vector provides an in-memory vector store with brute-force cosine search.
package vector

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Item is a raw (identifier, embedding) pair for bulk loading.
type Item struct {
	ID     string
	Vector []float32
}

// Result is a single similarity hit.
type Result struct {
	ID    string
	Score float64 // cosine similarity in [-1, 1]
}

// Store holds normalized embeddings and answers k-nearest-neighbor queries by
// exhaustive dot-product scan. All stored vectors share one dimensionality and
// are unit-norm, so dot product equals cosine similarity. Queries are safe to
// run concurrently; Build and Load take the write lock.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	ids        []string
	vectors    [][]float32
}

// NewStore creates an empty store. dimensions may be 0, in which case the first
// added vector establishes the dimensionality.
func NewStore(dimensions int) *Store {
	return &Store{
		dimensions: dimensions,
		ids:        make([]string, 0),
		vectors:    make([][]float32, 0),
	}
}

// Add normalizes a copy of vec and appends it under id. A zero-norm vector is
// rejected with ErrZeroVector; a length disagreeing with the established
// dimensionality with ErrDimensionMismatch. A failed Add leaves the store unchanged.
func (s *Store) Add(id string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized, err := s.normalizeLocked(vec)
	if err != nil {
		return fmt.Errorf("add %q: %w", id, err)
	}
	if s.dimensions == 0 {
		s.dimensions = len(normalized)
	}
	s.ids = append(s.ids, id)
	s.vectors = append(s.vectors, normalized)
	return nil
}

// Build replaces all store content with items. The new content is constructed
// fully before being published, so a contract error (dimension mismatch, zero
// vector) aborts the build and the previous content stays authoritative.
func (s *Store) Build(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dims := s.dimensions
	ids := make([]string, 0, len(items))
	vectors := make([][]float32, 0, len(items))
	for _, item := range items {
		normalized, err := normalize(item.Vector, dims)
		if err != nil {
			return fmt.Errorf("build %q: %w", item.ID, err)
		}
		if dims == 0 {
			dims = len(normalized)
		}
		ids = append(ids, item.ID)
		vectors = append(vectors, normalized)
	}

	s.dimensions = dims
	s.ids = ids
	s.vectors = vectors
	return nil
}

// Query normalizes vec and returns the top-k stored vectors by cosine
// similarity, descending. Ties keep insertion order so repeated queries on the
// same content are deterministic. An empty store yields an empty result; k
// larger than the store returns everything ranked.
func (s *Store) Query(vec []float32, k int) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("query: %w (got %d)", ErrInvalidK, k)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ids) == 0 {
		return []Result{}, nil
	}
	query, err := normalize(vec, s.dimensions)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	results := make([]Result, len(s.ids))
	for i, stored := range s.vectors {
		var dot float64
		for j := range stored {
			dot += float64(query[j]) * float64(stored[j])
		}
		results[i] = Result{ID: s.ids[i], Score: dot}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Size returns the number of stored vectors.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Dimensions returns the established dimensionality (0 when empty and unset).
func (s *Store) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimensions
}

// normalizeLocked is normalize against the store's current dimensionality.
// Caller must hold the lock.
func (s *Store) normalizeLocked(vec []float32) ([]float32, error) {
	return normalize(vec, s.dimensions)
}

// normalize returns a unit-norm copy of vec. dims > 0 enforces that length;
// dims == 0 accepts any non-empty length.
func normalize(vec []float32, dims int) ([]float32, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrDimensionMismatch)
	}
	if dims > 0 && len(vec) != dims {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(vec), dims)
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return nil, ErrZeroVector
	}
	norm := 1.0 / math.Sqrt(sum)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) * norm)
	}
	return out, nil
}
