// Package images provides reverse image search over a folder of images.
package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kasane/internal/embedding"
	"github.com/hyperjump/kasane/internal/vector"
)

// DefaultExtensions are the image file extensions indexed when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff"}

// Index is a reverse image search index: image paths are the identifiers,
// visual embeddings the vectors.
type Index struct {
	store      *vector.Store
	embedder   embedding.ImageEmbedder
	extensions map[string]struct{}
	logger     *zap.Logger
}

// NewIndex creates an image index using the given embedder. extensions filter
// which files are indexed (nil means DefaultExtensions).
func NewIndex(embedder embedding.ImageEmbedder, extensions []string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if extensions == nil {
		extensions = DefaultExtensions
	}
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Index{
		store:      vector.NewStore(embedder.Dimensions()),
		embedder:   embedder,
		extensions: extSet,
		logger:     logger,
	}
}

// IndexFolder embeds every image in dir (non-recursive, matching extensions)
// and replaces the index content. An unreadable image is logged and skipped.
// Returns the number of images indexed.
func (ix *Index) IndexFolder(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read image folder: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !ix.isImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	items := make([]vector.Item, 0, len(paths))
	for _, path := range paths {
		vec, err := ix.embedder.EmbedImage(ctx, path)
		if err != nil {
			ix.logger.Warn("image embedding failed, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		items = append(items, vector.Item{ID: path, Vector: vec})
	}

	if err := ix.store.Build(items); err != nil {
		return 0, fmt.Errorf("build image index: %w", err)
	}
	ix.logger.Info("image folder indexed", zap.String("dir", dir), zap.Int("images", len(items)))
	return len(items), nil
}

// Search embeds the query image and returns the topK most similar indexed
// images with their cosine similarities.
func (ix *Index) Search(ctx context.Context, queryPath string, topK int) ([]vector.Result, error) {
	queryVec, err := ix.embedder.EmbedImage(ctx, queryPath)
	if err != nil {
		return nil, fmt.Errorf("embed query image: %w", err)
	}
	results, err := ix.store.Query(queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("image query: %w", err)
	}
	return results, nil
}

// Save persists the index as a vector snapshot.
func (ix *Index) Save(path string) error {
	return ix.store.Save(path)
}

// Load restores the index from a snapshot, skipping re-embedding.
func (ix *Index) Load(path string) error {
	return ix.store.Load(path)
}

// Size returns the number of indexed images.
func (ix *Index) Size() int {
	return ix.store.Size()
}

func (ix *Index) isImage(name string) bool {
	_, ok := ix.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
