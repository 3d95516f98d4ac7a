// Package embedding provides text and image embedding collaborators.
package embedding

import "context"

// Embedder produces fixed-length vector embeddings for text. Implementations
// are opaque to the retrieval core; all vectors from one embedder share a
// dimensionality.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// ImageEmbedder produces vector embeddings for image files.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, path string) ([]float32, error)
	Dimensions() int
	Close() error
}
