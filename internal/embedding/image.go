package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
)

// HashImageEmbedder is a deterministic ImageEmbedder derived from file
// content. Like HashEmbedder it carries no visual semantics; a real vision
// model (ViT, CLIP) plugs in behind the ImageEmbedder interface instead.
type HashImageEmbedder struct {
	dimensions int
}

// NewHashImageEmbedder returns a deterministic image embedder of the given
// dimensions (768 when non-positive, matching ViT-base output).
func NewHashImageEmbedder(dimensions int) *HashImageEmbedder {
	if dimensions <= 0 {
		dimensions = 768
	}
	return &HashImageEmbedder{dimensions: dimensions}
}

// EmbedImage reads the file and returns a unit-norm vector derived from its
// bytes. Identical files embed identically.
func (e *HashImageEmbedder) EmbedImage(ctx context.Context, path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return hashVector(h.Sum64(), e.dimensions), nil
}

// Dimensions returns the embedding dimension.
func (e *HashImageEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for HashImageEmbedder.
func (e *HashImageEmbedder) Close() error {
	return nil
}
