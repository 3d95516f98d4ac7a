package embedding

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(64)

	a, err := e.Embed(context.Background(), "attention mechanism")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	b, err := e.Embed(context.Background(), "attention mechanism")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Expected identical embeddings for identical text, differ at %d", i)
		}
	}

	c, err := e.Embed(context.Background(), "graph networks")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different embeddings for different texts")
	}
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	e := NewHashEmbedder(128)
	vec, err := e.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 128 {
		t.Fatalf("Expected 128 dimensions, got %d", len(vec))
	}
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-4 {
		t.Errorf("Expected unit norm, got %v", math.Sqrt(sum))
	}
}

func TestHashEmbedder_DefaultDimensions(t *testing.T) {
	e := NewHashEmbedder(0)
	if e.Dimensions() != 384 {
		t.Errorf("Expected default 384 dimensions, got %d", e.Dimensions())
	}
}

func TestHashEmbedder_EmbedBatch(t *testing.T) {
	e := NewHashEmbedder(32)
	texts := []string{"one", "two", "three"}
	embeddings, err := e.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(embeddings) != 3 {
		t.Fatalf("Expected 3 embeddings, got %d", len(embeddings))
	}
	single, _ := e.Embed(context.Background(), "two")
	for i := range single {
		if embeddings[1][i] != single[i] {
			t.Fatal("Expected batch embedding to match single embedding")
		}
	}
}

func TestHashImageEmbedder(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.jpg")
	pathB := filepath.Join(dir, "b.jpg")
	if err := os.WriteFile(pathA, []byte("image-bytes-a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pathB, []byte("image-bytes-b"), 0644); err != nil {
		t.Fatal(err)
	}

	e := NewHashImageEmbedder(64)
	a1, err := e.EmbedImage(context.Background(), pathA)
	if err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}
	a2, err := e.EmbedImage(context.Background(), pathA)
	if err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatal("Expected identical embeddings for identical file")
		}
	}

	b, err := e.EmbedImage(context.Background(), pathB)
	if err != nil {
		t.Fatalf("EmbedImage failed: %v", err)
	}
	same := true
	for i := range a1 {
		if a1[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different embeddings for different files")
	}
}

func TestHashImageEmbedder_MissingFile(t *testing.T) {
	e := NewHashImageEmbedder(64)
	if _, err := e.EmbedImage(context.Background(), "/nonexistent/image.jpg"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
