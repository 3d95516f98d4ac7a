package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/kasane/internal/embedding"
)

func waitForSize(t *testing.T, index *Index, want int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if index.Size() == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for index size %d, have %d", want, index.Size())
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg", []byte("first image"))

	index := NewIndex(embedding.NewHashImageEmbedder(32), nil, nil)
	if _, err := index.IndexFolder(context.Background(), dir); err != nil {
		t.Fatalf("IndexFolder failed: %v", err)
	}

	watcher := NewWatcher(index, dir, nil)
	watcher.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Start(ctx) }()

	// Give the watcher a moment to register before mutating the folder.
	time.Sleep(100 * time.Millisecond)

	writeImage(t, dir, "b.jpg", []byte("second image"))
	waitForSize(t, index, 2, 5*time.Second)

	if err := os.Remove(filepath.Join(dir, "a.jpg")); err != nil {
		t.Fatal(err)
	}
	waitForSize(t, index, 1, 5*time.Second)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watcher returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watcher did not stop after cancel")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	index := NewIndex(embedding.NewHashImageEmbedder(32), nil, nil)
	watcher := NewWatcher(index, "/nonexistent/folder", nil)
	if err := watcher.Start(context.Background()); err == nil {
		t.Fatal("Expected error for missing directory")
	}
}
