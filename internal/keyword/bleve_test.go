package keyword

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kasane/internal/models"
)

func testIndex(t *testing.T) *BleveIndex {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.bleve")
	index, err := NewBleveIndex(path)
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func seedPapers(t *testing.T, index *BleveIndex) {
	t.Helper()
	papers := []*models.Paper{
		{ID: "p1", Title: "Attention Is All You Need", Authors: []string{"Ashish Vaswani", "Noam Shazeer"}, Year: 2017},
		{ID: "p2", Title: "Graph Attention Networks", Authors: []string{"Petar Velickovic"}, Year: 2018},
		{ID: "p3", Title: "Deep Residual Learning", Authors: []string{"Kaiming He"}, Year: 2016},
	}
	for _, p := range papers {
		if err := index.Add(context.Background(), p); err != nil {
			t.Fatalf("Failed to add paper %s: %v", p.ID, err)
		}
	}
}

func TestBleveIndex_Search(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	ids, err := index.Search(context.Background(), "attention", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 hits for 'attention', got %d: %v", len(ids), ids)
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found["p1"] || !found["p2"] {
		t.Errorf("Expected p1 and p2 in hits, got %v", ids)
	}
}

func TestBleveIndex_SearchNoMatch(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	ids, err := index.Search(context.Background(), "nonexistenttermxyz", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no hits, got %v", ids)
	}
}

func TestBleveIndex_SearchLimit(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	ids, err := index.Search(context.Background(), "attention", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("Expected 1 hit with limit 1, got %d", len(ids))
	}
}

func TestBleveIndex_AuthorSearch(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	ids, err := index.AuthorSearch(context.Background(), "vaswani", 10)
	if err != nil {
		t.Fatalf("AuthorSearch failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "p1" {
		t.Errorf("Expected [p1], got %v", ids)
	}

	// Author names must not match against titles.
	ids, err = index.AuthorSearch(context.Background(), "residual", 10)
	if err != nil {
		t.Fatalf("AuthorSearch failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no hits for title term in author field, got %v", ids)
	}
}

func TestBleveIndex_Delete(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	if err := index.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ids, err := index.Search(context.Background(), "attention", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, id := range ids {
		if id == "p1" {
			t.Error("Expected p1 to be removed from index")
		}
	}
}

func TestBleveIndex_DocCount(t *testing.T) {
	index := testIndex(t)
	seedPapers(t, index)

	count, err := index.DocCount()
	if err != nil {
		t.Fatalf("DocCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 documents, got %d", count)
	}
}

func TestBleveIndex_ReopenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bleve")
	index, err := NewBleveIndex(path)
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	if err := index.Add(context.Background(), &models.Paper{ID: "p1", Title: "Persistent Paper"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := index.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBleveIndex(path)
	if err != nil {
		t.Fatalf("Failed to reopen index: %v", err)
	}
	defer reopened.Close()

	ids, err := reopened.Search(context.Background(), "persistent", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "p1" {
		t.Errorf("Expected [p1] after reopen, got %v", ids)
	}
}
