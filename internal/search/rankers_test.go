package search

import (
	"testing"

	"github.com/hyperjump/kasane/internal/vector"
)

func TestKeywordRanked(t *testing.T) {
	ranked := keywordRanked([]string{"a", "b", "c"})
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(ranked))
	}

	want := []Scored{
		{ID: "a", Score: 3.0 / 3.0},
		{ID: "b", Score: 2.0 / 3.0},
		{ID: "c", Score: 1.0 / 3.0},
	}
	for i, w := range want {
		if ranked[i].ID != w.ID {
			t.Errorf("Position %d: expected ID %s, got %s", i, w.ID, ranked[i].ID)
		}
		if !almostEqual(ranked[i].Score, w.Score) {
			t.Errorf("Position %d: expected score %v, got %v", i, w.Score, ranked[i].Score)
		}
	}
}

func TestKeywordRanked_SingleEntry(t *testing.T) {
	ranked := keywordRanked([]string{"only"})
	if len(ranked) != 1 || !almostEqual(ranked[0].Score, 1.0) {
		t.Errorf("Expected single entry with score 1.0, got %+v", ranked)
	}
}

func TestKeywordRanked_Empty(t *testing.T) {
	ranked := keywordRanked(nil)
	if ranked == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(ranked) != 0 {
		t.Errorf("Expected empty result, got %d entries", len(ranked))
	}
}

func TestSemanticRanked(t *testing.T) {
	results := []vector.Result{
		{ID: "x", Score: 0.95},
		{ID: "y", Score: 0.42},
	}
	ranked := semanticRanked(results)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].ID != "x" || !almostEqual(ranked[0].Score, 0.95) {
		t.Errorf("Expected (x, 0.95), got (%s, %v)", ranked[0].ID, ranked[0].Score)
	}
	if ranked[1].ID != "y" || !almostEqual(ranked[1].Score, 0.42) {
		t.Errorf("Expected (y, 0.42), got (%s, %v)", ranked[1].ID, ranked[1].Score)
	}
}
