package models

import "testing"

func TestPaper_EmbeddingText(t *testing.T) {
	tests := []struct {
		name  string
		paper Paper
		want  string
	}{
		{
			name:  "title and authors",
			paper: Paper{Title: "Attention Is All You Need", Authors: []string{"Ashish Vaswani", "Noam Shazeer"}},
			want:  "Attention Is All You Need Ashish Vaswani Noam Shazeer",
		},
		{
			name:  "title only",
			paper: Paper{Title: "Deep Residual Learning"},
			want:  "Deep Residual Learning",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.paper.EmbeddingText(); got != tt.want {
				t.Errorf("EmbeddingText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchQuery_EffectiveWeight(t *testing.T) {
	q := &SearchQuery{Query: "x", TopK: 5}
	if got := q.EffectiveWeight(); got != DefaultSemanticWeight {
		t.Errorf("Expected default weight %v, got %v", DefaultSemanticWeight, got)
	}

	w := 0.25
	q.Weight = &w
	if got := q.EffectiveWeight(); got != 0.25 {
		t.Errorf("Expected weight 0.25, got %v", got)
	}

	// Zero is a legal explicit weight, distinct from unset.
	zero := 0.0
	q.Weight = &zero
	if got := q.EffectiveWeight(); got != 0 {
		t.Errorf("Expected weight 0, got %v", got)
	}
}
