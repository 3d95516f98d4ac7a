package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kasane/internal/models"
	"github.com/hyperjump/kasane/internal/vector"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []*models.SearchResult{
			{
				Paper: &models.Paper{
					ID:      "p1",
					Title:   "Attention Is All You Need",
					Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
					Link:    "https://example.com/p1",
				},
				Score:         0.85,
				SemanticScore: 0.9,
				KeywordScore:  0.75,
				Rank:          1,
			},
		},
		Total:     1,
		QueryTime: 12,
		Query:     "attention",
		Mode:      models.ModeHybrid,
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Found 1 results",
		"1. Attention Is All You Need",
		"Ashish Vaswani, Noam Shazeer",
		"https://example.com/p1",
		"0.8500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults failed: %v", err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if decoded.Total != 1 || len(decoded.Results) != 1 {
		t.Errorf("Unexpected decoded response: %+v", decoded)
	}
	if decoded.Results[0].Paper.Title != "Attention Is All You Need" {
		t.Errorf("Unexpected title: %s", decoded.Results[0].Paper.Title)
	}
}

func TestWriteImageResults_Text(t *testing.T) {
	var buf bytes.Buffer
	results := []vector.Result{
		{ID: "/images/cat.jpg", Score: 0.98},
		{ID: "/images/dog.jpg", Score: 0.42},
	}
	if err := WriteImageResults(&buf, "query.jpg", results, OutputText); err != nil {
		t.Fatalf("WriteImageResults failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "/images/cat.jpg") || !strings.Contains(out, "0.9800") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestWriteImageResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	results := []vector.Result{{ID: "/images/cat.jpg", Score: 0.98}}
	if err := WriteImageResults(&buf, "query.jpg", results, OutputJSON); err != nil {
		t.Fatalf("WriteImageResults failed: %v", err)
	}
	var decoded struct {
		Query   string          `json:"query"`
		Results []vector.Result `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if decoded.Query != "query.jpg" || len(decoded.Results) != 1 {
		t.Errorf("Unexpected decoded output: %+v", decoded)
	}
}
