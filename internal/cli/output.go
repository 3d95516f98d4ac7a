// Package cli provides CLI output formatting for Kasane.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kasane/internal/models"
	"github.com/hyperjump/kasane/internal/vector"
)

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes paper search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	fmt.Fprintf(w, "\nFound %d results in %dms (mode: %s)\n\n",
		response.Total, response.QueryTime, response.Mode)
	for _, result := range response.Results {
		fmt.Fprintf(w, "%d. %s\n", result.Rank, result.Paper.Title)
		if len(result.Paper.Authors) > 0 {
			fmt.Fprintf(w, "   Authors: %s\n", strings.Join(result.Paper.Authors, ", "))
		}
		if result.Paper.Link != "" {
			fmt.Fprintf(w, "   Link: %s\n", result.Paper.Link)
		}
		fmt.Fprintf(w, "   Score: %.4f (semantic: %.4f, keyword: %.4f)\n\n",
			result.Score, result.SemanticScore, result.KeywordScore)
	}
	return nil
}

// WriteImageResults writes image similarity results to w in the given format.
func WriteImageResults(w io.Writer, query string, results []vector.Result, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"query": query, "results": results})
	}
	fmt.Fprintf(w, "\nTop %d similar images for %s:\n\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n   Similarity: %.4f\n\n", i+1, r.ID, r.Score)
	}
	return nil
}
