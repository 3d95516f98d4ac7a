package search

import "github.com/hyperjump/kasane/internal/vector"

// candidateMultiplier is how many times topK candidates each signal requests
// for fusion input. Over-fetching keeps the merged list able to fill topK even
// when the two signals barely overlap.
const candidateMultiplier = 2

// semanticRanked converts vector store results into a ranked list.
func semanticRanked(results []vector.Result) []Scored {
	out := make([]Scored, len(results))
	for i, r := range results {
		out[i] = Scored{ID: r.ID, Score: r.Score}
	}
	return out
}

// keywordRanked synthesizes pseudo-scores for an ordered identifier list (best
// match first, no score attached): position i of n gets (n-i)/n, mapping first
// place to 1.0 and last place toward 0 so keyword ranks live on a scale
// comparable to cosine similarity. An empty list yields an empty result.
func keywordRanked(ids []string) []Scored {
	n := len(ids)
	if n == 0 {
		return []Scored{}
	}
	out := make([]Scored, n)
	for i, id := range ids {
		out[i] = Scored{ID: id, Score: float64(n-i) / float64(n)}
	}
	return out
}
