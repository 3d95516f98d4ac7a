// Package search provides hybrid search (keyword + semantic) and result fusion.
package search

import "sort"

// Scored is one (identifier, score) entry of a ranked list, best first.
type Scored struct {
	ID    string
	Score float64
}

// Fused holds an identifier with its combined and per-signal scores.
type Fused struct {
	ID            string
	Score         float64
	SemanticScore float64
	KeywordScore  float64
}

// Fuse merges a semantic and a keyword ranked list into one list of at most k
// entries. Each identifier accumulates semantic*weight + keyword*(1-weight);
// an identifier present in only one list simply carries that single weighted
// contribution, so either signal alone can surface a hit. Ties keep the order
// in which identifiers were first encountered (semantic pass, then keyword
// pass), making repeated fusions of identical inputs byte-identical.
func Fuse(semantic, keyword []Scored, weight float64, k int) []Fused {
	index := make(map[string]int, len(semantic)+len(keyword))
	fused := make([]Fused, 0, len(semantic)+len(keyword))

	for _, s := range semantic {
		if i, ok := index[s.ID]; ok {
			fused[i].SemanticScore = s.Score
			continue
		}
		index[s.ID] = len(fused)
		fused = append(fused, Fused{ID: s.ID, SemanticScore: s.Score})
	}
	for _, kw := range keyword {
		if i, ok := index[kw.ID]; ok {
			fused[i].KeywordScore = kw.Score
			continue
		}
		index[kw.ID] = len(fused)
		fused = append(fused, Fused{ID: kw.ID, KeywordScore: kw.Score})
	}

	for i := range fused {
		fused[i].Score = fused[i].SemanticScore*weight + fused[i].KeywordScore*(1-weight)
	}
	sort.SliceStable(fused, func(i, j int) bool { return fused[i].Score > fused[j].Score })
	if k < len(fused) {
		fused = fused[:k]
	}
	return fused
}
