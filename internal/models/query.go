package models

// SearchMode selects which ranking signals a search uses.
type SearchMode string

const (
	// ModeHybrid fuses semantic and keyword signals (default).
	ModeHybrid SearchMode = "hybrid"
	// ModeSemantic uses only the vector similarity signal.
	ModeSemantic SearchMode = "semantic"
	// ModeKeyword uses only the lexical signal.
	ModeKeyword SearchMode = "keyword"
)

// DefaultSemanticWeight is the fraction of the fused score attributed to the
// semantic signal when the caller does not supply one.
const DefaultSemanticWeight = 0.7

// SearchQuery represents a search request.
type SearchQuery struct {
	Query string     `json:"query"`
	TopK  int        `json:"top_k,omitempty"`
	Mode  SearchMode `json:"mode,omitempty"`
	// Weight is the semantic fraction of the fused score, in [0,1].
	// Nil means DefaultSemanticWeight.
	Weight *float64 `json:"weight,omitempty"`
}

// EffectiveWeight returns the requested weight or the default.
func (q *SearchQuery) EffectiveWeight() float64 {
	if q.Weight != nil {
		return *q.Weight
	}
	return DefaultSemanticWeight
}
