package model

// SearchResult is one candidate source returned by a search provider
type SearchResult struct {
	URL     string `json:"url"`               // Full URL of the source
	Title   string `json:"title,omitempty"`   // Page title as reported by the provider
	Snippet string `json:"snippet,omitempty"` // Short content excerpt, may be empty
}

// Stance classifies how a piece of text relates to the claim
type Stance string

const (
	StanceSupports  Stance = "supports"  // Text asserts the claim is true
	StanceRefutes   Stance = "refutes"   // Text asserts the claim is false
	StanceDiscusses Stance = "discusses" // Text mentions the claim without taking a side
)

// StanceResult pairs a stance label with the classifier's confidence in it.
type StanceResult struct {
	Label      Stance  `json:"label"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// SentenceStance is one scored, stance-labeled sentence from a source document.
type SentenceStance struct {
	Sentence   string  `json:"sentence"`
	Similarity float64 `json:"similarity"` // Semantic similarity to the claim
	Stance     Stance  `json:"stance"`
	Confidence float64 `json:"confidence"`
}

// Evidence is the distilled contribution of one source to the verdict.
// Similarity and Stance describe the single most relevant sentence;
// SupportingSentences carries the remaining qualifying matches.
type Evidence struct {
	URL                 string           `json:"url"`
	Title               string           `json:"title,omitempty"`
	BestSentence        string           `json:"best_sentence"`
	Similarity          float64          `json:"similarity"`
	Stance              Stance           `json:"stance"`
	StanceScore         float64          `json:"stance_score"`    // Aggregated classifier confidence
	SourceWeight        float64          `json:"source_weight"`   // Domain credibility multiplier
	SocialMedia         bool             `json:"is_social_media"` // Weight < 1.0 social platform
	SupportingSentences []SentenceStance `json:"supporting_sentences,omitempty"`
}

// HasSignal reports whether the evidence carries a directional stance.
func (e Evidence) HasSignal() bool {
	return e.Stance == StanceSupports || e.Stance == StanceRefutes
}
