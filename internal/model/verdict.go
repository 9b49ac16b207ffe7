package model

// Verdict is the final label assigned to a claim
type Verdict string

const (
	VerdictLikelyTrue  Verdict = "LIKELY TRUE"        // Net support above the decision threshold
	VerdictLikelyFalse Verdict = "LIKELY FALSE"       // Net refutation beyond the decision threshold
	VerdictMixed       Verdict = "MIXED / MISLEADING" // Signals present but inconclusive
	VerdictUnverified  Verdict = "UNVERIFIED"         // No usable evidence found
)

// ExplanationStep is one numbered stage of the verdict reasoning trail.
type ExplanationStep struct {
	Step   int    `json:"step"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Breakdown summarizes the evidence pool with transparent counters.
type Breakdown struct {
	SupportCount   int     `json:"support_count"`
	RefuteCount    int     `json:"refute_count"`
	NeutralCount   int     `json:"neutral_count"`
	SupportWeight  float64 `json:"support_weight"`          // Sum of positive weighted scores
	RefuteWeight   float64 `json:"refute_weight"`           // Sum of negative weighted scores
	TrustedSources int     `json:"trusted_sources"`
	SocialSources  int     `json:"social_sources"`
	TotalSources   int     `json:"total_sources"`
	MultiSentence  int     `json:"multi_sentence_evidence"` // Sources with >1 relevant sentence
}

// Explanation is the deterministic reasoning record for a verdict.
// Two runs over the same evidence must produce identical explanations.
type Explanation struct {
	Steps     []ExplanationStep `json:"steps"`
	Breakdown Breakdown         `json:"breakdown"`
	Decision  string            `json:"decision_reason"`
	Threshold string            `json:"threshold_info"`
}

// VerdictResult is the verdict engine output for one claim.
type VerdictResult struct {
	Verdict     Verdict      `json:"verdict"`
	Confidence  float64      `json:"confidence"` // Sigmoid of |net score|, 3 decimals
	NetScore    float64      `json:"net_score"`  // Signed sum of weighted scores, 3 decimals
	Explanation *Explanation `json:"explanation,omitempty"`
}
