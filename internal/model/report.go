package model

import "time"

// Report is the complete result envelope for one checked claim.
// It is the JSON document the CLI emits and the batch mode collects.
type Report struct {
	Claim      string  `json:"claim"`      // The claim as checked
	Verdict    Verdict `json:"verdict"`    // Final label
	Confidence float64 `json:"confidence"` // 0.0 to 1.0, 3 decimals
	NetScore   float64 `json:"net_score"`  // Signed evidence balance

	Explanation *Explanation `json:"explanation,omitempty"` // Reasoning trail
	Evidence    []Evidence   `json:"evidence"`              // Per-source contributions

	SearchTier      string    `json:"search_tier,omitempty"` // Provider that supplied the results
	SourcesAnalyzed int       `json:"sources_analyzed"`      // Evidence records produced
	CheckedAt       time.Time `json:"checked_at"`
	Elapsed         float64   `json:"processing_time"` // Seconds, wall clock
}

// BatchReport aggregates the reports of a multi-claim run.
type BatchReport struct {
	Reports   []Report  `json:"reports"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	StartedAt time.Time `json:"started_at"`
	Elapsed   float64   `json:"processing_time"`
}
