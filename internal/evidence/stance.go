package evidence

import "github.com/kishnakushwaha/VeriFact/internal/model"

// AggregateStances merges per-sentence stance results into one label for
// the source. Sentences vote with weight similarity x confidence, and the
// winning bucket's share of the total becomes the confidence. Ties go to
// supports, then refutes, then discusses.
func AggregateStances(results []model.SentenceStance) model.StanceResult {
	if len(results) == 0 {
		return model.StanceResult{Label: model.StanceDiscusses, Confidence: 0}
	}
	if len(results) == 1 {
		return model.StanceResult{Label: results[0].Stance, Confidence: results[0].Confidence}
	}

	var supportScore, refuteScore, neutralScore float64
	for _, r := range results {
		weight := r.Similarity * r.Confidence
		switch r.Stance {
		case model.StanceSupports:
			supportScore += weight
		case model.StanceRefutes:
			refuteScore += weight
		default:
			neutralScore += weight
		}
	}

	total := supportScore + refuteScore + neutralScore
	if total == 0 {
		return model.StanceResult{Label: model.StanceDiscusses, Confidence: 0}
	}

	switch {
	case supportScore >= refuteScore && supportScore >= neutralScore:
		return model.StanceResult{Label: model.StanceSupports, Confidence: supportScore / total}
	case refuteScore >= supportScore && refuteScore >= neutralScore:
		return model.StanceResult{Label: model.StanceRefutes, Confidence: refuteScore / total}
	default:
		return model.StanceResult{Label: model.StanceDiscusses, Confidence: neutralScore / total}
	}
}
