// Package verdict turns a pool of scored evidence into a final label.
//
// The engine is pure and deterministic: the same evidence always yields a
// bit-identical verdict, confidence, net score and explanation, regardless
// of the order the evidence arrived in.
package verdict

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// Decision thresholds on the net weighted score.
const (
	ThresholdTrue  = 0.35
	ThresholdFalse = -0.35
)

// Engine computes verdicts from evidence.
type Engine struct {
	log *logrus.Logger
}

// NewEngine creates a verdict engine.
func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{log: log}
}

// Sigmoid maps a score into (0, 1).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// WeightedScore computes one evidence item's signed contribution:
//
//	similarity x stance score x direction x source weight x similarity boost
//
// where direction is +1 for supports, -1 for refutes, and discussing
// evidence contributes nothing. The boost scales from 0.75x at zero
// similarity to 1.25x at full similarity.
func WeightedScore(ev model.Evidence) float64 {
	var direction float64
	switch ev.Stance {
	case model.StanceSupports:
		direction = 1
	case model.StanceRefutes:
		direction = -1
	default:
		return 0
	}

	// A zero source weight means the evidence was never scored for
	// credibility; treat it as a neutral 1.0.
	sourceWeight := ev.SourceWeight
	if sourceWeight == 0 {
		sourceWeight = 1
	}

	boost := 1.0 + (ev.Similarity-0.5)*0.5
	return ev.Similarity * ev.StanceScore * direction * sourceWeight * boost
}

// Compute aggregates all evidence into a verdict.
//
// Decision thresholds:
//
//	net score > +0.35 -> LIKELY TRUE
//	net score < -0.35 -> LIKELY FALSE
//	otherwise         -> MIXED / MISLEADING
//	no evidence       -> UNVERIFIED
func (e *Engine) Compute(evidence []model.Evidence, includeExplanation bool) model.VerdictResult {
	if len(evidence) == 0 {
		e.log.Info("No evidence found - returning UNVERIFIED")
		result := model.VerdictResult{
			Verdict:    model.VerdictUnverified,
			Confidence: 0,
			NetScore:   0,
		}
		if includeExplanation {
			result.Explanation = buildExplanation(nil, nil, 0, model.VerdictUnverified)
		}
		return result
	}

	scores := make([]float64, len(evidence))
	for i, ev := range evidence {
		scores[i] = WeightedScore(ev)
	}
	netScore := stableSum(scores)

	confidence := Sigmoid(math.Abs(netScore))

	var verdict model.Verdict
	switch {
	case netScore > ThresholdTrue:
		verdict = model.VerdictLikelyTrue
	case netScore < ThresholdFalse:
		verdict = model.VerdictLikelyFalse
	default:
		verdict = model.VerdictMixed
	}

	e.log.WithFields(logrus.Fields{
		"verdict":    verdict,
		"net_score":  fmt.Sprintf("%.3f", netScore),
		"confidence": fmt.Sprintf("%.3f", confidence),
	}).Info("Verdict computed")

	result := model.VerdictResult{
		Verdict:    verdict,
		Confidence: round3(confidence),
		NetScore:   round3(netScore),
	}
	if includeExplanation {
		result.Explanation = buildExplanation(evidence, scores, netScore, verdict)
	}
	return result
}

// buildExplanation assembles the numbered reasoning trail and breakdown.
func buildExplanation(evidence []model.Evidence, scores []float64, netScore float64, verdict model.Verdict) *model.Explanation {
	var supportCount, refuteCount, neutralCount int
	var supportScores, refuteScores []float64
	for i, ev := range evidence {
		switch ev.Stance {
		case model.StanceSupports:
			supportCount++
			supportScores = append(supportScores, scores[i])
		case model.StanceRefutes:
			refuteCount++
			refuteScores = append(refuteScores, scores[i])
		default:
			neutralCount++
		}
	}

	supportWeight := round2(stableSum(supportScores))
	refuteWeight := round2(stableSum(refuteScores))

	var trustedCount, socialCount, multiSentence int
	for _, ev := range evidence {
		if ev.SourceWeight > 1.0 {
			trustedCount++
		}
		if ev.SocialMedia {
			socialCount++
		}
		if len(ev.SupportingSentences) > 0 {
			multiSentence++
		}
	}

	reason := decisionReason(netScore, verdict)

	steps := []model.ExplanationStep{
		{
			Step:   1,
			Title:  "Evidence Collection",
			Detail: fmt.Sprintf("Found %d relevant %s", len(evidence), plural("source", len(evidence))),
		},
		{
			Step:   2,
			Title:  "Stance Analysis",
			Detail: fmt.Sprintf("%d support, %d refute, %d neutral", supportCount, refuteCount, neutralCount),
		},
		{
			Step:   3,
			Title:  "Credibility Weighting",
			Detail: fmt.Sprintf("%d trusted %s (Reuters, BBC, etc.)", trustedCount, plural("source", trustedCount)),
		},
		{
			Step:   4,
			Title:  "Score Calculation",
			Detail: fmt.Sprintf("Net score: %+.2f (support: %+.2f, refute: %+.2f)", netScore, supportWeight, refuteWeight),
		},
		{
			Step:   5,
			Title:  "Verdict",
			Detail: reason,
		},
	}

	return &model.Explanation{
		Steps: steps,
		Breakdown: model.Breakdown{
			SupportCount:   supportCount,
			RefuteCount:    refuteCount,
			NeutralCount:   neutralCount,
			SupportWeight:  supportWeight,
			RefuteWeight:   refuteWeight,
			TrustedSources: trustedCount,
			SocialSources:  socialCount,
			TotalSources:   len(evidence),
			MultiSentence:  multiSentence,
		},
		Decision:  reason,
		Threshold: fmt.Sprintf("Thresholds: TRUE > +%.2f, FALSE < %.2f, MIXED in between", ThresholdTrue, ThresholdFalse),
	}
}

func decisionReason(netScore float64, verdict model.Verdict) string {
	switch verdict {
	case model.VerdictLikelyTrue:
		return fmt.Sprintf("Score (%+.2f) exceeds +%.2f threshold. The majority of credible evidence supports this claim.",
			netScore, ThresholdTrue)
	case model.VerdictLikelyFalse:
		return fmt.Sprintf("Score (%+.2f) is below %.2f threshold. The majority of credible evidence contradicts this claim.",
			netScore, ThresholdFalse)
	case model.VerdictUnverified:
		return "No relevant evidence was found to verify or refute this claim."
	default:
		return fmt.Sprintf("Score (%+.2f) is between %.2f and +%.2f. Evidence is conflicting or inconclusive.",
			netScore, ThresholdFalse, ThresholdTrue)
	}
}

// stableSum adds values in sorted order so the result does not depend on
// the order evidence was collected in.
func stableSum(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	return total
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
