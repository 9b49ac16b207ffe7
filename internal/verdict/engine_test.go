package verdict

import (
	"math"
	"reflect"
	"testing"

	"github.com/kishnakushwaha/VeriFact/internal/logging"
	"github.com/kishnakushwaha/VeriFact/internal/model"
)

func supportingEvidence() model.Evidence {
	return model.Evidence{
		URL:          "https://python.org",
		BestSentence: "Python is a popular programming language.",
		Similarity:   0.92,
		Stance:       model.StanceSupports,
		StanceScore:  0.95,
		SourceWeight: 1.0,
	}
}

func refutingEvidence() model.Evidence {
	return model.Evidence{
		URL:          "https://example.com",
		BestSentence: "Python is not a programming language, it is a snake.",
		Similarity:   0.75,
		Stance:       model.StanceRefutes,
		StanceScore:  0.88,
		SourceWeight: 1.0,
	}
}

func neutralEvidence() model.Evidence {
	return model.Evidence{
		URL:          "https://news.com",
		BestSentence: "Programming languages are used worldwide.",
		Similarity:   0.45,
		Stance:       model.StanceDiscusses,
		StanceScore:  0.70,
		SourceWeight: 1.0,
	}
}

func socialMediaEvidence() model.Evidence {
	return model.Evidence{
		URL:          "https://twitter.com/user/status/123",
		BestSentence: "Python is definitely a programming language!",
		Similarity:   0.88,
		Stance:       model.StanceSupports,
		StanceScore:  0.90,
		SourceWeight: 0.5,
		SocialMedia:  true,
	}
}

func newTestEngine() *Engine {
	return NewEngine(logging.Discard())
}

func TestSigmoid(t *testing.T) {
	if got := Sigmoid(0); got != 0.5 {
		t.Errorf("Sigmoid(0) = %f, want 0.5", got)
	}
	if got := Sigmoid(2); got <= 0.5 || got >= 1.0 {
		t.Errorf("Sigmoid(2) = %f, want in (0.5, 1.0)", got)
	}
	if got := Sigmoid(-2); got >= 0.5 || got <= 0.0 {
		t.Errorf("Sigmoid(-2) = %f, want in (0.0, 0.5)", got)
	}
	if got := Sigmoid(10); got <= 0.99 {
		t.Errorf("Sigmoid(10) = %f, want > 0.99", got)
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		desc     string
		evidence model.Evidence
		want     float64
	}{
		{
			desc:     "supporting evidence",
			evidence: supportingEvidence(),
			want:     0.92 * 0.95 * 1 * 1.0 * (1 + (0.92-0.5)*0.5),
		},
		{
			desc:     "refuting evidence",
			evidence: refutingEvidence(),
			want:     0.75 * 0.88 * -1 * 1.0 * (1 + (0.75-0.5)*0.5),
		},
		{
			desc:     "neutral evidence scores zero",
			evidence: neutralEvidence(),
			want:     0,
		},
		{
			desc:     "social media evidence is dampened",
			evidence: socialMediaEvidence(),
			want:     0.88 * 0.90 * 1 * 0.5 * (1 + (0.88-0.5)*0.5),
		},
		{
			desc: "missing source weight counts as 1.0",
			evidence: model.Evidence{
				Similarity:  0.5,
				Stance:      model.StanceSupports,
				StanceScore: 0.8,
			},
			want: 0.5 * 0.8 * 1 * 1.0 * 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := WeightedScore(tt.evidence)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected score %f, got %f", tt.want, got)
			}
		})
	}
}

func TestEngine_Compute_LikelyTrue(t *testing.T) {
	engine := newTestEngine()

	result := engine.Compute([]model.Evidence{supportingEvidence()}, true)

	if result.Verdict != model.VerdictLikelyTrue {
		t.Errorf("Expected LIKELY TRUE, got %s", result.Verdict)
	}
	if result.NetScore <= ThresholdTrue {
		t.Errorf("Expected net score above %f, got %f", ThresholdTrue, result.NetScore)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("Expected confidence above 0.5, got %f", result.Confidence)
	}

	// 0.92 x 0.95 x 1.21 rounds to 1.058
	if result.NetScore != 1.058 {
		t.Errorf("Expected net score 1.058, got %f", result.NetScore)
	}
}

func TestEngine_Compute_LikelyFalse(t *testing.T) {
	engine := newTestEngine()

	result := engine.Compute([]model.Evidence{refutingEvidence()}, true)

	if result.Verdict != model.VerdictLikelyFalse {
		t.Errorf("Expected LIKELY FALSE, got %s", result.Verdict)
	}
	if result.NetScore >= ThresholdFalse {
		t.Errorf("Expected net score below %f, got %f", ThresholdFalse, result.NetScore)
	}
}

func TestEngine_Compute_UnverifiedWithoutEvidence(t *testing.T) {
	engine := newTestEngine()

	result := engine.Compute(nil, true)

	if result.Verdict != model.VerdictUnverified {
		t.Errorf("Expected UNVERIFIED, got %s", result.Verdict)
	}
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0, got %f", result.Confidence)
	}
	if result.NetScore != 0 {
		t.Errorf("Expected net score 0, got %f", result.NetScore)
	}
	if result.Explanation == nil {
		t.Fatal("Expected explanation, got nil")
	}
	if result.Explanation.Decision != "No relevant evidence was found to verify or refute this claim." {
		t.Errorf("Unexpected decision reason: %s", result.Explanation.Decision)
	}
}

func TestEngine_Compute_MixedForNeutralEvidence(t *testing.T) {
	engine := newTestEngine()

	// Evidence exists but none of it takes a side
	result := engine.Compute([]model.Evidence{neutralEvidence(), neutralEvidence()}, false)

	if result.Verdict != model.VerdictMixed {
		t.Errorf("Expected MIXED / MISLEADING, got %s", result.Verdict)
	}
	if result.NetScore != 0 {
		t.Errorf("Expected net score 0, got %f", result.NetScore)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5 at zero net score, got %f", result.Confidence)
	}
}

func TestEngine_Compute_ThresholdIsExclusive(t *testing.T) {
	engine := newTestEngine()

	// 0.5 x 0.7 x 1 x 1 x 1.0 lands exactly on the threshold
	onThreshold := model.Evidence{
		Similarity:   0.5,
		Stance:       model.StanceSupports,
		StanceScore:  0.7,
		SourceWeight: 1.0,
	}

	result := engine.Compute([]model.Evidence{onThreshold}, false)
	if result.Verdict != model.VerdictMixed {
		t.Errorf("Expected MIXED / MISLEADING at exact threshold, got %s", result.Verdict)
	}
}

func TestEngine_Compute_SocialMediaLowerImpact(t *testing.T) {
	engine := newTestEngine()

	regular := engine.Compute([]model.Evidence{supportingEvidence()}, false)
	social := engine.Compute([]model.Evidence{socialMediaEvidence()}, false)

	if regular.NetScore <= social.NetScore {
		t.Errorf("Expected regular source to outweigh social media, got %f vs %f",
			regular.NetScore, social.NetScore)
	}
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	engine := newTestEngine()
	evidence := []model.Evidence{supportingEvidence(), refutingEvidence(), neutralEvidence()}

	first := engine.Compute(evidence, true)
	second := engine.Compute(evidence, true)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results across runs:\n%+v\n%+v", first, second)
	}
}

func TestEngine_Compute_OrderInvariant(t *testing.T) {
	engine := newTestEngine()

	forward := []model.Evidence{
		supportingEvidence(),
		refutingEvidence(),
		socialMediaEvidence(),
		neutralEvidence(),
	}
	reversed := []model.Evidence{
		neutralEvidence(),
		socialMediaEvidence(),
		refutingEvidence(),
		supportingEvidence(),
	}
	shuffled := []model.Evidence{
		refutingEvidence(),
		neutralEvidence(),
		supportingEvidence(),
		socialMediaEvidence(),
	}

	a := engine.Compute(forward, true)
	b := engine.Compute(reversed, true)
	c := engine.Compute(shuffled, true)

	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Errorf("Expected order-invariant results:\n%+v\n%+v\n%+v", a, b, c)
	}
}

func TestEngine_Compute_Explanation(t *testing.T) {
	engine := newTestEngine()

	trusted := supportingEvidence()
	trusted.SourceWeight = 1.5
	trusted.SupportingSentences = []model.SentenceStance{
		{Sentence: "Second relevant sentence.", Similarity: 0.81},
	}

	evidence := []model.Evidence{trusted, refutingEvidence(), neutralEvidence(), socialMediaEvidence()}
	result := engine.Compute(evidence, true)

	if result.Explanation == nil {
		t.Fatal("Expected explanation, got nil")
	}

	exp := result.Explanation
	if len(exp.Steps) != 5 {
		t.Fatalf("Expected 5 reasoning steps, got %d", len(exp.Steps))
	}
	if exp.Steps[0].Detail != "Found 4 relevant sources" {
		t.Errorf("Unexpected collection step: %s", exp.Steps[0].Detail)
	}
	if exp.Steps[1].Detail != "2 support, 1 refute, 1 neutral" {
		t.Errorf("Unexpected stance step: %s", exp.Steps[1].Detail)
	}
	if exp.Steps[2].Detail != "1 trusted source (Reuters, BBC, etc.)" {
		t.Errorf("Unexpected credibility step: %s", exp.Steps[2].Detail)
	}

	b := exp.Breakdown
	if b.SupportCount != 2 || b.RefuteCount != 1 || b.NeutralCount != 1 {
		t.Errorf("Unexpected stance counts: %+v", b)
	}
	if b.TrustedSources != 1 {
		t.Errorf("Expected 1 trusted source, got %d", b.TrustedSources)
	}
	if b.SocialSources != 1 {
		t.Errorf("Expected 1 social source, got %d", b.SocialSources)
	}
	if b.TotalSources != 4 {
		t.Errorf("Expected 4 total sources, got %d", b.TotalSources)
	}
	if b.MultiSentence != 1 {
		t.Errorf("Expected 1 multi-sentence source, got %d", b.MultiSentence)
	}
	if b.SupportWeight <= 0 {
		t.Errorf("Expected positive support weight, got %f", b.SupportWeight)
	}
	if b.RefuteWeight >= 0 {
		t.Errorf("Expected negative refute weight, got %f", b.RefuteWeight)
	}

	if exp.Threshold != "Thresholds: TRUE > +0.35, FALSE < -0.35, MIXED in between" {
		t.Errorf("Unexpected threshold info: %s", exp.Threshold)
	}
}

func TestEngine_Compute_WithoutExplanation(t *testing.T) {
	engine := newTestEngine()

	result := engine.Compute([]model.Evidence{supportingEvidence()}, false)
	if result.Explanation != nil {
		t.Errorf("Expected no explanation, got %+v", result.Explanation)
	}
}
