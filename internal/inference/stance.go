package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// stanceTemperature rescales raw classifier scores before they feed the
// verdict. Scores are raised to 1/stanceTemperature.
const stanceTemperature = 1.3

const stanceSystemPrompt = `You are a stance classifier for fact checking.
Given a claim and one evidence sentence, decide whether the evidence
supports the claim, refutes the claim, or merely discusses the topic
without taking a side.

Respond as JSON with these fields:
{
  "label": "supports" or "refutes" or "discusses",
  "confidence": a number between 0.0 and 1.0
}`

// ClassifyStance labels how one evidence sentence relates to the claim.
// On failure it returns a neutral result alongside the error so a single
// bad sentence cannot sink the whole source.
func (c *Client) ClassifyStance(ctx context.Context, claim, sentence string) (model.StanceResult, error) {
	neutral := model.StanceResult{Label: model.StanceDiscusses, Confidence: 0}

	if strings.TrimSpace(claim) == "" || strings.TrimSpace(sentence) == "" {
		return neutral, nil
	}

	api, err := c.client()
	if err != nil {
		return neutral, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.cfg.StanceModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: stanceSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Claim: %s\n\nEvidence: %s", claim, sentence),
			},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return neutral, fmt.Errorf("classify stance: %w", err)
	}
	if len(resp.Choices) == 0 {
		return neutral, fmt.Errorf("no response from stance model")
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return neutral, fmt.Errorf("parse stance response: %w", err)
	}

	return model.StanceResult{
		Label:      normalizeStance(parsed.Label),
		Confidence: calibrateConfidence(parsed.Confidence),
	}, nil
}

// normalizeStance maps model output onto the three known labels.
// Anything unrecognized counts as discusses.
func normalizeStance(label string) model.Stance {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "supports":
		return model.StanceSupports
	case "refutes":
		return model.StanceRefutes
	default:
		return model.StanceDiscusses
	}
}

// calibrateConfidence applies temperature scaling to a raw score and
// clamps it into [0, 1].
func calibrateConfidence(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	if raw >= 1 {
		return 1
	}
	return math.Pow(raw, 1/stanceTemperature)
}
