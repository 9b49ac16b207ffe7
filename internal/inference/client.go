// Package inference talks to an OpenAI-compatible endpoint for the two
// model calls a check needs: sentence embeddings for semantic similarity
// and chat completions for stance classification.
//
// The underlying client is built lazily on first use so that commands
// which never reach inference (config show, search-only failures) work
// without an API key.
package inference

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// Sentence embeddings are requested in chunks of this size.
const embedBatchSize = 32

// Match is one sentence scored against the claim.
type Match struct {
	Sentence   string
	Similarity float64
}

// Client wraps the embedding and stance models behind one handle.
type Client struct {
	cfg   model.InferenceConfig
	log   *logrus.Logger
	cache *embedCache

	once sync.Once
	api  *openai.Client
}

// NewClient creates a Client from the inference section of the configuration.
func NewClient(cfg *model.Config, log *logrus.Logger) *Client {
	return &Client{
		cfg:   cfg.Inference,
		log:   log,
		cache: newEmbedCache(cfg.Inference.CacheSize),
	}
}

func (c *Client) client() (*openai.Client, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	c.once.Do(func() {
		clientConfig := openai.DefaultConfig(c.cfg.APIKey)
		if c.cfg.BaseURL != "" {
			clientConfig.BaseURL = c.cfg.BaseURL
		}
		c.api = openai.NewClientWithConfig(clientConfig)
	})

	return c.api, nil
}

// TopMatches returns the topN sentences most semantically similar to the
// claim, sorted by similarity descending. The claim embedding is cached
// across calls since one claim is compared against many sources.
func (c *Client) TopMatches(ctx context.Context, claim string, sentences []string, topN int) ([]Match, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	api, err := c.client()
	if err != nil {
		return nil, err
	}

	claimVec, ok := c.cache.get(claim)
	if !ok {
		vecs, err := c.embedBatch(ctx, api, []string{claim})
		if err != nil {
			return nil, fmt.Errorf("embed claim: %w", err)
		}
		claimVec = vecs[0]
		c.cache.put(claim, claimVec)
	}

	sentVecs, err := c.embedBatch(ctx, api, sentences)
	if err != nil {
		return nil, fmt.Errorf("embed sentences: %w", err)
	}

	matches := make([]Match, len(sentences))
	for i, sentence := range sentences {
		matches[i] = Match{
			Sentence:   sentence,
			Similarity: cosineSimilarity(claimVec, sentVecs[i]),
		}
	}

	// Stable sort keeps input order for equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

func (c *Client) embedBatch(ctx context.Context, api *openai.Client, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		callCtx, cancel := c.callContext(ctx)
		resp, err := api.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
			Input: texts[start:end],
			Model: openai.EmbeddingModel(c.cfg.EmbedModel),
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("expected %d embeddings, got %d", end-start, len(resp.Data))
		}

		for _, item := range resp.Data {
			idx := start + item.Index
			if idx < 0 || idx >= len(vectors) {
				return nil, fmt.Errorf("embedding index %d out of range", item.Index)
			}
			vectors[idx] = item.Embedding
		}
	}

	return vectors, nil
}

// callContext bounds a single API call by the configured timeout.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(c.cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
