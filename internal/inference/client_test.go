package inference

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kishnakushwaha/VeriFact/internal/logging"
	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// fakeOpenAI speaks just enough of the OpenAI API for the client.
// Embeddings come from a fixed text-to-vector table; unknown texts get a
// vector orthogonal to everything in the table.
type fakeOpenAI struct {
	vectors    map[string][]float32
	stanceBody string

	embedCalls atomic.Int32
	chatCalls  atomic.Int32

	mu          sync.Mutex
	embedInputs []string
}

func (f *fakeOpenAI) seenInput(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, input := range f.embedInputs {
		if input == text {
			count++
		}
	}
	return count
}

func (f *fakeOpenAI) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/embeddings":
			f.embedCalls.Add(1)

			var req struct {
				Input []string `json:"input"`
				Model string   `json:"model"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			f.mu.Lock()
			f.embedInputs = append(f.embedInputs, req.Input...)
			f.mu.Unlock()

			resp := openai.EmbeddingResponse{
				Object: "list",
				Model:  openai.EmbeddingModel(req.Model),
			}
			for i, text := range req.Input {
				vec, ok := f.vectors[text]
				if !ok {
					vec = []float32{0, 0, 1}
				}
				resp.Data = append(resp.Data, openai.Embedding{
					Object:    "embedding",
					Index:     i,
					Embedding: vec,
				})
			}
			_ = json.NewEncoder(w).Encode(resp)

		case "/chat/completions":
			f.chatCalls.Add(1)

			resp := openai.ChatCompletionResponse{
				ID:     "chatcmpl-test",
				Object: "chat.completion",
				Choices: []openai.ChatCompletionChoice{
					{
						Index: 0,
						Message: openai.ChatCompletionMessage{
							Role:    "assistant",
							Content: f.stanceBody,
						},
						FinishReason: "stop",
					},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)

		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(srv *httptest.Server) *Client {
	cfg := model.DefaultConfig()
	cfg.Inference.APIKey = "test-inference-key"
	cfg.Inference.BaseURL = srv.URL
	cfg.Inference.Timeout = 5
	return NewClient(cfg, logging.Discard())
}

func TestClient_TopMatches(t *testing.T) {
	fake := &fakeOpenAI{
		vectors: map[string][]float32{
			"The earth orbits the sun.":       {1, 0, 0},
			"Astronomers confirm the orbit.":  {0.95, 0.05, 0},
			"Planetary paths were discussed.": {0.5, 0.5, 0},
		},
	}
	srv := fake.server()
	defer srv.Close()

	client := newTestClient(srv)

	sentences := []string{
		"Planetary paths were discussed.",
		"Astronomers confirm the orbit.",
		"Totally unrelated cooking tips.",
	}

	matches, err := client.TopMatches(context.Background(), "The earth orbits the sun.", sentences, 2)
	if err != nil {
		t.Fatalf("TopMatches failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Sentence != "Astronomers confirm the orbit." {
		t.Errorf("Expected best match first, got %q", matches[0].Sentence)
	}
	if matches[0].Similarity <= matches[1].Similarity {
		t.Errorf("Expected descending similarity, got %f then %f",
			matches[0].Similarity, matches[1].Similarity)
	}
	if matches[0].Similarity < 0.99 {
		t.Errorf("Expected near-identical vectors to score close to 1, got %f", matches[0].Similarity)
	}
}

func TestClient_TopMatches_EmptySentences(t *testing.T) {
	fake := &fakeOpenAI{}
	srv := fake.server()
	defer srv.Close()

	client := newTestClient(srv)

	matches, err := client.TopMatches(context.Background(), "Some claim.", nil, 3)
	if err != nil {
		t.Fatalf("TopMatches failed: %v", err)
	}
	if matches != nil {
		t.Errorf("Expected nil matches for no sentences, got %v", matches)
	}
	if got := fake.embedCalls.Load(); got != 0 {
		t.Errorf("Expected no API calls, got %d", got)
	}
}

func TestClient_TopMatches_ClaimEmbeddingCached(t *testing.T) {
	claim := "Vaccines reduce severe illness."
	fake := &fakeOpenAI{
		vectors: map[string][]float32{
			claim:             {1, 0, 0},
			"First sentence.": {0.8, 0.2, 0},
		},
	}
	srv := fake.server()
	defer srv.Close()

	client := newTestClient(srv)
	sentences := []string{"First sentence.", "Second sentence."}

	first, err := client.TopMatches(context.Background(), claim, sentences, 3)
	if err != nil {
		t.Fatalf("first TopMatches failed: %v", err)
	}
	second, err := client.TopMatches(context.Background(), claim, sentences, 3)
	if err != nil {
		t.Fatalf("second TopMatches failed: %v", err)
	}

	if got := fake.seenInput(claim); got != 1 {
		t.Errorf("Expected claim embedded once across calls, got %d", got)
	}

	// The cache must not change results
	if len(first) != len(second) {
		t.Fatalf("Expected identical results, got %d vs %d matches", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Match %d differs with warm cache: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestClient_TopMatches_NoAPIKey(t *testing.T) {
	cfg := model.DefaultConfig()
	client := NewClient(cfg, logging.Discard())

	_, err := client.TopMatches(context.Background(), "Some claim.", []string{"A sentence."}, 3)
	if err == nil {
		t.Fatal("Expected error without API key, got nil")
	}
}

func TestClient_TopMatches_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)

	_, err := client.TopMatches(context.Background(), "Some claim.", []string{"A sentence."}, 3)
	if err == nil {
		t.Fatal("Expected error from failing API, got nil")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		desc string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal vectors", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite vectors", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestEmbedCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newEmbedCache(2)

	cache.put("a", []float32{1})
	cache.put("b", []float32{2})

	// Touch a so b becomes the eviction candidate
	if _, ok := cache.get("a"); !ok {
		t.Fatal("Expected a in cache")
	}

	cache.put("c", []float32{3})

	if _, ok := cache.get("b"); ok {
		t.Error("Expected b evicted")
	}
	if _, ok := cache.get("a"); !ok {
		t.Error("Expected a retained")
	}
	if _, ok := cache.get("c"); !ok {
		t.Error("Expected c retained")
	}
	if got := cache.len(); got != 2 {
		t.Errorf("Expected cache size 2, got %d", got)
	}
}

func TestEmbedCache_UpdatesExistingKey(t *testing.T) {
	cache := newEmbedCache(2)

	cache.put("a", []float32{1})
	cache.put("a", []float32{9})

	vec, ok := cache.get("a")
	if !ok {
		t.Fatal("Expected a in cache")
	}
	if len(vec) != 1 || vec[0] != 9 {
		t.Errorf("Expected updated vector [9], got %v", vec)
	}
	if got := cache.len(); got != 1 {
		t.Errorf("Expected single entry, got %d", got)
	}
}

func TestEmbedCache_DefaultCapacity(t *testing.T) {
	cache := newEmbedCache(0)
	if cache.capacity != defaultEmbedCacheSize {
		t.Errorf("Expected default capacity %d, got %d", defaultEmbedCacheSize, cache.capacity)
	}
}
