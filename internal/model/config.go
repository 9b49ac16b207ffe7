package model

import "time"

// Config holds all tunable settings for a check run.
// Decision constants (verdict thresholds, stance precedence) are not
// configurable: they live next to the code that applies them so that
// two runs over the same evidence can never disagree.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Search    SearchConfig    `yaml:"search"`
	Evidence  EvidenceConfig  `yaml:"evidence"`
	Inference InferenceConfig `yaml:"inference"`
	Cache     CacheConfig     `yaml:"cache"`
	Output    OutputConfig    `yaml:"output"`
}

// HTTPConfig controls outbound article fetching.
type HTTPConfig struct {
	Timeout        time.Duration `yaml:"timeout"`          // Per-article fetch timeout
	UserAgent      string        `yaml:"user_agent"`       // Sent on every request
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`   // Response read cap
	InsecureTLS    bool          `yaml:"insecure_tls"`     // Skip certificate verification
	RespectRobots  bool          `yaml:"respect_robots"`   // Honor robots.txt before fetching
	PerDomainRPS   float64       `yaml:"per_domain_rps"`   // Politeness rate per domain
	PerDomainBurst int           `yaml:"per_domain_burst"` // Politeness burst per domain
	HTTPProxy      string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy     string        `yaml:"https_proxy,omitempty"`
	NoProxy        string        `yaml:"no_proxy,omitempty"`
}

// SearchConfig controls the tiered search chain.
// API keys come from the environment, never from the config file.
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"` // Per-query result cap, 1..10
	MaxRetries int    `yaml:"max_retries"` // Fallback-tier retry attempts
	TavilyKey  string `yaml:"-"`           // TAVILY_API_KEY
	BraveKey   string `yaml:"-"`           // BRAVE_API_KEY
}

// EvidenceConfig controls evidence extraction and aggregation.
type EvidenceConfig struct {
	Workers       int     `yaml:"workers"`        // Concurrent source analyses
	TopSentences  int     `yaml:"top_sentences"`  // Sentences kept per source
	MinSimilarity float64 `yaml:"min_similarity"` // Early-exit relevance floor
}

// InferenceConfig controls the embedding and stance models.
type InferenceConfig struct {
	APIKey      string `yaml:"-"`                  // OPENAI_API_KEY
	BaseURL     string `yaml:"base_url,omitempty"` // OpenAI-compatible endpoint override
	EmbedModel  string `yaml:"embed_model"`
	StanceModel string `yaml:"stance_model"`
	Timeout     int    `yaml:"timeout"`    // Seconds per API call
	CacheSize   int    `yaml:"cache_size"` // Claim embedding LRU capacity
}

// CacheConfig controls the in-memory article cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls rendering and logging.
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Explain  bool   `yaml:"explain"`   // Attach the reasoning trail to reports
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:        8 * time.Second,
			UserAgent:      "VeriFact/1.0 (+https://github.com/kishnakushwaha/VeriFact)",
			MaxBodyBytes:   2_000_000,
			RespectRobots:  true,
			PerDomainRPS:   1,
			PerDomainBurst: 2,
		},
		Search: SearchConfig{
			MaxResults: 6,
			MaxRetries: 3,
		},
		Evidence: EvidenceConfig{
			Workers:       3,
			TopSentences:  3,
			MinSimilarity: 0.25,
		},
		Inference: InferenceConfig{
			EmbedModel:  "text-embedding-3-small",
			StanceModel: "gpt-4o-mini",
			Timeout:     30,
			CacheSize:   32,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			LogLevel: "info",
			Explain:  true,
		},
	}
}
