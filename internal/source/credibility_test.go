package source

import "testing"

func TestTable_Weight(t *testing.T) {
	table := NewTable()

	tests := []struct {
		url      string
		expected float64
		desc     string
	}{
		{
			url:      "https://www.reuters.com/world/india/some-article",
			expected: 1.5,
			desc:     "Wire service",
		},
		{
			url:      "https://apnews.com/article/xyz",
			expected: 1.5,
			desc:     "AP News",
		},
		{
			url:      "https://www.snopes.com/fact-check/example",
			expected: 1.5,
			desc:     "Fact-checker",
		},
		{
			url:      "https://bbc.com/news/world-123",
			expected: 1.4,
			desc:     "Major newspaper",
		},
		{
			url:      "https://twitter.com/user/status/123",
			expected: 0.5,
			desc:     "Twitter",
		},
		{
			url:      "https://x.com/user/status/123",
			expected: 0.5,
			desc:     "X",
		},
		{
			url:      "https://www.facebook.com/posts/456",
			expected: 0.4,
			desc:     "Facebook",
		},
		{
			url:      "https://www.reddit.com/r/news/comments/abc",
			expected: 0.6,
			desc:     "Reddit",
		},
		{
			url:      "https://www.tiktok.com/@user/video/789",
			expected: 0.3,
			desc:     "TikTok",
		},
		{
			url:      "https://web.mit.edu/research/paper",
			expected: 1.3,
			desc:     "Educational domain",
		},
		{
			url:      "https://www.cdc.gov/flu/index.html",
			expected: 1.4,
			desc:     "Government domain",
		},
		{
			url:      "https://pib.gov.in/PressRelease.aspx",
			expected: 1.4,
			desc:     "Indian government domain",
		},
		{
			url:      "https://thehindu.com/news/national/story",
			expected: 1.3,
			desc:     "Trusted Indian newspaper",
		},
		{
			url:      "https://random-blog.example.com/post/1",
			expected: 1.0,
			desc:     "Unknown domain",
		},
		{
			url:      "",
			expected: 1.0,
			desc:     "Empty URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := table.Weight(tt.url)
			if got != tt.expected {
				t.Errorf("Expected %.2f for %s, got %.2f", tt.expected, tt.url, got)
			}
		})
	}
}

func TestTable_IsSocialMedia(t *testing.T) {
	table := NewTable()

	tests := []struct {
		url      string
		expected bool
		desc     string
	}{
		{"https://twitter.com/status/1", true, "Twitter is social"},
		{"https://www.instagram.com/p/abc", true, "Instagram is social"},
		{"https://threads.net/@user", true, "Threads is social"},
		{"https://www.bbc.com/news/1", false, "BBC is not social"},
		{"https://example.org/page", false, "Unknown is not social"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := table.IsSocialMedia(tt.url)
			if got != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
			}
		})
	}
}

func TestTable_IsTrusted(t *testing.T) {
	table := NewTable()

	tests := []struct {
		url      string
		expected bool
		desc     string
	}{
		{"https://reuters.com/article", true, "Wire service is trusted"},
		{"https://stanford.edu/paper", true, "Educational domain is trusted"},
		{"https://nasa.gov/mission", true, "Government domain is trusted"},
		{"https://reddit.com/r/science", false, "Social media is not trusted"},
		{"https://myblog.net/post", false, "Unknown domain is not trusted"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := table.IsTrusted(tt.url)
			if got != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
			}
		})
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		desc     string
	}{
		{"https://www.reuters.com/world", "reuters.com", "Strips www prefix"},
		{"https://EN.Wikipedia.ORG/wiki/Go", "en.wikipedia.org", "Lowercases host"},
		{"https://example.com:8443/page", "example.com", "Strips port"},
		{"reuters.com/article", "reuters.com", "Handles missing scheme"},
		{"", "", "Empty input"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Domain(tt.url)
			if got != tt.expected {
				t.Errorf("Expected %q for %q, got %q", tt.expected, tt.url, got)
			}
		})
	}
}
