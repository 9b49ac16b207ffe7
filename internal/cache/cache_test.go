package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("https://example.com/article")
	b := Key("https://example.com/article")
	c := Key("https://example.com/other")

	if a != b {
		t.Errorf("Same URL produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("Different URLs produced the same key: %s", a)
	}
	if !strings.HasPrefix(a, "verifact:v1:") {
		t.Errorf("Key missing version prefix: %s", a)
	}
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(time.Minute)

	m.Set("k", []byte("article body"), 0)

	got, found := m.Get("k")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(got) != "article body" {
		t.Errorf("Expected %q, got %q", "article body", got)
	}
}

func TestMemory_Miss(t *testing.T) {
	m := NewMemory(time.Minute)

	if _, found := m.Get("absent"); found {
		t.Error("Expected cache miss for absent key")
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(time.Minute)

	m.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := m.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestMemory_DeleteAndFlush(t *testing.T) {
	m := NewMemory(time.Minute)

	m.Set("a", []byte("1"), 0)
	m.Set("b", []byte("2"), 0)

	m.Delete("a")
	if _, found := m.Get("a"); found {
		t.Error("Expected deleted key to be gone")
	}

	m.Flush()
	if _, found := m.Get("b"); found {
		t.Error("Expected flush to clear all keys")
	}
}
