// Package textutil provides plain-text helpers shared by the pipeline.
package textutil

import "strings"

const (
	// maxInputChars bounds how much article text is considered.
	// Long pages carry their substance up front; the tail is boilerplate.
	maxInputChars = 10000

	// minSentenceChars filters out fragments and navigation crumbs.
	// Sentences must be strictly longer than this.
	minSentenceChars = 20

	// maxSentences caps the candidates handed to the similarity ranker.
	maxSentences = 50
)

// SplitSentences breaks article text into candidate evidence sentences.
//
// The input is truncated to 10k characters, sentences of 20 characters
// or fewer are dropped, and at most 50 sentences are returned.
func SplitSentences(text string) []string {
	text = truncateRunes(text, maxInputChars)
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		// Sentence terminators followed by whitespace end a sentence.
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				if s := strings.TrimSpace(current.String()); len(s) > minSentenceChars {
					sentences = append(sentences, s)
					if len(sentences) == maxSentences {
						return sentences
					}
				}
				current.Reset()
			}
		}
	}

	// Flush trailing text that never hit a terminator.
	if s := strings.TrimSpace(current.String()); len(s) > minSentenceChars {
		sentences = append(sentences, s)
	}

	return sentences
}

// truncateRunes cuts s to at most n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
