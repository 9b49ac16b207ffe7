package textutil

import (
	"strings"
	"testing"
)

func TestSplitSentences_Basic(t *testing.T) {
	text := "The Eiffel Tower was completed in 1889. It stands over three hundred meters tall. Visitors climb it every single day."

	sentences := SplitSentences(text)
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "The Eiffel Tower was completed in 1889." {
		t.Errorf("Unexpected first sentence: %q", sentences[0])
	}
	if sentences[2] != "Visitors climb it every single day." {
		t.Errorf("Unexpected last sentence: %q", sentences[2])
	}
}

func TestSplitSentences_DropsShortFragments(t *testing.T) {
	text := "Home. About us. The committee published its annual findings in October. Contact."

	sentences := SplitSentences(text)
	if len(sentences) != 1 {
		t.Fatalf("Expected 1 sentence after filtering, got %d: %v", len(sentences), sentences)
	}
	if !strings.Contains(sentences[0], "annual findings") {
		t.Errorf("Kept the wrong sentence: %q", sentences[0])
	}
}

func TestSplitSentences_OtherTerminators(t *testing.T) {
	text := "Did the minister really say that on the record? The recording proves she absolutely did! Nobody disputed it afterwards."

	sentences := SplitSentences(text)
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
}

func TestSplitSentences_CapsAtFifty(t *testing.T) {
	one := "This sentence is long enough to pass the length filter. "
	text := strings.Repeat(one, 80)

	sentences := SplitSentences(text)
	if len(sentences) != 50 {
		t.Errorf("Expected cap of 50 sentences, got %d", len(sentences))
	}
}

func TestSplitSentences_TruncatesLongInput(t *testing.T) {
	filler := strings.Repeat("a", 9990)
	text := filler + " tail. This sentence sits entirely beyond the cutoff point."

	sentences := SplitSentences(text)
	for _, s := range sentences {
		if strings.Contains(s, "beyond the cutoff") {
			t.Errorf("Sentence past the 10k cap should not appear: %q", s)
		}
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	text := "a headline fragment without any terminator that still reads like content"

	sentences := SplitSentences(text)
	if len(sentences) != 1 {
		t.Fatalf("Expected trailing text to be kept, got %d sentences", len(sentences))
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("Expected no sentences for empty input, got %v", got)
	}
}
