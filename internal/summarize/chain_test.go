package summarize

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type failingEngine struct{ name string }

func (e failingEngine) Name() string { return e.name }

func (e failingEngine) Summarize(context.Context, string) (string, error) {
	return "", fmt.Errorf("%s unavailable", e.name)
}

func longInput() string {
	sentences := []string{
		"Researchers reported that rapamycin extended lifespan in aged mice.",
		"The control group showed no change in biological age markers.",
		"Senolytics cleared senescent cells in the treated cohort.",
		"Funding for the longevity trial came from several institutes.",
		"A follow-up study on autophagy is planned for next year.",
		"The weather on the day of the announcement was unremarkable.",
	}
	return strings.Join(sentences, " ")
}

func TestChainReturnsShortInputUnchanged(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil, NewTFIDFEngine(), NewLeadEngine())
	input := "A short note about longevity."
	if len(input) >= minSummarizeLength {
		t.Fatalf("test input must be below the minimum, has %d chars", len(input))
	}

	if got := chain.Summarize(context.Background(), input); got != input {
		t.Fatalf("short input was modified: %q", got)
	}
}

func TestChainWithoutCredentialUsesExtractive(t *testing.T) {
	t.Parallel()

	// No generative engine registered: the TF-IDF stage must produce the
	// summary for a long input.
	chain := NewChain(nil, NewTFIDFEngine(), NewKeywordEngine(), NewLeadEngine())
	input := longInput()
	for len(input) < 2000 {
		input += " " + longInput()
	}

	got := chain.Summarize(context.Background(), input)

	want, err := NewTFIDFEngine().Summarize(context.Background(), input)
	if err != nil {
		t.Fatalf("tfidf engine failed on well-formed input: %v", err)
	}
	if got != want {
		t.Fatalf("chain did not use the tfidf stage:\ngot  %q\nwant %q", got, want)
	}
}

func TestChainFallsThroughFailingEngines(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil, failingEngine{"first"}, failingEngine{"second"}, NewLeadEngine())
	got := chain.Summarize(context.Background(), longInput())

	if got == "" {
		t.Fatal("chain returned empty summary")
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("lead extraction should mark truncation: %q", got)
	}
}

func TestChainTruncatesWhenEverythingFails(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil, failingEngine{"only"})
	input := strings.Repeat("x", 800)

	got := chain.Summarize(context.Background(), input)
	if len([]rune(got)) != truncateLimit+3 {
		t.Fatalf("expected %d-char truncation with ellipsis, got %d", truncateLimit+3, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got[len(got)-10:])
	}
}
