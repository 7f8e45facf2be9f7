package summarize

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// TFIDFEngine scores each sentence by the mean TF-IDF weight of its unigrams
// and bigrams and keeps the top sentences in original order.
type TFIDFEngine struct {
	maxSentences int
}

var _ Engine = (*TFIDFEngine)(nil)

// NewTFIDFEngine builds the extractive TF-IDF engine.
func NewTFIDFEngine() *TFIDFEngine {
	return &TFIDFEngine{maxSentences: defaultMaxSentences}
}

// Name identifies the engine in chain diagnostics.
func (e *TFIDFEngine) Name() string {
	return "tfidf"
}

// Summarize keeps the highest-weighted sentences of the input.
func (e *TFIDFEngine) Summarize(_ context.Context, text string) (string, error) {
	sentences := splitSentences(cleanText(text))
	if len(sentences) <= e.maxSentences {
		return text, nil
	}

	terms := make([][]string, len(sentences))
	docFreq := map[string]int{}
	for i, sentence := range sentences {
		terms[i] = ngrams(tokenize(sentence))

		seen := map[string]struct{}{}
		for _, term := range terms[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	if len(docFreq) == 0 {
		return "", fmt.Errorf("no scorable terms in %d sentences", len(sentences))
	}

	n := float64(len(sentences))
	scores := make([]float64, len(sentences))
	for i := range sentences {
		if len(terms[i]) == 0 {
			continue
		}

		counts := map[string]int{}
		for _, term := range terms[i] {
			counts[term]++
		}

		// Summation order is fixed so scores are reproducible across runs.
		unique := make([]string, 0, len(counts))
		for term := range counts {
			unique = append(unique, term)
		}
		sort.Strings(unique)

		var total float64
		for _, term := range unique {
			tf := float64(counts[term]) / float64(len(terms[i]))
			idf := math.Log((1+n)/float64(1+docFreq[term])) + 1
			total += tf * idf
		}
		// Mean over the whole vocabulary, so sentences carrying more
		// distinctive terms outscore short repetitive ones.
		scores[i] = total / float64(len(docFreq))
	}

	picked := topSentences(sentences, scores, e.maxSentences)
	return joinSentences(picked), nil
}

// ngrams expands content words into unigrams plus adjacent bigrams.
func ngrams(words []string) []string {
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

func joinSentences(sentences []string) string {
	var out string
	for i, s := range sentences {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
