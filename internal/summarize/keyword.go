package summarize

import (
	"context"
	"strings"
)

// Domain vocabulary driving the keyword-weighted extractive engine. Weights
// are hand-tuned: topic-defining terms outrank generic research vocabulary.
var keywordWeights = map[string]float64{
	"anti-aging": 3, "longevity": 3, "senescence": 3, "aging": 2,
	"telomere": 3, "sirtuin": 3, "rapamycin": 3, "metformin": 3,
	"nad+": 3, "mitochondria": 2, "autophagy": 3, "inflammation": 2,
	"oxidative stress": 3, "cellular aging": 3, "biological age": 3,
	"epigenetic clock": 3, "senolytics": 3, "gerontology": 2,
	"research": 1, "study": 1, "clinical": 1, "trial": 1,
}

// KeywordEngine scores each sentence by the presence of weighted domain
// keywords and keeps the top sentences in original order.
type KeywordEngine struct {
	maxSentences int
	weights      map[string]float64
}

var _ Engine = (*KeywordEngine)(nil)

// NewKeywordEngine builds the keyword-weighted extractive engine.
func NewKeywordEngine() *KeywordEngine {
	return &KeywordEngine{maxSentences: defaultMaxSentences, weights: keywordWeights}
}

// Name identifies the engine in chain diagnostics.
func (e *KeywordEngine) Name() string {
	return "keyword"
}

// Summarize keeps the sentences densest in domain vocabulary.
func (e *KeywordEngine) Summarize(_ context.Context, text string) (string, error) {
	sentences := splitSentences(cleanText(text))
	if len(sentences) <= e.maxSentences {
		return text, nil
	}

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for keyword, weight := range e.weights {
			if strings.Contains(lower, keyword) {
				scores[i] += weight
			}
		}
	}

	picked := topSentences(sentences, scores, e.maxSentences)
	return joinSentences(picked), nil
}
