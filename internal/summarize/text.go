package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	// Inputs below this length gain nothing from summarization and risk
	// being truncated further.
	minSummarizeLength = 100

	// Extractive engines keep this many sentences, in original order.
	defaultMaxSentences = 3

	// Hard character cap used by the absolute fallback.
	truncateLimit = 500
)

var (
	specialChars = regexp.MustCompile(`[^\w\s.!?,]`)

	// Trailing tokens after which a period does not end a sentence.
	abbreviations = map[string]struct{}{
		"dr": {}, "prof": {}, "mr": {}, "mrs": {}, "ms": {},
		"vs": {}, "fig": {}, "al": {}, "e.g": {}, "i.e": {}, "approx": {},
	}

	stopwords = map[string]struct{}{
		"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
		"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
		"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {},
		"that": {}, "the": {}, "their": {}, "these": {}, "this": {}, "to": {},
		"was": {}, "were": {}, "which": {}, "with": {}, "will": {}, "can": {},
		"not": {}, "than": {}, "more": {}, "also": {}, "been": {}, "may": {},
	}
)

// cleanText normalizes whitespace and drops characters outside words and
// basic punctuation, mirroring the preprocessing every extractive engine
// expects.
func cleanText(text string) string {
	text = specialChars.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// splitSentences performs best-effort segmentation on ., !, ? boundaries,
// tolerating common abbreviations. Accuracy on malformed or non-English text
// is not a goal; callers degrade to truncation instead.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && endsWithAbbreviation(current.String()) {
			continue
		}

		if sentence := strings.TrimSpace(current.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

func endsWithAbbreviation(fragment string) bool {
	fragment = strings.TrimSuffix(fragment, ".")
	idx := strings.LastIndexFunc(fragment, unicode.IsSpace)
	word := strings.ToLower(fragment[idx+1:])
	_, ok := abbreviations[word]
	return ok
}

// tokenize lowercases and splits a sentence into content words, dropping
// stopwords and single characters.
func tokenize(sentence string) []string {
	fields := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+'
	})

	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 2 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		words = append(words, w)
	}
	return words
}

// topSentences keeps the n highest-scoring sentences in their original order.
func topSentences(sentences []string, scores []float64, n int) []string {
	type ranked struct {
		index int
		score float64
	}

	order := make([]ranked, len(sentences))
	for i := range sentences {
		order[i] = ranked{index: i, score: scores[i]}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	if n > len(order) {
		n = len(order)
	}
	picked := order[:n]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	result := make([]string, 0, n)
	for _, r := range picked {
		result = append(result, sentences[r.index])
	}
	return result
}

// truncate cuts at a rune boundary and appends an ellipsis when shortened.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
