package summarize

import "context"

// LeadEngine is the last extractive resort: the first sentences of the text,
// with an ellipsis suffix when anything was cut.
type LeadEngine struct {
	maxSentences int
}

var _ Engine = (*LeadEngine)(nil)

// NewLeadEngine builds the lead-extraction engine.
func NewLeadEngine() *LeadEngine {
	return &LeadEngine{maxSentences: defaultMaxSentences}
}

// Name identifies the engine in chain diagnostics.
func (e *LeadEngine) Name() string {
	return "lead"
}

// Summarize keeps the opening sentences of the input.
func (e *LeadEngine) Summarize(_ context.Context, text string) (string, error) {
	sentences := splitSentences(cleanText(text))
	if len(sentences) <= e.maxSentences {
		return text, nil
	}

	return joinSentences(sentences[:e.maxSentences]) + "...", nil
}
