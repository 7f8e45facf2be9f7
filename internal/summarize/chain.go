package summarize

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Nevutel/longevityscraper/internal/ports"
)

// Engine is one summarization strategy. An error means the engine could not
// produce a summary and the next one in the chain should be tried.
type Engine interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
}

// Chain runs engines in preference order until one succeeds. It is total: if
// every engine fails, the input is hard-truncated instead.
type Chain struct {
	engines []Engine
	logger  *slog.Logger
}

var _ ports.Summarizer = (*Chain)(nil)

// NewChain wires engines in the order they should be attempted.
func NewChain(logger *slog.Logger, engines ...Engine) *Chain {
	return &Chain{engines: engines, logger: logger}
}

// Summarize reduces a long text to a short one. Inputs below the minimum
// length are returned unchanged.
func (c *Chain) Summarize(ctx context.Context, text string) string {
	if utf8.RuneCountInString(text) < minSummarizeLength {
		return text
	}

	for _, engine := range c.engines {
		summary, err := engine.Summarize(ctx, text)
		if err != nil {
			c.warn("summarization engine failed", "engine", engine.Name(), "error", err)
			continue
		}
		if summary = strings.TrimSpace(summary); summary != "" {
			c.debug("summary produced", "engine", engine.Name())
			return summary
		}
	}

	c.warn("all summarization engines failed, truncating")
	return truncate(text, truncateLimit)
}

func (c *Chain) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Chain) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
