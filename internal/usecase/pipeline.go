package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nevutel/longevityscraper/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Filter     ports.RelevanceFilter
	Enricher   ports.Enricher
	Summarizer ports.Summarizer
	Writer     ports.ResultWriter
	Logger     *slog.Logger
}

// Pipeline implements the ingestion-and-relevance workflow: fetch every
// source, filter candidates, optionally enrich, summarize the display text,
// persist. One run is a unit: it completes or fails as a whole and streams
// nothing outward.
type Pipeline struct {
	source     ports.ArticleSource
	filter     ports.RelevanceFilter
	enricher   ports.Enricher
	summarizer ports.Summarizer
	writer     ports.ResultWriter
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		filter:     deps.Filter,
		enricher:   deps.Enricher,
		summarizer: deps.Summarizer,
		writer:     deps.Writer,
		logger:     deps.Logger,
	}
}

// Run executes one full pipeline invocation and returns the accepted-record
// count. Fetch, enrichment, and summarization failures are absorbed by their
// stages; only a persistence failure is fatal.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	if p.source == nil || p.filter == nil || p.writer == nil {
		return 0, fmt.Errorf("pipeline is not fully wired")
	}

	candidates := p.source.FetchAll(ctx)
	p.info("candidates fetched", "count", len(candidates))

	accepted := p.filter.Apply(candidates)
	p.info("candidates accepted", "count", len(accepted))

	for i := range accepted {
		if p.enricher != nil {
			accepted[i] = p.enricher.Enrich(ctx, accepted[i])
		}
		if p.summarizer != nil && accepted[i].Summary != "" {
			accepted[i].Summary = p.summarizer.Summarize(ctx, accepted[i].Summary)
		}
	}

	if err := p.writer.Persist(accepted); err != nil {
		return 0, fmt.Errorf("persist results: %w", err)
	}

	return len(accepted), nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
