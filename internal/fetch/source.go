package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/Nevutel/longevityscraper/internal/config"
	"github.com/Nevutel/longevityscraper/internal/domain"
	"github.com/Nevutel/longevityscraper/internal/ports"
)

// StrategySource implements ports.ArticleSource via registered fetch
// strategies. Sources are processed strictly one after another, with a fixed
// pause between them as simple rate-limiting.
type StrategySource struct {
	registry *Registry
	sources  []config.SourceConfig
	delay    time.Duration
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the fetcher registry with config-defined sources.
func NewStrategySource(reg *Registry, sources []config.SourceConfig, delay time.Duration, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		delay:    delay,
		logger:   log,
	}
}

// FetchAll iterates over configured sources and executes their fetchers.
// A source whose strategy cannot be resolved, or whose fetch fails, yields
// zero candidates; the run continues with the remaining sources.
func (s *StrategySource) FetchAll(ctx context.Context) []domain.Article {
	s.debug("fetch all sources", "sources", len(s.sources))

	var aggregated []domain.Article
	for _, src := range s.sources {
		if src.Disabled {
			continue
		}

		fetcher, err := s.registry.Resolve(src.Strategy)
		if err != nil {
			s.warn("resolve strategy", "source", src.Name, "strategy", src.Strategy, "error", err)
			continue
		}

		results := fetcher.Fetch(ctx, toDomainSource(src))
		for i := range results {
			if results[i].Source == "" {
				results[i].Source = src.Name
			}
		}

		s.info("source fetched", "source", src.Name, "strategy", src.Strategy, "count", len(results))
		aggregated = append(aggregated, results...)

		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				s.warn("fetch interrupted", "error", ctx.Err())
				return aggregated
			}
		}
	}

	s.info("all sources fetched", "total_candidates", len(aggregated))
	return aggregated
}

func toDomainSource(cfg config.SourceConfig) domain.Source {
	return domain.Source{
		Name:       cfg.Name,
		Strategy:   cfg.Strategy,
		URL:        cfg.URL,
		FeedURL:    cfg.FeedURL,
		SearchURL:  cfg.SearchURL,
		SearchPath: cfg.SearchPath,
		SearchHost: cfg.SearchHost,
		Disabled:   cfg.Disabled,
	}
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
