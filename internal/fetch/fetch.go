package fetch

import (
	"context"
	"fmt"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

// Fetcher captures a single strategy implementation (rss, scrape, search).
// Fetch never returns an error: any network, parse, or timeout failure is
// handled internally and degrades to an empty result.
type Fetcher interface {
	Strategy() string
	Fetch(ctx context.Context, source domain.Source) []domain.Article
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	fetchers map[string]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]Fetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(fetcher Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[string]Fetcher{}
	}
	r.fetchers[fetcher.Strategy()] = fetcher
}

// Resolve returns a fetcher by strategy name or an error if it is absent.
func (r *Registry) Resolve(strategy string) (Fetcher, error) {
	if fetcher, ok := r.fetchers[strategy]; ok {
		return fetcher, nil
	}
	return nil, fmt.Errorf("fetch strategy %s is not registered", strategy)
}
