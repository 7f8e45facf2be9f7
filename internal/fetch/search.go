package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

const (
	defaultSearchPath = "/science/article/"
	defaultSearchHost = "https://www.sciencedirect.com"
)

// SearchFetcher extracts result links from a search-results page. Unlike the
// generic scraper it matches one per-source path fragment and resolves
// relative links against a fixed host rather than the originating URL.
type SearchFetcher struct {
	pages      *pageClient
	maxPerPage int
	logger     *slog.Logger
}

var _ Fetcher = (*SearchFetcher)(nil)

// NewSearchFetcher wires an HTTP client for search-results scraping.
func NewSearchFetcher(client *http.Client, userAgent string, timeout time.Duration, maxPerPage int, logger *slog.Logger) *SearchFetcher {
	return &SearchFetcher{
		pages:      newPageClient(client, userAgent, timeout),
		maxPerPage: maxPerPage,
		logger:     logger,
	}
}

// Strategy identifies the fetcher inside the registry.
func (f *SearchFetcher) Strategy() string {
	return domain.StrategySearch
}

// Fetch parses the search-results page for links containing the source's
// result-path fragment.
func (f *SearchFetcher) Fetch(ctx context.Context, source domain.Source) []domain.Article {
	doc, err := f.pages.fetchDocument(ctx, source.SearchURL)
	if err != nil {
		f.warn("scrape search results", "source", source.Name, "url", source.SearchURL, "error", err)
		return nil
	}

	path := source.SearchPath
	if path == "" {
		path = defaultSearchPath
	}
	host := source.SearchHost
	if host == "" {
		host = defaultSearchHost
	}

	match := func(href string) bool {
		return strings.Contains(strings.ToLower(href), strings.ToLower(path))
	}

	articles := collectLinks(doc, host, source.Name, f.maxPerPage, match)
	f.debug("search results scraped", "source", source.Name, "count", len(articles))
	return articles
}

func (f *SearchFetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

func (f *SearchFetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
