package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

// RSSFetcher parses feed documents with best-effort field extraction: missing
// title, link, date, or summary default to empty values instead of failing
// the entry.
type RSSFetcher struct {
	parser     *gofeed.Parser
	maxPerFeed int
	logger     *slog.Logger
}

var _ Fetcher = (*RSSFetcher)(nil)

// NewRSSFetcher wires a gofeed parser; maxPerFeed caps entries per source.
func NewRSSFetcher(client *http.Client, userAgent string, timeout time.Duration, maxPerFeed int, logger *slog.Logger) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &RSSFetcher{parser: parser, maxPerFeed: maxPerFeed, logger: logger}
}

// Strategy identifies the fetcher inside the registry.
func (f *RSSFetcher) Strategy() string {
	return domain.StrategyRSS
}

// Fetch downloads and parses the feed, emitting one candidate per entry.
func (f *RSSFetcher) Fetch(ctx context.Context, source domain.Source) []domain.Article {
	feed, err := f.parser.ParseURLWithContext(source.FeedURL, ctx)
	if err != nil {
		f.warn("fetch rss feed", "source", source.Name, "url", source.FeedURL, "error", err)
		return nil
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = "Unknown"
	}

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(articles) >= f.maxPerFeed {
			break
		}
		if item == nil {
			continue
		}

		article := domain.Article{
			Title:        item.Title,
			URL:          item.Link,
			PublishedRaw: item.Published,
			Summary:      item.Description,
			Source:       sourceName,
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = *item.PublishedParsed
		} else if parsed, ok := domain.ParseDate(item.Published); ok {
			article.PublishedAt = parsed
		}

		articles = append(articles, article)
	}

	f.debug("rss feed fetched", "source", source.Name, "count", len(articles))
	return articles
}

func (f *RSSFetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

func (f *RSSFetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
