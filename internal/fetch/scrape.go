package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

// Path fragments that mark a hyperlink as article-like on a generic listing
// page. A cheap, false-positive-tolerant proxy; the relevance filter is the
// second line of defense.
var articlePathPatterns = []string{
	"/article/",
	"/news/",
	"/research/",
	"/study/",
	"/publication/",
	"/paper/",
	"/journal/",
}

// ScrapeFetcher extracts article-like hyperlinks from a generic HTML page.
type ScrapeFetcher struct {
	pages      *pageClient
	maxPerPage int
	logger     *slog.Logger
}

var _ Fetcher = (*ScrapeFetcher)(nil)

// NewScrapeFetcher wires an HTTP client for listing-page scraping.
func NewScrapeFetcher(client *http.Client, userAgent string, timeout time.Duration, maxPerPage int, logger *slog.Logger) *ScrapeFetcher {
	return &ScrapeFetcher{
		pages:      newPageClient(client, userAgent, timeout),
		maxPerPage: maxPerPage,
		logger:     logger,
	}
}

// Strategy identifies the fetcher inside the registry.
func (f *ScrapeFetcher) Strategy() string {
	return domain.StrategyScrape
}

// Fetch parses all hyperlinks on the source page and keeps those whose target
// looks like an article. Relative links resolve against the source base URL.
func (f *ScrapeFetcher) Fetch(ctx context.Context, source domain.Source) []domain.Article {
	doc, err := f.pages.fetchDocument(ctx, source.URL)
	if err != nil {
		f.warn("scrape page", "source", source.Name, "url", source.URL, "error", err)
		return nil
	}

	articles := collectLinks(doc, source.URL, source.Name, f.maxPerPage, isArticleURL)
	f.debug("page scraped", "source", source.Name, "count", len(articles))
	return articles
}

// isArticleURL reports whether the target path matches the article pattern
// set, case-insensitively.
func isArticleURL(href string) bool {
	lower := strings.ToLower(href)
	for _, pattern := range articlePathPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// collectLinks walks every a[href] element, retaining matches up to the cap.
func collectLinks(doc *goquery.Document, base, sourceName string, limit int, match func(string) bool) []domain.Article {
	var articles []domain.Article

	doc.Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(articles) >= limit {
			return false
		}

		href, _ := sel.Attr("href")
		if href == "" || !match(href) {
			return true
		}

		articles = append(articles, domain.Article{
			Title:  strings.TrimSpace(sel.Text()),
			URL:    resolveLink(base, href),
			Source: sourceName,
		})
		return true
	})

	return articles
}

func (f *ScrapeFetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

func (f *ScrapeFetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
