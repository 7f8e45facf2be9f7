package enrich

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/Nevutel/longevityscraper/internal/domain"
	"github.com/Nevutel/longevityscraper/internal/ports"
)

// Full-text excerpts are capped so the summary column stays display-sized
// even before the summarization chain runs.
const excerptLimit = 500

// Extractor downloads the target article page and enriches the record with a
// full-text excerpt, authors, and keywords. On any failure the input record
// is returned unchanged. Every call is followed by a fixed pause to bound the
// outbound request rate.
type Extractor struct {
	client    *http.Client
	userAgent string
	delay     time.Duration
	logger    *slog.Logger
}

var _ ports.Enricher = (*Extractor)(nil)

// NewExtractor wires an HTTP client for article-page downloads.
func NewExtractor(client *http.Client, userAgent string, timeout, delay time.Duration, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Extractor{client: client, userAgent: userAgent, delay: delay, logger: logger}
}

// Enrich fetches and parses the article page. Title and summary are
// overwritten only when the extracted value is non-empty; the published date
// is filled only when not already known.
func (e *Extractor) Enrich(ctx context.Context, article domain.ScoredArticle) domain.ScoredArticle {
	defer e.pause(ctx)

	if article.URL == "" {
		return article
	}

	body, err := e.download(ctx, article.URL)
	if err != nil {
		e.warn("download article page", "url", article.URL, "error", err)
		return article
	}

	pageURL, err := url.Parse(article.URL)
	if err != nil {
		e.warn("parse article url", "url", article.URL, "error", err)
		return article
	}

	extracted, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		e.warn("extract article content", "url", article.URL, "error", err)
		return article
	}

	if title := strings.TrimSpace(extracted.Title); title != "" {
		article.Title = title
	}
	if text := strings.TrimSpace(extracted.TextContent); text != "" {
		article.Summary = excerpt(text, excerptLimit)
	}
	article.Authors = strings.TrimSpace(extracted.Byline)

	e.applyMetaTags(bytes.NewReader(body), &article)

	e.debug("article enriched", "url", article.URL, "authors", article.Authors)
	return article
}

// applyMetaTags fills fields readability does not cover: keywords, a missing
// byline, and a missing published date.
func (e *Extractor) applyMetaTags(page io.Reader, article *domain.ScoredArticle) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return
	}

	if article.Authors == "" {
		article.Authors = metaContent(doc, `meta[name="author"]`)
	}
	article.Keywords = metaContent(doc, `meta[name="keywords"]`)

	if article.PublishedAt.IsZero() {
		raw := metaContent(doc, `meta[property="article:published_time"]`)
		if parsed, ok := domain.ParseDate(raw); ok {
			article.PublishedAt = parsed
			article.PublishedRaw = raw
		}
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func (e *Extractor) download(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page body: %w", err)
	}

	return body, nil
}

// excerpt truncates at a rune boundary so multibyte text is never split.
func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func (e *Extractor) pause(ctx context.Context) {
	if e.delay <= 0 {
		return
	}
	select {
	case <-time.After(e.delay):
	case <-ctx.Done():
	}
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
