package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// pageClient performs timeout-bounded document fetches with a fixed
// User-Agent, shared by the scrape and search strategies.
type pageClient struct {
	client    *http.Client
	userAgent string
}

func newPageClient(client *http.Client, userAgent string, timeout time.Duration) *pageClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &pageClient{client: client, userAgent: userAgent}
}

func (p *pageClient) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// resolveLink joins a possibly relative href against a base by plain
// concatenation. Deliberately not full RFC-3986 resolution; listing pages in
// the source registry all use root-relative hrefs.
func resolveLink(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(href, "/")
}
