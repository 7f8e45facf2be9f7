package domain

import "time"

// Fetch strategies recognized by the source registry.
const (
	StrategyRSS    = "rss"
	StrategyScrape = "scrape"
	StrategySearch = "search"
)

// Source is a static descriptor for one content origin. Loaded once from
// configuration at startup and never mutated afterwards.
type Source struct {
	Name       string
	Strategy   string
	URL        string
	FeedURL    string
	SearchURL  string
	SearchPath string
	SearchHost string
	Disabled   bool
}

// Article is a candidate record produced by a fetcher. URL may be empty only
// for malformed scrape rows; such records are dropped by the relevance filter.
type Article struct {
	Title        string
	URL          string
	PublishedRaw string
	PublishedAt  time.Time
	Summary      string
	Source       string
}

// ScoredArticle is a candidate that survived date and relevance filtering,
// augmented with its relevance score and optional extracted metadata.
type ScoredArticle struct {
	Article
	Score    int
	Authors  string
	Keywords string
}
