package ports

import (
	"context"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

// ArticleSource pulls candidate records from every configured origin.
type ArticleSource interface {
	FetchAll(ctx context.Context) []domain.Article
}

// RelevanceFilter scores and date-filters candidates into the accepted subset,
// re-ordered by recency descending.
type RelevanceFilter interface {
	Apply(candidates []domain.Article) []domain.ScoredArticle
}

// Enricher fetches the article page and fills in extracted detail fields.
// Implementations return the input unchanged on any failure.
type Enricher interface {
	Enrich(ctx context.Context, article domain.ScoredArticle) domain.ScoredArticle
}

// Summarizer reduces a long text field to a short one. Total: always returns
// a value, never an error.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// ResultWriter persists the final record set to the primary and backup files.
type ResultWriter interface {
	Persist(articles []domain.ScoredArticle) error
}
