package storage

import (
	"context"
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
)

// Sort names the columns read queries may order by.
type Sort string

const (
	SortPublishedAt Sort = "publishedAt"
	SortImpact      Sort = "impact"
	SortSentiment   Sort = "sentiment"
	SortSource      Sort = "source"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter narrows read queries. Zero values mean "no restriction" except
// Sentiment, where a non-nil pointer to the empty string matches articles
// with no sentiment at all.
type Filter struct {
	Sources    []string
	Categories []string
	Sentiment  *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
}

// Facet is one distinct source or category value observed among active
// articles, with its human-readable name when one is stored.
type Facet struct {
	Value       string
	DisplayName string
}

type Store interface {
	// ExistsByURL reports whether an article with the given canonical URL
	// is already persisted, active or not.
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// Insert persists a new article. A unique-URL conflict surfaces as
	// ErrDuplicateURL so callers can treat it as a benign skip.
	Insert(ctx context.Context, article domain.Article) error

	// List returns active articles matching the filter, ordered and paged.
	List(ctx context.Context, f Filter, sort Sort, dir Direction, limit, offset int) ([]domain.Article, error)
	// Count returns the number of active articles matching the filter.
	Count(ctx context.Context, f Filter) (int64, error)

	// DistinctCategories and DistinctSources report values actually present
	// among active articles, not a configured list.
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctSources(ctx context.Context) ([]Facet, error)
	// LastCrawledAt is the most recent crawl timestamp across all articles,
	// inactive ones included.
	LastCrawledAt(ctx context.Context) (time.Time, error)
}
