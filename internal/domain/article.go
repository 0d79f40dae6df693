package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryMarket     Category = "market"
	CategoryTechnology Category = "technology"
	CategoryRegulation Category = "regulation"
	CategoryDefi       Category = "defi"
	CategoryNft        Category = "nft"
	CategoryGaming     Category = "gaming"
)

// Categories lists the full category vocabulary. Every classified article
// carries exactly one of these, CategoryMarket being the default.
func Categories() []Category {
	return []Category{
		CategoryMarket,
		CategoryTechnology,
		CategoryRegulation,
		CategoryDefi,
		CategoryNft,
		CategoryGaming,
	}
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	// SentimentNone marks articles whose source provides no sentiment signal.
	SentimentNone Sentiment = ""
)

// Article is the canonical record every source adapter must produce.
// Once persisted it is immutable except for IsActive, which moderation
// may toggle as a soft delete.
type Article struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary,omitempty"`
	Content        string    `json:"content,omitempty"`
	URL            string    `json:"url"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Source         string    `json:"source"`
	SourceName     string    `json:"sourceName"`
	Author         string    `json:"author,omitempty"`
	Category       Category  `json:"category"`
	Tags           []string  `json:"tags"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	SentimentScore float64   `json:"sentimentScore"`
	ImpactScore    float64   `json:"impactScore"`
	PublishedAt    time.Time `json:"publishedAt"`
	CrawledAt      time.Time `json:"crawledAt"`
	IsActive       bool      `json:"isActive"`
}

// NewsStats aggregates the feed as a whole. LastUpdate is taken across all
// articles, active or not.
type NewsStats struct {
	TotalArticles   int64     `json:"totalArticles"`
	SourcesCount    int       `json:"sourcesCount"`
	CategoriesCount int       `json:"categoriesCount"`
	LastUpdate      time.Time `json:"lastUpdate"`
}
