// Package dto holds the data contracts the API exposes to the dashboard.
package dto

import (
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/google/uuid"
)

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
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	Sentiment      string    `json:"sentiment,omitempty"`
	SentimentScore float64   `json:"sentimentScore"`
	ImpactScore    float64   `json:"impactScore"`
	PublishedAt    time.Time `json:"publishedAt"`
	CrawledAt      time.Time `json:"crawledAt"`
}

type NewsPage struct {
	Articles []Article `json:"articles"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	HasMore  bool      `json:"hasMore"`
}

// Facet is a distinct category or source with its display name.
type Facet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type NewsStats struct {
	TotalArticles   int64     `json:"totalArticles"`
	SourcesCount    int       `json:"sourcesCount"`
	CategoriesCount int       `json:"categoriesCount"`
	LastUpdate      time.Time `json:"lastUpdate"`
}

func FromDomain(a domain.Article) Article {
	return Article{
		ID:             a.ID,
		Title:          a.Title,
		Summary:        a.Summary,
		Content:        a.Content,
		URL:            a.URL,
		ImageURL:       a.ImageURL,
		Source:         a.Source,
		SourceName:     a.SourceName,
		Author:         a.Author,
		Category:       string(a.Category),
		Tags:           a.Tags,
		Sentiment:      string(a.Sentiment),
		SentimentScore: a.SentimentScore,
		ImpactScore:    a.ImpactScore,
		PublishedAt:    a.PublishedAt,
		CrawledAt:      a.CrawledAt,
	}
}
