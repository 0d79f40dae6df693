package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
)

const (
	DefaultNewsAPIBaseURL = "https://newsapi.org/v2"

	newsAPISourceSlug = "newsapi"
	newsAPISourceName = "NewsAPI"
)

// NewsAPISource pulls general crypto coverage from the NewsAPI "everything"
// endpoint. The provider is useless without a key, so a missing credential
// delegates to the RSS adapter instead of silently returning nothing.
type NewsAPISource struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	limiter  *ratelimit.Limiter
	fallback *RSSSource
}

func NewNewsAPISource(apiKey, baseURL string, limiter *ratelimit.Limiter, fallback *RSSSource) *NewsAPISource {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	return &NewsAPISource{
		apiKey:   apiKey,
		baseURL:  baseURL,
		client:   newHTTPClient(),
		limiter:  limiter,
		fallback: fallback,
	}
}

func (s *NewsAPISource) Name() string {
	return newsAPISourceSlug
}

func (s *NewsAPISource) Fetch(ctx context.Context) []domain.Article {
	if s.apiKey == "" {
		slog.Info("newsapi: no api key configured, delegating to rss feed")
		return s.fallback.Fetch(ctx)
	}

	articles, err := s.fetch(ctx)
	if err != nil {
		slog.Error("newsapi: fetch failed", "error", err)
		return nil
	}
	return articles
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

func (s *NewsAPISource) fetch(ctx context.Context) ([]domain.Article, error) {
	if err := s.limiter.Wait(ctx, newsAPISourceSlug); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/everything?q=%s&sortBy=publishedAt&language=en&apiKey=%s",
		s.baseURL, url.QueryEscape("cryptocurrency OR bitcoin OR ethereum"), s.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call newsapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		if raw.Title == "" || raw.URL == "" {
			continue
		}
		sourceName := raw.Source.Name
		if sourceName == "" {
			sourceName = newsAPISourceName
		}
		articles = append(articles, enrich(domain.Article{
			Title:       raw.Title,
			Summary:     raw.Description,
			Content:     raw.Content,
			URL:         raw.URL,
			ImageURL:    raw.URLToImage,
			Source:      newsAPISourceSlug,
			SourceName:  sourceName,
			Author:      raw.Author,
			ImpactScore: defaultImpact,
			PublishedAt: parsePublished(raw.PublishedAt),
		}))
	}

	slog.Info("newsapi: fetched articles", "count", len(articles))
	return articles, nil
}
