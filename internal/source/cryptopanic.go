package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cryptopulse/newsfeed/internal/classify"
	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
)

const (
	DefaultCryptoPanicBaseURL = "https://cryptopanic.com/api"

	cryptoPanicSourceSlug = "cryptopanic"
	cryptoPanicSourceName = "CryptoPanic"
)

// CryptoPanicSource reads the community news aggregator. With a token it
// uses the authenticated endpoint; without one it falls back to the public
// rate-limited variant rather than skipping the provider.
type CryptoPanicSource struct {
	authToken string
	baseURL   string
	client    *http.Client
	limiter   *ratelimit.Limiter
}

func NewCryptoPanicSource(authToken, baseURL string, limiter *ratelimit.Limiter) *CryptoPanicSource {
	if baseURL == "" {
		baseURL = DefaultCryptoPanicBaseURL
	}
	return &CryptoPanicSource{
		authToken: authToken,
		baseURL:   baseURL,
		client:    newHTTPClient(),
		limiter:   limiter,
	}
}

func (s *CryptoPanicSource) Name() string {
	return cryptoPanicSourceSlug
}

func (s *CryptoPanicSource) Fetch(ctx context.Context) []domain.Article {
	articles, err := s.fetch(ctx)
	if err != nil {
		slog.Error("cryptopanic: fetch failed", "error", err)
		return nil
	}
	return articles
}

type cryptoPanicResponse struct {
	Results []cryptoPanicPost `json:"results"`
}

type cryptoPanicPost struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source struct {
		Title  string `json:"title"`
		Domain string `json:"domain"`
	} `json:"source"`
	Votes struct {
		Important int `json:"important"`
		Positive  int `json:"positive"`
		Negative  int `json:"negative"`
	} `json:"votes"`
	PublishedAt string `json:"published_at"`
}

func (s *CryptoPanicSource) fetch(ctx context.Context) ([]domain.Article, error) {
	if err := s.limiter.Wait(ctx, cryptoPanicSourceSlug); err != nil {
		return nil, err
	}

	endpoint := s.baseURL + "/free/v1/posts/?public=true"
	if s.authToken != "" {
		endpoint = fmt.Sprintf("%s/v1/posts/?auth_token=%s&public=true", s.baseURL, s.authToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call cryptopanic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptopanic returned status %d", resp.StatusCode)
	}

	var payload cryptoPanicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode cryptopanic response: %w", err)
	}

	articles := make([]domain.Article, 0, len(payload.Results))
	for _, post := range payload.Results {
		if post.Title == "" || post.URL == "" {
			continue
		}
		sourceName := post.Source.Title
		if sourceName == "" {
			sourceName = cryptoPanicSourceName
		}
		articles = append(articles, enrich(domain.Article{
			Title:       post.Title,
			URL:         post.URL,
			Source:      cryptoPanicSourceSlug,
			SourceName:  sourceName,
			ImpactScore: classify.ImpactFromVotes(post.Votes.Important, post.Votes.Positive, post.Votes.Negative),
			PublishedAt: parsePublished(post.PublishedAt),
		}))
	}

	slog.Info("cryptopanic: fetched articles", "count", len(articles), "authenticated", s.authToken != "")
	return articles, nil
}
