package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cryptopulse/newsfeed/internal/classify"
	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
)

const (
	DefaultCryptoCompareBaseURL = "https://min-api.cryptocompare.com"

	cryptoCompareSourceSlug = "cryptocompare"
	cryptoCompareSourceName = "CryptoCompare"
)

// CryptoCompareSource reads the curated CryptoCompare news API. Without an
// API key it delegates to the sample generator; note this differs from the
// NewsAPI adapter, whose credential fallback is the RSS feed.
type CryptoCompareSource struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	limiter  *ratelimit.Limiter
	fallback *SampleGenerator
}

func NewCryptoCompareSource(apiKey, baseURL string, limiter *ratelimit.Limiter) *CryptoCompareSource {
	if baseURL == "" {
		baseURL = DefaultCryptoCompareBaseURL
	}
	return &CryptoCompareSource{
		apiKey:   apiKey,
		baseURL:  baseURL,
		client:   newHTTPClient(),
		limiter:  limiter,
		fallback: NewSampleGenerator(),
	}
}

func (s *CryptoCompareSource) Name() string {
	return cryptoCompareSourceSlug
}

func (s *CryptoCompareSource) Fetch(ctx context.Context) []domain.Article {
	if s.apiKey == "" {
		slog.Info("cryptocompare: no api key configured, using sample data")
		return s.fallback.Fetch(ctx)
	}

	articles, err := s.fetch(ctx)
	if err != nil {
		slog.Error("cryptocompare: fetch failed", "error", err)
		return nil
	}
	return articles
}

type cryptoCompareResponse struct {
	Data []cryptoCompareArticle `json:"Data"`
}

type cryptoCompareArticle struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageurl"`
	Source      string `json:"source"`
	PublishedOn int64  `json:"published_on"`
	Upvotes     string `json:"upvotes"`
	Downvotes   string `json:"downvotes"`
	SourceInfo  struct {
		Name string `json:"name"`
	} `json:"source_info"`
}

func (s *CryptoCompareSource) fetch(ctx context.Context) ([]domain.Article, error) {
	if err := s.limiter.Wait(ctx, cryptoCompareSourceSlug); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/data/v2/news/?lang=EN&api_key=%s", s.baseURL, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call cryptocompare: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptocompare returned status %d", resp.StatusCode)
	}

	var payload cryptoCompareResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode cryptocompare response: %w", err)
	}

	articles := make([]domain.Article, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if raw.Title == "" || raw.URL == "" {
			continue
		}
		sourceName := raw.SourceInfo.Name
		if sourceName == "" {
			sourceName = cryptoCompareSourceName
		}
		articles = append(articles, enrich(domain.Article{
			Title:       raw.Title,
			Summary:     truncate(raw.Body, rssSummaryLength),
			Content:     raw.Body,
			URL:         raw.URL,
			ImageURL:    raw.ImageURL,
			Source:      cryptoCompareSourceSlug,
			SourceName:  sourceName,
			ImpactScore: classify.ImpactFromVotes(0, atoi(raw.Upvotes), atoi(raw.Downvotes)),
			PublishedAt: time.Unix(raw.PublishedOn, 0).UTC(),
		}))
	}

	slog.Info("cryptocompare: fetched articles", "count", len(articles))
	return articles, nil
}

// atoi is forgiving: the provider reports vote counts as strings and a
// value we cannot parse simply counts as zero votes.
func atoi(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
