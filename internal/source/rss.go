package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
)

const (
	DefaultRSSFeedURL = "https://cointelegraph.com/rss"

	rssSourceSlug    = "rss"
	rssSourceName    = "CoinTelegraph"
	rssMaxItems      = 10
	rssSummaryLength = 200
	// the feed carries no engagement data, so impact is fixed
	rssDefaultImpact = 6
)

// RSSSource reads a fixed crypto news feed. It is both a first-class
// adapter and the fallback target of the NewsAPI adapter.
type RSSSource struct {
	feedURL  string
	client   *http.Client
	limiter  *ratelimit.Limiter
	fallback *SampleGenerator
}

func NewRSSSource(feedURL string, limiter *ratelimit.Limiter) *RSSSource {
	if feedURL == "" {
		feedURL = DefaultRSSFeedURL
	}
	return &RSSSource{
		feedURL:  feedURL,
		client:   newHTTPClient(),
		limiter:  limiter,
		fallback: NewSampleGenerator(),
	}
}

func (s *RSSSource) Name() string {
	return rssSourceSlug
}

func (s *RSSSource) Fetch(ctx context.Context) []domain.Article {
	articles, err := s.fetch(ctx)
	if err != nil {
		slog.Error("rss: fetch failed, using sample data", "feed", s.feedURL, "error", err)
		return s.fallback.Fetch(ctx)
	}
	return articles
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Creator     string `xml:"creator"`
}

func (s *RSSSource) fetch(ctx context.Context) ([]domain.Article, error) {
	if err := s.limiter.Wait(ctx, rssSourceSlug); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := doc.Channel.Items
	if len(items) > rssMaxItems {
		items = items[:rssMaxItems]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		articles = append(articles, enrich(domain.Article{
			Title:       strings.TrimSpace(item.Title),
			Summary:     truncate(stripHTML(item.Description), rssSummaryLength),
			URL:         strings.TrimSpace(item.Link),
			Source:      rssSourceSlug,
			SourceName:  rssSourceName,
			Author:      strings.TrimSpace(item.Creator),
			ImpactScore: rssDefaultImpact,
			PublishedAt: parsePublished(strings.TrimSpace(item.PubDate)),
		}))
	}

	slog.Info("rss: fetched feed", "feed", s.feedURL, "articles", len(articles))
	return articles, nil
}

func stripHTML(text string) string {
	var b strings.Builder
	inTag := false
	for _, ch := range text {
		switch {
		case ch == '<':
			inTag = true
		case ch == '>':
			inTag = false
		case !inTag:
			b.WriteRune(ch)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// truncate cuts on rune boundaries so a multibyte character at the limit
// never leaves invalid UTF-8 behind.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
