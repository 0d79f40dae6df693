// Package news is the read side of the feed: filtered, sorted, paginated
// article listings plus the facet and stats lookups the dashboard renders.
package news

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cryptopulse/newsfeed/internal/cache"
	"github.com/cryptopulse/newsfeed/internal/dto"
	"github.com/cryptopulse/newsfeed/internal/storage"
	"github.com/cryptopulse/newsfeed/pkg/pagination"
	"github.com/cryptopulse/newsfeed/pkg/stringsutil"
)

const (
	cacheKeyCategories = "newsfeed:facets:categories"
	cacheKeySources    = "newsfeed:facets:sources"
	cacheKeyStats      = "newsfeed:stats"
)

type Service struct {
	store storage.Store
	cache *cache.Cache // optional, nil disables caching
}

func NewService(store storage.Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

// GetNews returns one page of active articles. Unrecognized sort values
// fall back to publishedAt descending.
func (s *Service) GetNews(ctx context.Context, f storage.Filter, sort storage.Sort, dir storage.Direction, page *pagination.OffsetRequest) (*dto.NewsPage, error) {
	page.Validate()
	sort, dir = normalizeSort(sort, dir)

	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	offset := (page.Page - 1) * page.Size
	articles, err := s.store.List(ctx, f, sort, dir, page.Size, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	items := make([]dto.Article, 0, len(articles))
	for _, a := range articles {
		items = append(items, dto.FromDomain(a))
	}

	result := pagination.NewOffsetResult(items, total, page.Page, page.Size)
	return &dto.NewsPage{
		Articles: result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.Size,
		HasMore:  result.HasMore,
	}, nil
}

// GetCategories lists the categories actually present among active
// articles, not the configured vocabulary.
func (s *Service) GetCategories(ctx context.Context) ([]dto.Facet, error) {
	var cached []dto.Facet
	if s.cacheGet(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	values, err := s.store.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	facets := make([]dto.Facet, 0, len(values))
	for _, v := range values {
		facets = append(facets, dto.Facet{
			ID:          v,
			Name:        v,
			DisplayName: stringsutil.Capitalize(v),
		})
	}

	s.cacheSet(ctx, cacheKeyCategories, facets)
	return facets, nil
}

// GetSources lists the sources actually present among active articles.
// A source keeps its stored display name, falling back to a capitalized
// slug when none exists.
func (s *Service) GetSources(ctx context.Context) ([]dto.Facet, error) {
	var cached []dto.Facet
	if s.cacheGet(ctx, cacheKeySources, &cached) {
		return cached, nil
	}

	values, err := s.store.DistinctSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	facets := make([]dto.Facet, 0, len(values))
	for _, v := range values {
		display := v.DisplayName
		if display == "" {
			display = stringsutil.Capitalize(v.Value)
		}
		facets = append(facets, dto.Facet{
			ID:          v.Value,
			Name:        v.Value,
			DisplayName: display,
		})
	}

	s.cacheSet(ctx, cacheKeySources, facets)
	return facets, nil
}

// GetStats reports feed-wide aggregates. LastUpdate comes from the crawl
// timestamp of the newest article regardless of is_active, unlike every
// other read here.
func (s *Service) GetStats(ctx context.Context) (*dto.NewsStats, error) {
	var cached dto.NewsStats
	if s.cacheGet(ctx, cacheKeyStats, &cached) {
		return &cached, nil
	}

	total, err := s.store.Count(ctx, storage.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	sources, err := s.store.DistinctSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	categories, err := s.store.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	lastUpdate, err := s.store.LastCrawledAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last crawl time: %w", err)
	}

	stats := dto.NewsStats{
		TotalArticles:   total,
		SourcesCount:    len(sources),
		CategoriesCount: len(categories),
		LastUpdate:      lastUpdate,
	}

	s.cacheSet(ctx, cacheKeyStats, stats)
	return &stats, nil
}

func normalizeSort(sort storage.Sort, dir storage.Direction) (storage.Sort, storage.Direction) {
	switch sort {
	case storage.SortPublishedAt, storage.SortImpact, storage.SortSentiment, storage.SortSource:
	default:
		return storage.SortPublishedAt, storage.Desc
	}

	if dir != storage.Asc && dir != storage.Desc {
		dir = storage.Desc
	}
	return sort, dir
}

func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, key, dest) == nil
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		slog.Warn("news: failed to update cache", "key", key, "error", err)
	}
}
