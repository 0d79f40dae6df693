// Package in_mem holds an in-memory Store used by tests and DB-less local
// runs. It mirrors the postgres implementation's query semantics.
package in_mem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/storage"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	articles []domain.Article
	byURL    map[string]struct{}
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		byURL: make(map[string]struct{}),
	}
}

func (s *Store) ExistsByURL(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byURL[url]
	return ok, nil
}

func (s *Store) Insert(_ context.Context, article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byURL[article.URL]; ok {
		return storage.ErrDuplicateURL
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CrawledAt.IsZero() {
		article.CrawledAt = time.Now().UTC()
	}

	s.articles = append(s.articles, article)
	s.byURL[article.URL] = struct{}{}
	return nil
}

func (s *Store) List(_ context.Context, f storage.Filter, sortBy storage.Sort, dir storage.Direction, limit, offset int) ([]domain.Article, error) {
	s.mu.RLock()
	matched := s.filterActive(f)
	s.mu.RUnlock()

	sortArticles(matched, sortBy, dir)

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *Store) Count(_ context.Context, f storage.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filterActive(f))), nil
}

func (s *Store) DistinctCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var values []string
	for _, a := range s.articles {
		if !a.IsActive {
			continue
		}
		if _, ok := seen[string(a.Category)]; ok {
			continue
		}
		seen[string(a.Category)] = struct{}{}
		values = append(values, string(a.Category))
	}
	sort.Strings(values)
	return values, nil
}

func (s *Store) DistinctSources(_ context.Context) ([]storage.Facet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var facets []storage.Facet
	for _, a := range s.articles {
		if !a.IsActive {
			continue
		}
		if _, ok := seen[a.Source]; ok {
			continue
		}
		seen[a.Source] = struct{}{}
		facets = append(facets, storage.Facet{Value: a.Source, DisplayName: a.SourceName})
	}
	sort.Slice(facets, func(i, j int) bool { return facets[i].Value < facets[j].Value })
	return facets, nil
}

func (s *Store) LastCrawledAt(_ context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last time.Time
	for _, a := range s.articles {
		// inactive articles count here on purpose
		if a.CrawledAt.After(last) {
			last = a.CrawledAt
		}
	}
	return last, nil
}

func (s *Store) filterActive(f storage.Filter) []domain.Article {
	var matched []domain.Article
	for _, a := range s.articles {
		if !a.IsActive {
			continue
		}
		if len(f.Sources) > 0 && !contains(f.Sources, a.Source) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, string(a.Category)) {
			continue
		}
		if f.Sentiment != nil && string(a.Sentiment) != *f.Sentiment {
			continue
		}
		if f.DateFrom != nil && a.PublishedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && a.PublishedAt.After(*f.DateTo) {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(a.Title), needle) &&
				!strings.Contains(strings.ToLower(a.Summary), needle) {
				continue
			}
		}
		matched = append(matched, a)
	}
	return matched
}

func sortArticles(articles []domain.Article, sortBy storage.Sort, dir storage.Direction) {
	less := func(a, b domain.Article) bool {
		switch sortBy {
		case storage.SortImpact:
			return a.ImpactScore < b.ImpactScore
		case storage.SortSentiment:
			return a.SentimentScore < b.SentimentScore
		case storage.SortSource:
			return a.Source < b.Source
		default:
			return a.PublishedAt.Before(b.PublishedAt)
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if dir == storage.Asc {
			return less(articles[i], articles[j])
		}
		return less(articles[j], articles[i])
	})
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
