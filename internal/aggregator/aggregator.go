// Package aggregator runs the fan-out/merge/persist pipeline: every live
// source is fetched concurrently, results are merged, backfilled with
// sample data when empty, and deduplicated against the store by URL.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/source"
	"github.com/cryptopulse/newsfeed/internal/storage"
)

// DefaultSourceTimeout bounds each adapter fetch so one hung provider
// cannot stall the whole run.
const DefaultSourceTimeout = 15 * time.Second

type Aggregator struct {
	sources       []source.Source
	seed          *source.SampleGenerator
	store         storage.Store
	sourceTimeout time.Duration
}

type Option func(*Aggregator)

func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.sourceTimeout = d
	}
}

func New(store storage.Store, sources []source.Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources:       sources,
		seed:          source.NewSampleGenerator(),
		store:         store,
		sourceTimeout: DefaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one aggregation pass. Per-article persistence failures are
// logged and skipped; the run only fails as a whole when the store rejects
// every single article, which signals the store itself is down.
func (a *Aggregator) Run(ctx context.Context) error {
	fetched := a.fetchAll(ctx)

	if len(fetched) == 0 {
		slog.Warn("aggregator: all sources empty, seeding sample data")
		fetched = a.seed.Fetch(ctx)
	}

	var inserted, skipped, failed int
	for _, article := range fetched {
		switch err := a.persist(ctx, article); {
		case err == nil:
			inserted++
		case errors.Is(err, storage.ErrDuplicateURL):
			skipped++
		default:
			failed++
			slog.Error("aggregator: failed to persist article",
				"url", article.URL, "source", article.Source, "error", err)
		}
	}

	slog.Info("aggregator: run complete",
		"fetched", len(fetched), "inserted", inserted, "duplicates", skipped, "failed", failed)

	if failed > 0 && failed == len(fetched) {
		return fmt.Errorf("aggregation failed: store rejected all %d articles", failed)
	}
	return nil
}

func (a *Aggregator) fetchAll(ctx context.Context) []domain.Article {
	var (
		mu     sync.Mutex
		merged []domain.Article
		wg     sync.WaitGroup
	)

	for _, src := range a.sources {
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
			defer cancel()

			articles := src.Fetch(fetchCtx)

			mu.Lock()
			merged = append(merged, articles...)
			mu.Unlock()

			slog.Info("aggregator: source done", "source", src.Name(), "articles", len(articles))
		}(src)
	}
	wg.Wait()

	return merged
}

func (a *Aggregator) persist(ctx context.Context, article domain.Article) error {
	exists, err := a.store.ExistsByURL(ctx, article.URL)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if exists {
		return storage.ErrDuplicateURL
	}

	article.CrawledAt = time.Now().UTC()

	// Two concurrent runs can both pass the existence check; the unique
	// constraint then turns the loser's insert into ErrDuplicateURL.
	return a.store.Insert(ctx, article)
}
