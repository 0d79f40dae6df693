package aggregator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
	"github.com/cryptopulse/newsfeed/internal/source"
	"github.com/cryptopulse/newsfeed/internal/storage"
	"github.com/cryptopulse/newsfeed/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name     string
	articles []domain.Article
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context) []domain.Article {
	return s.articles
}

func article(url string) domain.Article {
	return domain.Article{
		Title:       "Article at " + url,
		URL:         url,
		Source:      "stub",
		SourceName:  "Stub",
		Category:    domain.CategoryMarket,
		ImpactScore: 5,
		PublishedAt: time.Now().UTC(),
		IsActive:    true,
	}
}

func TestRun_PersistsFetchedArticles(t *testing.T) {
	store := in_mem.NewStore()
	agg := New(store, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{article("https://x/1"), article("https://x/2")}},
		&stubSource{name: "b", articles: []domain.Article{article("https://x/3")}},
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRun_SeedsSampleDataWhenAllSourcesEmpty(t *testing.T) {
	store := in_mem.NewStore()
	agg := New(store, []source.Source{
		&stubSource{name: "a"},
		&stubSource{name: "b"},
		&stubSource{name: "c"},
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	sources, err := store.DistinctSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "sample", sources[0].Value)
}

func TestRun_SkipsDuplicateURLs(t *testing.T) {
	store := in_mem.NewStore()
	require.NoError(t, store.Insert(context.Background(), article("https://x/1")))

	agg := New(store, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{article("https://x/1"), article("https://x/2")}},
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRun_DuplicatesAcrossSourcesStoredOnce(t *testing.T) {
	store := in_mem.NewStore()
	agg := New(store, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{article("https://x/shared")}},
		&stubSource{name: "b", articles: []domain.Article{article("https://x/shared")}},
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// failingStore rejects every write, simulating an unreachable database.
type failingStore struct {
	in_mem.Store
}

func (s *failingStore) ExistsByURL(_ context.Context, _ string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRun_ReturnsErrorWhenStoreRejectsEverything(t *testing.T) {
	agg := New(&failingStore{}, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{article("https://x/1")}},
	})

	err := agg.Run(context.Background())

	assert.Error(t, err)
}

// flakyStore fails a fixed set of URLs and accepts the rest.
type flakyStore struct {
	*in_mem.Store
	failURLs map[string]struct{}
}

func (s *flakyStore) Insert(ctx context.Context, a domain.Article) error {
	if _, ok := s.failURLs[a.URL]; ok {
		return errors.New("write failed")
	}
	return s.Store.Insert(ctx, a)
}

func TestRun_OneBadArticleDoesNotAbortBatch(t *testing.T) {
	store := &flakyStore{
		Store:    in_mem.NewStore(),
		failURLs: map[string]struct{}{"https://x/2": {}},
	}
	agg := New(store, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{
			article("https://x/1"), article("https://x/2"), article("https://x/3"),
		}},
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

// The no-credential path end to end: a live feed of three items, NewsAPI
// delegating to the same feed for lack of a key, and dedupe collapsing the
// two fetches into exactly three stored articles.
func TestRun_FeedWithoutCredentials(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>CoinTelegraph</title>
<item>
  <title><![CDATA[Bitcoin price rally continues]]></title>
  <link>https://example.com/articles/btc-rally</link>
  <description><![CDATA[Bitcoin extended its rally as volume surged.]]></description>
  <pubDate>Mon, 12 Aug 2024 10:00:00 +0000</pubDate>
</item>
<item>
  <title><![CDATA[SEC opens new crypto inquiry]]></title>
  <link>https://example.com/articles/sec-inquiry</link>
  <description><![CDATA[Regulators asked exchanges for records.]]></description>
  <pubDate>Mon, 12 Aug 2024 09:00:00 +0000</pubDate>
</item>
<item>
  <title><![CDATA[NFT volumes tick up]]></title>
  <link>https://example.com/articles/nft-volumes</link>
  <description><![CDATA[Collectible sales rose for a third week.]]></description>
  <pubDate>Mon, 12 Aug 2024 08:00:00 +0000</pubDate>
</item>
</channel>
</rss>`))
	}))
	defer feed.Close()

	limiter := ratelimit.New(time.Millisecond)
	rss := source.NewRSSSource(feed.URL, limiter)
	store := in_mem.NewStore()
	agg := New(store, []source.Source{
		rss,
		source.NewNewsAPISource("", "", limiter, rss),
	})

	require.NoError(t, agg.Run(context.Background()))

	count, err := store.Count(context.Background(), storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	articles, err := store.List(context.Background(), storage.Filter{}, storage.SortPublishedAt, storage.Desc, 10, 0)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	for _, a := range articles {
		assert.Equal(t, "rss", a.Source)
		assert.Equal(t, "CoinTelegraph", a.SourceName)
		assert.Equal(t, float64(6), a.ImpactScore)
	}
	assert.Equal(t, domain.CategoryMarket, articles[0].Category)
	assert.Equal(t, domain.CategoryRegulation, articles[1].Category)
	assert.Equal(t, domain.CategoryNft, articles[2].Category)
}

func TestRun_SetsCrawledAt(t *testing.T) {
	store := in_mem.NewStore()
	before := time.Now().UTC()

	agg := New(store, []source.Source{
		&stubSource{name: "a", articles: []domain.Article{article("https://x/1")}},
	})
	require.NoError(t, agg.Run(context.Background()))

	last, err := store.LastCrawledAt(context.Background())
	require.NoError(t, err)
	assert.False(t, last.Before(before))
}
