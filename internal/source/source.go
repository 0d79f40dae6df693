// Package source holds one adapter per external news provider. Adapters
// share a single contract: Fetch returns whatever articles it could get
// and never an error. Failures are logged and answered with the adapter's
// fallback output, so one dead provider can never sink an aggregation run.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/cryptopulse/newsfeed/internal/classify"
	"github.com/cryptopulse/newsfeed/internal/domain"
)

const defaultHTTPTimeout = 10 * time.Second

// defaultImpact applies when a provider carries no engagement signal,
// matching classify.ImpactFromVotes with zero votes.
const defaultImpact = 5

type Source interface {
	// Name is the adapter's service key, also stored as article source slug.
	Name() string
	Fetch(ctx context.Context) []domain.Article
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// enrich runs the classifier over a mapped article and fills the derived
// fields every adapter shares.
func enrich(article domain.Article) domain.Article {
	article.Category = classify.Categorize(article.Title, article.Content)
	article.Tags = classify.Tags(article.Title, article.Content)
	article.SentimentScore = classify.SentimentScore(article.Sentiment)
	article.IsActive = true
	return article
}

// parsePublished tries the timestamp layouts the providers are known to
// emit. A date we cannot parse falls back to now rather than dropping the
// article.
func parsePublished(value string) time.Time {
	layouts := []string{
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		"2006-01-02T15:04:05Z",
		"Mon, 2 Jan 2006 15:04:05 -0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
