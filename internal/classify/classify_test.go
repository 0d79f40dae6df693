package classify

import (
	"testing"

	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	tags := Tags("Bitcoin ETF approved", "The SEC signed off on a spot Bitcoin ETF.")

	assert.Equal(t, []string{"bitcoin", "etf", "sec"}, tags)
}

func TestTags_NoMatch(t *testing.T) {
	assert.Empty(t, Tags("Weather report", "Sunny with a chance of rain"))
}

func TestTags_VocabularyOrder(t *testing.T) {
	// Matches follow vocabulary order, not appearance order in the text.
	tags := Tags("SEC looks at Ethereum", "bitcoin mentioned last")

	assert.Equal(t, []string{"bitcoin", "ethereum", "eth", "sec"}, tags)
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// Regulation checks run before defi, so a text with both keywords
	// classifies as regulation.
	got := Categorize("SEC probes yield farming platforms", "")

	assert.Equal(t, domain.CategoryRegulation, got)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    domain.Category
	}{
		{"regulation", "New SEC lawsuit filed", "", domain.CategoryRegulation},
		{"defi", "Liquidity pools hit record TVL", "", domain.CategoryDefi},
		{"nft", "OpenSea volume doubles", "", domain.CategoryNft},
		{"gaming", "Play-to-earn economy grows", "", domain.CategoryGaming},
		{"technology", "Layer 2 scaling milestone", "", domain.CategoryTechnology},
		{"market", "Prices rally across the board", "", domain.CategoryMarket},
		{"default is market", "Nothing crypto here", "plain text", domain.CategoryMarket},
		{"content is considered", "Headline", "a new lending protocol launched", domain.CategoryDefi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.title, tt.content))
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	title, content := "Bitcoin staking yields drop as SEC weighs rules", "full body text"

	first := Categorize(title, content)
	firstTags := Tags(title, content)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Categorize(title, content))
		assert.Equal(t, firstTags, Tags(title, content))
	}
}

func TestSentimentScore(t *testing.T) {
	assert.Equal(t, 0.7, SentimentScore(domain.SentimentPositive))
	assert.Equal(t, -0.7, SentimentScore(domain.SentimentNegative))
	assert.Equal(t, 0.0, SentimentScore(domain.SentimentNeutral))
	assert.Equal(t, 0.0, SentimentScore(domain.Sentiment("bullish")))
	assert.Equal(t, 0.0, SentimentScore(domain.SentimentNone))
}

func TestImpactFromVotes(t *testing.T) {
	tests := []struct {
		name                          string
		important, positive, negative int
		want                          float64
	}{
		{"no votes defaults to 5", 0, 0, 0, 5},
		{"all important clamps to 10", 10, 0, 0, 10},
		{"all negative clamps to 1", 0, 0, 10, 1},
		{"mixed", 1, 1, 0, 10},
		{"balanced", 0, 1, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImpactFromVotes(tt.important, tt.positive, tt.negative))
		})
	}
}

func TestImpactFromVotes_AlwaysInRange(t *testing.T) {
	for i := 0; i <= 5; i++ {
		for p := 0; p <= 5; p++ {
			for n := 0; n <= 5; n++ {
				got := ImpactFromVotes(i, p, n)
				assert.GreaterOrEqual(t, got, 1.0, "votes %d/%d/%d", i, p, n)
				assert.LessOrEqual(t, got, 10.0, "votes %d/%d/%d", i, p, n)
			}
		}
	}
}
