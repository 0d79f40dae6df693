// Package classify derives categories, tags and heuristic scores from
// article text. Everything here is pure and deterministic: same input,
// same output, no I/O.
package classify

import (
	"strings"

	"github.com/cryptopulse/newsfeed/internal/domain"
)

// tagVocabulary is the fixed keyword list tag extraction matches against.
// Matches are substring matches on the lowercased title+content and keep
// vocabulary order.
var tagVocabulary = []string{
	"bitcoin", "btc", "ethereum", "eth", "solana", "sol",
	"xrp", "ripple", "cardano", "dogecoin", "binance", "coinbase",
	"defi", "nft", "stablecoin", "etf", "sec", "regulation",
	"mining", "staking", "wallet", "exchange", "blockchain",
	"web3", "altcoin",
}

// categoryKeywords holds ordered category checks. Order matters: the first
// group with a matching keyword wins, so text mentioning both "sec" and
// "yield" lands in regulation, not defi.
var categoryKeywords = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryRegulation, []string{"sec", "regulation", "regulatory", "lawsuit", "compliance", "government", "ban", "legal", "cftc"}},
	{domain.CategoryDefi, []string{"defi", "yield", "liquidity", "lending", "dex", "amm", "staking", "tvl"}},
	{domain.CategoryNft, []string{"nft", "opensea", "collectible", "digital art", "pfp"}},
	{domain.CategoryGaming, []string{"gaming", "play-to-earn", "p2e", "metaverse", "game"}},
	{domain.CategoryTechnology, []string{"blockchain", "upgrade", "layer 2", "scaling", "protocol", "network", "developer"}},
	{domain.CategoryMarket, []string{"price", "market", "trading", "rally", "bull", "bear", "crash", "etf", "all-time high"}},
}

const (
	defaultImpactScore = 5
	minImpactScore     = 1
	maxImpactScore     = 10
)

// Tags returns the subset of the tag vocabulary present in the combined
// lowercased title and content, in vocabulary order.
func Tags(title, content string) []string {
	text := strings.ToLower(title + " " + content)

	var tags []string
	for _, kw := range tagVocabulary {
		if strings.Contains(text, kw) {
			tags = append(tags, kw)
		}
	}
	return tags
}

// Categorize assigns exactly one category to the given text, falling back
// to market when nothing matches.
func Categorize(title, content string) domain.Category {
	text := strings.ToLower(title + " " + content)

	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}
	return domain.CategoryMarket
}

// SentimentScore maps a sentiment label onto [-1, 1]. Unrecognized labels
// map to 0, same as neutral.
func SentimentScore(s domain.Sentiment) float64 {
	switch s {
	case domain.SentimentPositive:
		return 0.7
	case domain.SentimentNegative:
		return -0.7
	default:
		return 0
	}
}

// ImpactFromVotes turns provider vote counts into a 1-10 impact score.
// Important votes weigh triple, positive double, negative votes subtract.
// No votes at all yields the default of 5.
func ImpactFromVotes(important, positive, negative int) float64 {
	total := important + positive + negative
	if total == 0 {
		return defaultImpactScore
	}

	score := float64(important*3+positive*2-negative) / float64(total) * 10
	if score < minImpactScore {
		return minImpactScore
	}
	if score > maxImpactScore {
		return maxImpactScore
	}
	return score
}
