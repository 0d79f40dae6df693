package source

import (
	"context"
	"time"

	"github.com/cryptopulse/newsfeed/internal/domain"
)

// SampleGenerator emits a fixed set of illustrative articles. It backs two
// fallback chains (curated API without a credential, RSS fetch failure) and
// seeds the feed when every live source comes back empty, so the UI never
// renders an empty list.
type SampleGenerator struct{}

func NewSampleGenerator() *SampleGenerator {
	return &SampleGenerator{}
}

func (g *SampleGenerator) Name() string {
	return "sample"
}

func (g *SampleGenerator) Fetch(_ context.Context) []domain.Article {
	now := time.Now().UTC()

	seeds := []domain.Article{
		{
			Title:       "Bitcoin Breaks Above Key Resistance as ETF Inflows Accelerate",
			Summary:     "Spot ETF demand pushed Bitcoin past a level traders watched for weeks.",
			Content:     "Bitcoin rallied after sustained ETF inflows, with trading volume climbing across major exchanges.",
			URL:         "https://news.example.com/sample/bitcoin-etf-inflows",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentPositive,
			ImpactScore: 8,
			PublishedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:       "SEC Delays Decision on Ethereum Staking Products",
			Summary:     "The regulator extended its review window for staking-based offerings.",
			Content:     "The SEC pushed back its ruling on Ethereum staking products, citing the need for further regulation review.",
			URL:         "https://news.example.com/sample/sec-eth-staking-delay",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentNegative,
			ImpactScore: 7,
			PublishedAt: now.Add(-5 * time.Hour),
		},
		{
			Title:       "DeFi Lending Protocol Reports Record Liquidity",
			Summary:     "Total value locked reached a new high this quarter.",
			Content:     "A leading DeFi lending protocol reported record liquidity as yield seekers returned to on-chain markets.",
			URL:         "https://news.example.com/sample/defi-lending-record",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentPositive,
			ImpactScore: 6,
			PublishedAt: now.Add(-8 * time.Hour),
		},
		{
			Title:       "Major NFT Marketplace Rolls Out Creator Royalty Tools",
			Summary:     "New controls let collections enforce royalties on secondary sales.",
			Content:     "The NFT marketplace shipped royalty tooling aimed at winning back creators after months of fee wars.",
			URL:         "https://news.example.com/sample/nft-royalty-tools",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentNeutral,
			ImpactScore: 5,
			PublishedAt: now.Add(-12 * time.Hour),
		},
		{
			Title:       "Layer 2 Network Completes Major Scaling Upgrade",
			Summary:     "Fees dropped sharply after the network upgrade went live.",
			Content:     "The blockchain's layer 2 network completed a long-awaited scaling upgrade, cutting transaction fees for developers.",
			URL:         "https://news.example.com/sample/l2-scaling-upgrade",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentPositive,
			ImpactScore: 6,
			PublishedAt: now.Add(-18 * time.Hour),
		},
		{
			Title:       "Play-to-Earn Game Studio Raises New Funding Round",
			Summary:     "Investors backed the gaming studio despite a cooler token market.",
			Content:     "A play-to-earn gaming studio closed a fresh funding round to expand its metaverse title lineup.",
			URL:         "https://news.example.com/sample/p2e-funding-round",
			Source:      "sample",
			SourceName:  "CryptoPulse Samples",
			Sentiment:   domain.SentimentNeutral,
			ImpactScore: 4,
			PublishedAt: now.Add(-24 * time.Hour),
		},
	}

	articles := make([]domain.Article, 0, len(seeds))
	for _, seed := range seeds {
		articles = append(articles, enrich(seed))
	}
	return articles
}
