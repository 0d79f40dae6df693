package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cryptopulse/newsfeed/internal/aggregator"
	"github.com/cryptopulse/newsfeed/internal/config"
	"github.com/cryptopulse/newsfeed/internal/news"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
	"github.com/cryptopulse/newsfeed/internal/source"
	"github.com/cryptopulse/newsfeed/internal/storage/pg"
	"github.com/cryptopulse/newsfeed/internal/worker"
	"github.com/cryptopulse/newsfeed/pkg/config/env"
	"github.com/spf13/cobra"
)

var (
	once     bool
	interval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "crawler",
	Short: "CryptoPulse news crawler",
	Long:  "Fetches crypto news from all configured sources, classifies it and stores new articles.",
	RunE:  run,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&once, "once", false, "run a single aggregation pass and exit")
	rootCmd.Flags().DurationVar(&interval, "interval", 10*time.Minute, "delay between aggregation passes")
}

func run(cmd *cobra.Command, _ []string) error {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/crawler/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cmd.Flags().Changed("interval") {
		interval = cfg.CrawlInterval()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.Database.URL})
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pg.NewStore(pool)
	limiter := ratelimit.New(cfg.RateLimitInterval(ratelimit.DefaultInterval))

	rss := source.NewRSSSource(cfg.Providers.RSSFeedURL, limiter)
	agg := aggregator.New(store, []source.Source{
		source.NewCryptoPanicSource(cfg.Providers.CryptoPanicToken, "", limiter),
		source.NewNewsAPISource(cfg.Providers.NewsAPIKey, "", limiter, rss),
		source.NewCryptoCompareSource(cfg.Providers.CryptoCompareKey, "", limiter),
	})

	if once {
		if err := agg.Run(ctx); err != nil {
			return err
		}
		return logStats(ctx, store)
	}

	w := &worker.CrawlWorker{Aggregator: agg, Interval: interval}
	return w.Start(ctx)
}

func logStats(ctx context.Context, store *pg.Store) error {
	stats, err := news.NewService(store, nil).GetStats(ctx)
	if err != nil {
		return err
	}
	slog.Info("crawler: store state",
		"totalArticles", stats.TotalArticles,
		"sources", stats.SourcesCount,
		"categories", stats.CategoriesCount,
		"lastUpdate", stats.LastUpdate,
	)
	return nil
}
