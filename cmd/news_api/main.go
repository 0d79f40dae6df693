// Package main CryptoPulse News API
// @title CryptoPulse News API
// @version 1.0
// @description Aggregated crypto news feed with filtering, facets and stats
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cryptopulse/newsfeed/internal/aggregator"
	"github.com/cryptopulse/newsfeed/internal/cache"
	"github.com/cryptopulse/newsfeed/internal/config"
	"github.com/cryptopulse/newsfeed/internal/news"
	"github.com/cryptopulse/newsfeed/internal/ratelimit"
	"github.com/cryptopulse/newsfeed/internal/router"
	"github.com/cryptopulse/newsfeed/internal/server"
	"github.com/cryptopulse/newsfeed/internal/source"
	"github.com/cryptopulse/newsfeed/internal/storage/pg"
	"github.com/cryptopulse/newsfeed/internal/worker"
	"github.com/cryptopulse/newsfeed/pkg/config/env"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/news_api/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	srvCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appCfg := config.Load()
	if err := appCfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	bootCtx, cancel := contextWithStartupTimeout()
	defer cancel()

	pool, err := pg.NewConnectionPool(bootCtx, pg.PoolConfig{ConnStr: appCfg.Database.URL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewStore(pool)

	var facetCache *cache.Cache
	if appCfg.Redis.Addr != "" {
		facetCache = cache.New(cache.Config{
			Addr:     appCfg.Redis.Addr,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		})
		if err := facetCache.Ping(bootCtx); err != nil {
			slog.Warn("Redis unreachable, running without cache", "error", err)
			facetCache = nil
		}
	}

	limiter := ratelimit.New(appCfg.RateLimitInterval(ratelimit.DefaultInterval))
	sources := buildSources(appCfg, limiter)
	agg := aggregator.New(store, sources)

	s := server.New(srvCfg, pg.NewHealthChecker(pool)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	newsRouter := router.NewNewsRouter(s.Echo, news.NewService(store, facetCache), agg)
	newsRouter.Bind()

	if interval := appCfg.CrawlInterval(); interval > 0 {
		w := &worker.CrawlWorker{Aggregator: agg, Interval: interval}
		go func() {
			if err := w.Start(s.Context()); err != nil {
				slog.Error("Crawl worker stopped", "error", err)
			}
		}()
		slog.Info("Background crawl enabled", "interval", interval)
	}

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func contextWithStartupTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func buildSources(cfg config.Config, limiter *ratelimit.Limiter) []source.Source {
	rss := source.NewRSSSource(cfg.Providers.RSSFeedURL, limiter)
	return []source.Source{
		source.NewCryptoPanicSource(cfg.Providers.CryptoPanicToken, "", limiter),
		source.NewNewsAPISource(cfg.Providers.NewsAPIKey, "", limiter, rss),
		source.NewCryptoCompareSource(cfg.Providers.CryptoCompareKey, "", limiter),
	}
}
