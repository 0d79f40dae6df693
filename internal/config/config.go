// Package config loads application settings from an optional YAML file
// with environment-variable overrides. Provider credentials only ever come
// from the environment; their absence is not an error, it just switches
// the affected adapter onto its fallback chain.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "NEWSFEED_CONFIG"

	databaseURLEnv      = "DATABASE_URL"
	redisAddrEnv        = "REDIS_ADDR"
	redisPasswordEnv    = "REDIS_PASSWORD"
	cryptoPanicTokenEnv = "CRYPTOPANIC_AUTH_TOKEN"
	newsAPIKeyEnv       = "NEWSAPI_KEY"
	cryptoCompareKeyEnv = "CRYPTOCOMPARE_API_KEY"
	rssFeedURLEnv       = "RSS_FEED_URL"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Providers ProvidersConfig `yaml:"providers"`
	Crawler   CrawlerConfig   `yaml:"crawler"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig is optional; an empty Addr disables the facet/stats cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ProvidersConfig struct {
	CryptoPanicToken  string `yaml:"cryptoPanicToken"`
	NewsAPIKey        string `yaml:"newsApiKey"`
	CryptoCompareKey  string `yaml:"cryptoCompareKey"`
	RSSFeedURL        string `yaml:"rssFeedUrl"`
	RateLimitInterval string `yaml:"rateLimitInterval"` // duration string, e.g. "1s"
}

type CrawlerConfig struct {
	Interval string `yaml:"interval"` // duration string, e.g. "10m"; empty disables
}

// Load reads YAML configuration if NEWSFEED_CONFIG points at a file, then
// applies environment overrides.
func Load() Config {
	var cfg Config

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("config: cannot read file, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			slog.Warn("config: cannot parse file, using defaults", "path", path, "error", err)
			cfg = Config{}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseURLEnv); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(redisPasswordEnv); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv(cryptoPanicTokenEnv); v != "" {
		c.Providers.CryptoPanicToken = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Providers.NewsAPIKey = v
	}
	if v := os.Getenv(cryptoCompareKeyEnv); v != "" {
		c.Providers.CryptoCompareKey = v
	}
	if v := os.Getenv(rssFeedURLEnv); v != "" {
		c.Providers.RSSFeedURL = v
	}
}

func (c Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (set %s)", databaseURLEnv)
	}
	return nil
}

// RateLimitInterval parses the configured limiter interval, defaulting on
// empty or malformed values.
func (c Config) RateLimitInterval(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(c.Providers.RateLimitInterval)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// CrawlInterval parses the crawler interval; zero means disabled.
func (c Config) CrawlInterval() time.Duration {
	d, err := time.ParseDuration(c.Crawler.Interval)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
