package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  url: postgres://file-host/newsfeed
providers:
  newsApiKey: from-file
  rateLimitInterval: 2s
crawler:
  interval: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("NEWSFEED_CONFIG", path)
	t.Setenv("DATABASE_URL", "postgres://env-host/newsfeed")

	cfg := Load()

	assert.Equal(t, "postgres://env-host/newsfeed", cfg.Database.URL)
	assert.Equal(t, "from-file", cfg.Providers.NewsAPIKey)
	assert.Equal(t, 2*time.Second, cfg.RateLimitInterval(time.Second))
	assert.Equal(t, 15*time.Minute, cfg.CrawlInterval())
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("NEWSFEED_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://env-only/newsfeed")
	t.Setenv("CRYPTOPANIC_AUTH_TOKEN", "tok")

	cfg := Load()

	assert.Equal(t, "postgres://env-only/newsfeed", cfg.Database.URL)
	assert.Equal(t, "tok", cfg.Providers.CryptoPanicToken)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	var cfg Config

	assert.Error(t, cfg.Validate())
}

func TestDurationDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, time.Second, cfg.RateLimitInterval(time.Second))
	assert.Equal(t, time.Duration(0), cfg.CrawlInterval())

	cfg.Providers.RateLimitInterval = "garbage"
	assert.Equal(t, time.Second, cfg.RateLimitInterval(time.Second))
}
