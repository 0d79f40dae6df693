package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgserver "github.com/cryptopulse/newsfeed/pkg/server"
	"github.com/stretchr/testify/assert"
)

type downChecker struct{}

func (downChecker) Healthy(_ context.Context) bool { return false }

func testConfig() *Config {
	return &Config{Port: "8080", CorsOrigins: []string{"*"}}
}

func TestHealthEndpoint_Healthy(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")
	defer s.stop()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHealthEndpoint_Unhealthy(t *testing.T) {
	s := New(testConfig(), downChecker{}).
		SetupHealthChecks("/health")
	defer s.stop()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
