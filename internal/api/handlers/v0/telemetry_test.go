package v0_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/api/router"
	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/internal/service"
	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

func TestPrometheusHandler(t *testing.T) {
	shutdownTelemetry, metrics, err := telemetry.InitMetrics("dev")
	require.NoError(t, err)

	cfg := &config.Config{Version: "dev"}
	mux := http.NewServeMux()
	router.NewHumaAPI(cfg, router.Services{
		Integrations: service.NewFakeIntegrationService(),
		Sessions:     store.NewSessions(),
		Drafts:       persistence.NewLocalStore(persistence.NewMemoryStorage(0), zap.NewNop()),
	}, mux, metrics)

	req := httptest.NewRequest(http.MethodGet, "/v0/integrations/1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v0/integrations/missing", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	// shutdown metrics provider
	_ = shutdownTelemetry(context.Background())

	assert.Equal(t, http.StatusOK, w.Code, "Expected status OK for /metrics endpoint")

	body := w.Body.String()
	assert.Contains(t, body, "mcp_builder_http_request_duration_bucket")
	assert.Contains(t, body, "mcp_builder_http_requests_total")
	assert.Contains(t, body, "mcp_builder_http_errors_total")
	assert.Contains(t, body, `path="/v0/integrations/{id}"`)
}

func TestSwaggerUI(t *testing.T) {
	mux := http.NewServeMux()
	router.NewHumaAPI(&config.Config{Version: "dev"}, router.Services{
		Integrations: service.NewFakeIntegrationService(),
		Sessions:     store.NewSessions(),
		Drafts:       persistence.NewLocalStore(nil, nil),
	}, mux, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v0/swagger/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/v0/swagger/index.html", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v0/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"MCP Builder API"`)
	assert.Contains(t, w.Body.String(), "/v0/sessions/{id}/tools/draft")
}
