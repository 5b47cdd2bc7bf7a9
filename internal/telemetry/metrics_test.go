package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

func TestInitMetrics(t *testing.T) {
	shutdown, metrics, err := telemetry.InitMetrics("test")
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx := context.Background()
	metrics.Up.Record(ctx, 1)
	metrics.DraftsSaved.Add(ctx, 2)
	metrics.Requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", http.MethodGet),
		attribute.String("path", "/v0/integrations"),
		attribute.Int("status_code", http.StatusOK),
	))

	w := httptest.NewRecorder()
	metrics.PrometheusHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "mcp_builder_http_requests_total")
	assert.Contains(t, body, "mcp_builder_drafts_saved_total")
	assert.Contains(t, body, "mcp_builder_service_up")
	assert.Contains(t, body, `path="/v0/integrations"`)
}
