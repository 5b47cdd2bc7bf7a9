package v0_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"

	v0 "github.com/mcpbuilder/mcp-builder/internal/api/handlers/v0"
	"github.com/mcpbuilder/mcp-builder/internal/config"
)

func TestHealthEndpoint(t *testing.T) {
	testCases := []struct {
		name   string
		config *config.Config
	}{
		{
			name:   "returns health status with version",
			config: &config.Config{Version: "1.2.3"},
		},
		{
			name:   "returns health status without version",
			config: &config.Config{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
			v0.RegisterHealthEndpoint(api, tc.config, nil)

			req := httptest.NewRequest(http.MethodGet, "/v0/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			// Since Huma adds a $schema field, we'll check individual fields
			body := w.Body.String()
			assert.Contains(t, body, `"status":"healthy"`)
			assert.Contains(t, body, `"service":"mcp-builder-api"`)

			if tc.config.Version != "" {
				assert.Contains(t, body, `"version":"1.2.3"`)
			} else {
				assert.NotContains(t, body, `"version"`)
			}
		})
	}
}

func TestPingEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	v0.RegisterPingEndpoint(api, &config.Config{Version: "dev"})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v0/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pong":true`)
	assert.Contains(t, w.Body.String(), `"version":"dev"`)
}
