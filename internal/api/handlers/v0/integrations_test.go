package v0_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v0 "github.com/mcpbuilder/mcp-builder/internal/api/handlers/v0"
	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
	apiv0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

var testTime = time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC)

func newIntegrationsAPI(svc *MockIntegrationService) *http.ServeMux {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	v0.RegisterIntegrationsEndpoints(api, svc)
	return mux
}

func serve(mux http.Handler, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestListIntegrations(t *testing.T) {
	published := true
	weather := model.NewIntegration("1", testTime)
	weather.Name = "Weather Assistant"
	github := model.NewIntegration("2", testTime)
	github.Name = "GitHub Helper"

	testCases := []struct {
		name           string
		query          string
		setupMocks     func(*MockIntegrationService)
		expectedStatus int
		expectedIDs    []string
		expectedMeta   *apiv0.Metadata
		expectedError  string
	}{
		{
			name: "successful list with default parameters",
			setupMocks: func(svc *MockIntegrationService) {
				svc.On("List", mock.Anything, &database.IntegrationFilter{}, "", 30).
					Return([]model.Integration{weather, github}, "", nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"1", "2"},
		},
		{
			name:  "filters, limit and next cursor",
			query: "?published=true&search=git&limit=1",
			setupMocks: func(svc *MockIntegrationService) {
				filter := &database.IntegrationFilter{Published: &published, Search: "git"}
				svc.On("List", mock.Anything, filter, "", 1).
					Return([]model.Integration{github}, "2", nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"2"},
			expectedMeta:   &apiv0.Metadata{NextCursor: "2", Count: 1},
		},
		{
			name:           "invalid published parameter",
			query:          "?published=maybe",
			setupMocks:     func(_ *MockIntegrationService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid published parameter",
		},
		{
			name:           "limit below minimum",
			query:          "?limit=0",
			setupMocks:     func(_ *MockIntegrationService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "validation failed",
		},
		{
			name:  "unknown cursor",
			query: "?cursor=missing",
			setupMocks: func(svc *MockIntegrationService) {
				svc.On("List", mock.Anything, &database.IntegrationFilter{}, "missing", 30).
					Return([]model.Integration(nil), "", fmt.Errorf("%w: unknown cursor", database.ErrInvalidInput))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown cursor",
		},
		{
			name: "service error",
			setupMocks: func(svc *MockIntegrationService) {
				svc.On("List", mock.Anything, &database.IntegrationFilter{}, "", 30).
					Return([]model.Integration(nil), "", errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to list integrations",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockIntegrationService)
			tc.setupMocks(svc)

			w := serve(newIntegrationsAPI(svc), http.MethodGet, "/v0/integrations"+tc.query, "")
			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())

			if tc.expectedStatus == http.StatusOK {
				var resp apiv0.IntegrationListResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

				ids := make([]string, len(resp.Integrations))
				for i, integration := range resp.Integrations {
					ids[i] = integration.ID
				}
				assert.Equal(t, tc.expectedIDs, ids)
				assert.Equal(t, tc.expectedMeta, resp.Metadata)
			} else if tc.expectedError != "" {
				assert.Contains(t, w.Body.String(), tc.expectedError)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestGetIntegration(t *testing.T) {
	weather := model.NewIntegration("1", testTime)
	weather.Name = "Weather Assistant"

	svc := new(MockIntegrationService)
	svc.On("GetByID", mock.Anything, "1").Return(&weather, nil)
	svc.On("GetByID", mock.Anything, "404").Return(nil, fmt.Errorf("lookup: %w", database.ErrNotFound))
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodGet, "/v0/integrations/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Integration
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, weather, got)

	w = serve(mux, http.MethodGet, "/v0/integrations/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Integration not found")
}

func TestGetUsageStats(t *testing.T) {
	svc := new(MockIntegrationService)
	svc.On("UsageStats", mock.Anything).Return(&apiv0.UsageStats{TotalRequests: 15420, SuccessRate: 98.5}, nil)

	w := serve(newIntegrationsAPI(svc), http.MethodGet, "/v0/integrations/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats apiv0.UsageStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 15420, stats.TotalRequests)
	assert.InDelta(t, 98.5, stats.SuccessRate, 0.001)
}

func TestCreateIntegration(t *testing.T) {
	name := "Created"
	created := model.NewIntegration("new", testTime)
	created.Name = name

	svc := new(MockIntegrationService)
	svc.On("Create", mock.Anything, model.IntegrationPatch{Name: &name}).Return(&created, nil)

	w := serve(newIntegrationsAPI(svc), http.MethodPost, "/v0/integrations", `{"name":"Created"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got model.Integration
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, "Created", got.Name)
	svc.AssertExpectations(t)
}

func TestUpdateIntegration(t *testing.T) {
	description := "changed"
	updated := model.NewIntegration("1", testTime)
	updated.Description = description

	svc := new(MockIntegrationService)
	svc.On("Update", mock.Anything, "1", model.IntegrationPatch{Description: &description}).Return(&updated, nil)
	svc.On("Update", mock.Anything, "nope", mock.Anything).Return(nil, database.ErrNotFound)
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodPatch, "/v0/integrations/1", `{"description":"changed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"description":"changed"`)

	w = serve(mux, http.MethodPatch, "/v0/integrations/nope", `{"description":"changed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIntegration(t *testing.T) {
	svc := new(MockIntegrationService)
	svc.On("Delete", mock.Anything, "1").Return(nil)
	svc.On("Delete", mock.Anything, "nope").Return(database.ErrNotFound)
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodDelete, "/v0/integrations/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve(mux, http.MethodDelete, "/v0/integrations/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublishIntegration(t *testing.T) {
	broken := model.NewIntegration("bad", testTime)
	broken.Tools = []model.MCPTool{{
		ID: "t", Name: "t", APIID: "missing", Method: model.MethodGet, Endpoint: "/x",
	}}
	invalid := validators.ValidateIntegration(&broken)
	require.Error(t, invalid)

	published := model.NewIntegration("1", testTime)
	published.Published = true

	svc := new(MockIntegrationService)
	svc.On("Publish", mock.Anything, "1").Return(&published, nil)
	svc.On("Publish", mock.Anything, "bad").Return(nil, invalid)
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodPost, "/v0/integrations/1/publish", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"published":true`)

	w = serve(mux, http.MethodPost, "/v0/integrations/bad/publish", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Integration is invalid")
	assert.Contains(t, w.Body.String(), "unknown API")
}

func TestForkIntegration(t *testing.T) {
	forked := model.NewIntegration("1700000000000-abcdef12", testTime)
	forked.Name = "Weather Assistant" + model.ForkSuffix

	svc := new(MockIntegrationService)
	svc.On("Fork", mock.Anything, "1").Return(&forked, nil)

	w := serve(newIntegrationsAPI(svc), http.MethodPost, "/v0/integrations/1/fork", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Weather Assistant (Fork)"`)
}

func TestExecuteIntegration(t *testing.T) {
	result := &apiv0.ExecutionResult{
		Success:       true,
		IntegrationID: "1",
		Query:         "weather in Paris",
		Steps:         []apiv0.ExecutionStep{{Step: 1, Action: "Parse query", Status: "completed", DurationMS: 120}},
		TokensUsed:    1250,
		Cost:          0.0025,
		ExecutedAt:    testTime,
	}

	svc := new(MockIntegrationService)
	svc.On("Execute", mock.Anything, "1", "weather in Paris").Return(result, nil)
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodPost, "/v0/integrations/1/execute", `{"query":"weather in Paris"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got apiv0.ExecutionResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, *result, got)

	w = serve(mux, http.MethodPost, "/v0/integrations/1/execute", `{"query":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestValidateIntegration(t *testing.T) {
	valid := model.NewIntegration("ok", testTime)
	broken := model.NewIntegration("bad", testTime)
	broken.Version = "latest"

	svc := new(MockIntegrationService)
	svc.On("GetByID", mock.Anything, "ok").Return(&valid, nil)
	svc.On("GetByID", mock.Anything, "bad").Return(&broken, nil)
	mux := newIntegrationsAPI(svc)

	w := serve(mux, http.MethodPost, "/v0/integrations/ok/validate", "")
	require.Equal(t, http.StatusOK, w.Code)
	var result apiv0.ValidationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	w = serve(mux, http.MethodPost, "/v0/integrations/bad/validate", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "semantic version")
}
