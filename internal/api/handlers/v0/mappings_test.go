package v0_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"

	v0 "github.com/mcpbuilder/mcp-builder/internal/api/handlers/v0"
)

func TestPreviewMapping(t *testing.T) {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	v0.RegisterMappingsEndpoints(api)

	testCases := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "extracts success path",
			body:           `{"mapping":{"successPath":"main.temp"},"response":{"main":{"temp":21.5}}}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":21.5`,
		},
		{
			name:           "identity path returns the whole response",
			body:           `{"mapping":{"successPath":"@"},"response":[1,2]}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":[1,2]`,
		},
		{
			name:           "return-null policy on a miss",
			body:           `{"mapping":{"successPath":"data","errorHandling":"return-null"},"response":{"error":"x"}}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"result":null`,
		},
		{
			name:           "throw policy on a miss",
			body:           `{"mapping":{"successPath":"data","errorHandling":"throw"},"response":{"error":"x"}}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "success path matched nothing",
		},
		{
			name:           "invalid path",
			body:           `{"mapping":{"successPath":"a[["},"response":{}}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid success path",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(mux, http.MethodPost, "/v0/mappings/preview", tc.body)
			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tc.expectedBody)
		})
	}
}
