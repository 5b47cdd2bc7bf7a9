package database_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	v0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

var seedTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestReadSeedFile_LocalFile(t *testing.T) {
	seed := database.ExampleIntegrations(seedTime)

	invalid := model.NewIntegration("broken", seedTime)
	invalid.Version = "not-a-version"
	seed = append(seed, invalid)

	data, err := json.Marshal(seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	result, err := database.ReadSeedFile(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, result, 3, "invalid integration is skipped")
	assert.Equal(t, "Weather Assistant", result[0].Name)
	assert.Equal(t, "openweather", result[0].Tools[0].APIID)
}

func TestReadSeedFile_MissingFile(t *testing.T) {
	_, err := database.ReadSeedFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.Error(t, err)
}

func TestReadSeedFile_DirectHTTPURL(t *testing.T) {
	seed := database.ExampleIntegrations(seedTime)[:1]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(seed); err != nil {
			http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	result, err := database.ReadSeedFile(context.Background(), server.URL+"/seed.json", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
}

func TestReadSeedFile_BuilderAPIURL(t *testing.T) {
	seed := database.ExampleIntegrations(seedTime)

	mux := http.NewServeMux()
	mux.HandleFunc("/v0/integrations", func(w http.ResponseWriter, r *http.Request) {
		var response v0.IntegrationListResponse
		switch r.URL.Query().Get("cursor") {
		case "":
			response = v0.IntegrationListResponse{
				Integrations: seed[:2],
				Metadata:     &v0.Metadata{NextCursor: seed[1].ID, Count: 2},
			}
		case seed[1].ID:
			response = v0.IntegrationListResponse{
				Integrations: seed[2:],
				Metadata:     &v0.Metadata{Count: 1},
			}
		default:
			response = v0.IntegrationListResponse{Integrations: []model.Integration{}}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		}
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := database.ReadSeedFile(context.Background(), server.URL+"/v0/integrations", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "Weather Assistant", result[0].Name)
	assert.Equal(t, "Slack Notifier", result[2].Name)
}

func TestImportSeed_ReplacesExisting(t *testing.T) {
	seed := database.ExampleIntegrations(seedTime)
	seed[0].Name = "Weather Assistant v2"

	data, err := json.Marshal(seed)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	db := database.NewSeededMemoryDB(seedTime)
	require.NoError(t, database.ImportSeed(context.Background(), db, path, zap.NewNop()))

	all, _, err := db.List(context.Background(), nil, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Weather Assistant v2", all[0].Name)
}
