package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/validators"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// ReadSeedFile reads seed integrations from:
// 1. Local file paths (JSON array of integrations)
// 2. Direct HTTP URLs to such a file
// 3. Builder API list URLs containing /v0/integrations (followed page by page)
// Integrations that fail validation are skipped with a warning.
func ReadSeedFile(ctx context.Context, path string, logger *zap.Logger) ([]model.Integration, error) {
	var integrations []model.Integration

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if strings.Contains(path, "/v0/integrations") {
			fetched, err := fetchFromBuilderAPI(ctx, path)
			if err != nil {
				return nil, err
			}
			integrations = fetched
		} else {
			data, err := fetchFromHTTP(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("failed to read seed data from %s: %w", path, err)
			}
			if err := json.Unmarshal(data, &integrations); err != nil {
				return nil, fmt.Errorf("failed to parse seed data: %w", err)
			}
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed data from %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &integrations); err != nil {
			return nil, fmt.Errorf("failed to parse seed data: %w", err)
		}
	}

	valid := make([]model.Integration, 0, len(integrations))
	skipped := 0
	for _, i := range integrations {
		if err := validators.ValidateIntegration(&i); err != nil {
			logger.Warn("skipping invalid seed integration",
				zap.String("id", i.ID),
				zap.String("name", i.Name),
				zap.Strings("problems", validators.Problems(err)))
			skipped++
			continue
		}
		valid = append(valid, i)
	}

	logger.Info("seed data read", zap.Int("valid", len(valid)), zap.Int("skipped", skipped))
	return valid, nil
}

// ImportSeed stores the seed integrations, replacing any that already exist
func ImportSeed(ctx context.Context, db Database, path string, logger *zap.Logger) error {
	integrations, err := ReadSeedFile(ctx, path, logger)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	for idx := range integrations {
		i := &integrations[idx]
		_, err := db.Create(ctx, i)
		if errors.Is(err, ErrAlreadyExists) {
			_, err = db.Update(ctx, i.ID, i)
		}
		if err != nil {
			logger.Error("failed to import integration", zap.String("id", i.ID), zap.Error(err))
			continue
		}
		logger.Debug("imported integration",
			zap.Int("position", idx+1),
			zap.Int("total", len(integrations)),
			zap.String("name", i.Name))
	}
	return nil
}

func fetchFromHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func fetchFromBuilderAPI(ctx context.Context, baseURL string) ([]model.Integration, error) {
	var all []model.Integration
	cursor := ""

	for {
		pageURL := baseURL
		if cursor != "" {
			sep := "?"
			if strings.Contains(pageURL, "?") {
				sep = "&"
			}
			pageURL += sep + "cursor=" + url.QueryEscape(cursor)
		}

		data, err := fetchFromHTTP(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page from builder API: %w", err)
		}

		var response struct {
			Integrations []model.Integration `json:"integrations"`
			Metadata     *struct {
				NextCursor string `json:"nextCursor,omitempty"`
			} `json:"metadata,omitempty"`
		}
		if err := json.Unmarshal(data, &response); err != nil {
			return nil, fmt.Errorf("failed to parse builder API response: %w", err)
		}

		all = append(all, response.Integrations...)

		if response.Metadata == nil || response.Metadata.NextCursor == "" {
			break
		}
		cursor = response.Metadata.NextCursor
	}

	return all, nil
}
