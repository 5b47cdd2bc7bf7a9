package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/validators"
	v0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

const (
	dbTimeout    = 5 * time.Second
	defaultLimit = 30

	executionTokens = 1250
	executionCost   = 0.0025
)

// Option configures the integration service
type Option func(*integrationServiceImpl)

// WithLatency sets the artificial delay profile
func WithLatency(l Latency) Option {
	return func(s *integrationServiceImpl) { s.latency = l }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *integrationServiceImpl) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *integrationServiceImpl) { s.logger = logger }
}

// integrationServiceImpl implements the IntegrationService interface using our Database
type integrationServiceImpl struct {
	db        database.Database
	validator *validators.IntegrationValidator
	latency   Latency
	now       func() time.Time
	logger    *zap.Logger
}

// NewIntegrationService creates a new integration service with the provided database
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewIntegrationService(db database.Database, opts ...Option) IntegrationService {
	s := &integrationServiceImpl{
		db:        db,
		validator: validators.NewIntegrationValidator(),
		latency:   DefaultLatency(),
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns integrations with cursor-based pagination
func (s *integrationServiceImpl) List(ctx context.Context, filter *database.IntegrationFilter, cursor string, limit int) ([]model.Integration, string, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, "", err
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	records, nextCursor, err := s.db.List(ctx, filter, cursor, limit)
	if err != nil {
		return nil, "", err
	}
	return deref(records), nextCursor, nil
}

// GetAll returns every integration in insertion order
func (s *integrationServiceImpl) GetAll(ctx context.Context) ([]model.Integration, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	records, _, err := s.db.List(ctx, nil, "", 0)
	if err != nil {
		return nil, err
	}
	return deref(records), nil
}

// GetByID retrieves a specific integration
func (s *integrationServiceImpl) GetByID(ctx context.Context, id string) (*model.Integration, error) {
	if err := wait(ctx, s.latency.Get); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return s.db.GetByID(ctx, id)
}

// Create builds a default integration, overlays patch and stores it. A caller-supplied id wins.
func (s *integrationServiceImpl) Create(ctx context.Context, patch model.IntegrationPatch) (*model.Integration, error) {
	if err := wait(ctx, s.latency.Create); err != nil {
		return nil, err
	}
	return s.create(ctx, patch)
}

func (s *integrationServiceImpl) create(ctx context.Context, patch model.IntegrationPatch) (*model.Integration, error) {
	now := s.now().UTC()
	integration := model.NewIntegration(model.NewID(now), now).Apply(patch)

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	created, err := s.db.Create(ctx, &integration)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("integration created", zap.String("id", created.ID))
	return created, nil
}

// Update merges patch into an integration and refreshes updatedAt
func (s *integrationServiceImpl) Update(ctx context.Context, id string, patch model.IntegrationPatch) (*model.Integration, error) {
	if err := wait(ctx, s.latency.Update); err != nil {
		return nil, err
	}
	return s.update(ctx, id, patch)
}

func (s *integrationServiceImpl) update(ctx context.Context, id string, patch model.IntegrationPatch) (*model.Integration, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	current, err := s.db.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := current.Apply(patch)
	updated.UpdatedAt = s.now().UTC()

	return s.db.Update(ctx, id, &updated)
}

// Delete removes an integration
func (s *integrationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, s.latency.Delete); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return s.db.Delete(ctx, id)
}

// Publish validates the stored integration and marks it published
func (s *integrationServiceImpl) Publish(ctx context.Context, id string) (*model.Integration, error) {
	if err := wait(ctx, s.latency.Update); err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	current, err := s.db.GetByID(dbCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(current); err != nil {
		s.logger.Info("publish rejected", zap.String("id", id), zap.Strings("problems", validators.Problems(err)))
		return nil, err
	}

	published := true
	return s.update(ctx, id, model.IntegrationPatch{Published: &published})
}

// Fork stores a copy of an integration under a new id with a decorated name
func (s *integrationServiceImpl) Fork(ctx context.Context, id string) (*model.Integration, error) {
	if err := wait(ctx, s.latency.Create); err != nil {
		return nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	source, err := s.db.GetByID(dbCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	patch := model.PatchFrom(*source)
	newID := model.NewID(now)
	name := source.Name + model.ForkSuffix
	published := false
	author := model.DefaultAuthor
	patch.ID = &newID
	patch.Name = &name
	patch.Published = &published
	patch.Author = &author
	patch.CreatedAt = &now
	patch.UpdatedAt = &now

	forked, err := s.create(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to fork integration %s: %w", id, err)
	}
	return forked, nil
}

// Execute returns a canned successful run. No API or model is called.
func (s *integrationServiceImpl) Execute(ctx context.Context, id, query string) (*v0.ExecutionResult, error) {
	if err := wait(ctx, s.latency.Execute); err != nil {
		return nil, err
	}

	return &v0.ExecutionResult{
		Success:       true,
		IntegrationID: id,
		Query:         query,
		Result:        fmt.Sprintf("Successfully processed query %q using the integration tools.", query),
		Steps: []v0.ExecutionStep{
			{Step: 1, Action: "Parse query", Status: "completed", DurationMS: 120},
			{Step: 2, Action: "Select tool", Status: "completed", DurationMS: 85},
			{Step: 3, Action: "Call API", Status: "completed", DurationMS: 450},
			{Step: 4, Action: "Format response", Status: "completed", DurationMS: 95},
		},
		TokensUsed: executionTokens,
		Cost:       executionCost,
		ExecutedAt: s.now().UTC(),
	}, nil
}

// UsageStats returns fixed dashboard counters
func (s *integrationServiceImpl) UsageStats(ctx context.Context) (*v0.UsageStats, error) {
	if err := wait(ctx, s.latency.Stats); err != nil {
		return nil, err
	}

	return &v0.UsageStats{
		TotalRequests:      15420,
		SuccessRate:        98.5,
		AverageLatencyMS:   245,
		ActiveIntegrations: 12,
		TokensUsed:         2450000,
		TotalCost:          48.75,
	}, nil
}

func deref(records []*model.Integration) []model.Integration {
	out := make([]model.Integration, len(records))
	for i, r := range records {
		out[i] = *r
	}
	return out
}
