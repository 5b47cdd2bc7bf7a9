package v0_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcpbuilder/mcp-builder/internal/database"
	apiv0 "github.com/mcpbuilder/mcp-builder/pkg/api/v0"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// MockIntegrationService is a mock implementation of the IntegrationService interface
type MockIntegrationService struct {
	mock.Mock
}

func (m *MockIntegrationService) List(ctx context.Context, filter *database.IntegrationFilter, cursor string, limit int) ([]model.Integration, string, error) {
	args := m.Called(ctx, filter, cursor, limit)
	return args.Get(0).([]model.Integration), args.String(1), args.Error(2)
}

func (m *MockIntegrationService) GetAll(ctx context.Context) ([]model.Integration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Integration), args.Error(1)
}

func (m *MockIntegrationService) GetByID(ctx context.Context, id string) (*model.Integration, error) {
	args := m.Called(ctx, id)
	integration, _ := args.Get(0).(*model.Integration)
	return integration, args.Error(1)
}

func (m *MockIntegrationService) Create(ctx context.Context, patch model.IntegrationPatch) (*model.Integration, error) {
	args := m.Called(ctx, patch)
	integration, _ := args.Get(0).(*model.Integration)
	return integration, args.Error(1)
}

func (m *MockIntegrationService) Update(ctx context.Context, id string, patch model.IntegrationPatch) (*model.Integration, error) {
	args := m.Called(ctx, id, patch)
	integration, _ := args.Get(0).(*model.Integration)
	return integration, args.Error(1)
}

func (m *MockIntegrationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIntegrationService) Publish(ctx context.Context, id string) (*model.Integration, error) {
	args := m.Called(ctx, id)
	integration, _ := args.Get(0).(*model.Integration)
	return integration, args.Error(1)
}

func (m *MockIntegrationService) Fork(ctx context.Context, id string) (*model.Integration, error) {
	args := m.Called(ctx, id)
	integration, _ := args.Get(0).(*model.Integration)
	return integration, args.Error(1)
}

func (m *MockIntegrationService) Execute(ctx context.Context, id, query string) (*apiv0.ExecutionResult, error) {
	args := m.Called(ctx, id, query)
	result, _ := args.Get(0).(*apiv0.ExecutionResult)
	return result, args.Error(1)
}

func (m *MockIntegrationService) UsageStats(ctx context.Context) (*apiv0.UsageStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*apiv0.UsageStats)
	return stats, args.Error(1)
}
