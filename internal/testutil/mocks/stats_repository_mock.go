package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}
