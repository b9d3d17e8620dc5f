package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) InsertSession(ctx context.Context, sess models.ReviewSession) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockSessionRepository) InsertHistory(ctx context.Context, sessionID string, items []models.ReviewHistoryItem) error {
	args := m.Called(ctx, sessionID, items)
	return args.Error(0)
}
