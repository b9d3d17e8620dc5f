package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/wojciechlas/blendsphere-srs/internal/errors"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/services"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
	"github.com/wojciechlas/blendsphere-srs/internal/testutil/mocks"
)

func TestDashboard(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewStatsService(cards, stats)

	want := &models.DashboardStats{TotalCards: 10, CardsDue: 3, OverallAccuracy: 80}
	stats.On("DashboardStats", mock.Anything, "user-1").Return(want, nil)

	got, err := svc.Dashboard(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDashboard_StoreUnavailable(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewStatsService(cards, stats)
	stats.On("DashboardStats", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Dashboard(context.Background(), "user-1")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeUnavailable, appErr.Code)
}

func TestForecast(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewStatsService(cards, stats)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	collection := []models.Card{
		{ID: "a", UserID: "user-1", State: models.StateReview, IntervalDays: 1, NextReview: &tomorrow},
		{ID: "b", UserID: "user-1", State: models.StateNew},
	}
	cards.On("ListByUser", mock.Anything, models.CardFilter{UserID: "user-1"}).Return(collection, nil)

	buckets, err := svc.Forecast(context.Background(), "user-1", "", now, 7)

	require.NoError(t, err)
	assert.Equal(t, 1, buckets[tomorrow.Format(srs.DateLayout)])
	assert.Len(t, buckets, 1, "new cards are absent from the forecast")
}

func TestDuePreview(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewStatsService(cards, stats)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	future := now.Add(6 * time.Hour)
	collection := []models.Card{
		{ID: "a", UserID: "user-1", State: models.StateNew, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "b", UserID: "user-1", State: models.StateNew, CreatedAt: now.Add(-time.Hour)},
		{ID: "c", UserID: "user-1", State: models.StateReview, IntervalDays: 1, NextReview: &future},
	}
	cards.On("ListByUser", mock.Anything, mock.Anything).Return(collection, nil)

	due, err := svc.DuePreview(context.Background(), "user-1", "", now, 1)

	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].ID, "selection is evaluated against the supplied instant")
}
