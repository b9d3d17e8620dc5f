package services

import (
	"context"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/errors"
	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

// StatsService serves dashboard aggregates and forward-looking forecasts.
// It also acts as the authoritative forecast source for session summaries.
type StatsService interface {
	Dashboard(ctx context.Context, userID string) (*models.DashboardStats, error)
	Forecast(ctx context.Context, userID, deckID string, now time.Time, horizonDays int) (map[string]int, error)
	DuePreview(ctx context.Context, userID, deckID string, now time.Time, limit int) ([]models.Card, error)
}

type statsService struct {
	cards repository.CardRepository
	stats repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(cards repository.CardRepository, stats repository.StatsRepository) StatsService {
	return &statsService{cards: cards, stats: stats}
}

func (s *statsService) Dashboard(ctx context.Context, userID string) (*models.DashboardStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching dashboard: user_id=%s", userID)

	stat, err := s.stats.DashboardStats(ctx, userID)
	if err != nil {
		log.Error("failed to load dashboard stats: %v", err)
		return nil, errors.NewUnavailableError("loading dashboard stats", err)
	}
	return stat, nil
}

func (s *statsService) Forecast(ctx context.Context, userID, deckID string, now time.Time, horizonDays int) (map[string]int, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing forecast: user_id=%s, deck_id=%s, horizon=%d", userID, deckID, horizonDays)

	cards, err := s.cards.ListByUser(ctx, models.CardFilter{UserID: userID, DeckID: deckID})
	if err != nil {
		log.Error("failed to load cards for forecast: %v", err)
		return nil, errors.NewUnavailableError("loading cards for forecast", err)
	}
	return srs.Forecast(cards, now, horizonDays), nil
}

func (s *statsService) DuePreview(ctx context.Context, userID, deckID string, now time.Time, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing due preview: user_id=%s, deck_id=%s", userID, deckID)

	cards, err := s.cards.ListByUser(ctx, models.CardFilter{UserID: userID, DeckID: deckID})
	if err != nil {
		log.Error("failed to load cards for due preview: %v", err)
		return nil, errors.NewUnavailableError("loading cards for due preview", err)
	}

	due := srs.SelectDue(cards, now, srs.DueOptions{DeckID: deckID})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}
