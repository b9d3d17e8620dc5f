package repository

import (
	"context"

	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// CardRepository handles card data access
type CardRepository interface {
	Get(ctx context.Context, id string) (*models.Card, error)
	ListByUser(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) error
	InsertBatch(ctx context.Context, cards []models.Card) error
	UpdateScheduling(ctx context.Context, card models.Card) error
}

// SessionRepository handles session and review-history data access
type SessionRepository interface {
	InsertSession(ctx context.Context, sess models.ReviewSession) error
	InsertHistory(ctx context.Context, sessionID string, items []models.ReviewHistoryItem) error
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id string) (*models.Deck, error)
	ListByUser(ctx context.Context, userID string) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) error
}

// StatsRepository handles dashboard aggregates
type StatsRepository interface {
	DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error)
}
