package sqlite

import (
	"context"
	"database/sql"

	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) InsertSession(ctx context.Context, s models.ReviewSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, cards_reviewed=%d, completed=%v", s.ID, s.CardsReviewed, s.Completed)

	var endedAt any
	if s.EndedAt != nil {
		endedAt = *s.EndedAt
	}
	var deckID any
	if s.DeckID != "" {
		deckID = s.DeckID
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_sessions (id, user_id, deck_id, started_at, ended_at, cards_reviewed, total_correct, total_incorrect, average_time_ms, completed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.UserID, deckID, s.StartedAt, endedAt, s.CardsReviewed, s.TotalCorrect, s.TotalIncorrect, s.AverageTimeMs, s.Completed)
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *sessionRepository) InsertHistory(ctx context.Context, sessionID string, items []models.ReviewHistoryItem) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting %d history items: session_id=%s", len(items), sessionID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin history transaction: %v", err)
		return err
	}
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO review_history (session_id, card_id, rating, time_spent_ms, interval_before, interval_after, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, sessionID, item.CardID, int(item.Rating), item.TimeSpentMs, item.IntervalBefore, item.IntervalAfter, item.ReviewedAt); err != nil {
			_ = tx.Rollback()
			log.Error("failed to insert history item: %v", err)
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit history: %v", err)
		return err
	}
	return nil
}
