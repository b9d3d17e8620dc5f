package sqlite

import (
	"context"
	"database/sql"

	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DashboardStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching dashboard stats: user_id=%s", userID)

	var stat models.DashboardStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(c.id) AS total_cards,
    COALESCE(SUM(c.review_count), 0) AS total_reviews,
    COUNT(CASE WHEN c.state = 'new' THEN c.id END) AS cards_new,
    COUNT(CASE WHEN c.state = 'new' OR c.next_review <= CURRENT_TIMESTAMP THEN c.id END) AS cards_due,
    COUNT(CASE WHEN c.next_review > CURRENT_TIMESTAMP AND c.next_review <= datetime('now', '+7 days') THEN c.id END) AS cards_due_soon,
    COUNT(CASE WHEN c.state = 'review' AND c.interval_days >= 21 THEN c.id END) AS cards_graduated,
    COUNT(CASE WHEN c.ease_factor < 2.0 AND c.review_count > 3 THEN c.id END) AS cards_struggling,
    COALESCE(AVG(c.ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(c.interval_days), 0) AS avg_interval_days
FROM cards c
WHERE c.user_id = ?
`, userID).Scan(
		&stat.TotalCards,
		&stat.TotalReviews,
		&stat.CardsNew,
		&stat.CardsDue,
		&stat.CardsDueSoon,
		&stat.CardsGraduated,
		&stat.CardsStruggling,
		&stat.AvgEaseFactor,
		&stat.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get dashboard stats: %v", err)
		return nil, err
	}

	// Accuracy comes from the history table: correct means Good or better.
	var rated, correct sql.NullInt64
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(h.id), COUNT(CASE WHEN h.rating >= 3 THEN h.id END)
FROM review_history h
JOIN review_sessions s ON s.id = h.session_id
WHERE s.user_id = ?
`, userID).Scan(&rated, &correct)
	if err != nil {
		log.Error("failed to get accuracy stats: %v", err)
		return nil, err
	}
	if rated.Valid && rated.Int64 > 0 {
		stat.OverallAccuracy = 100 * float64(correct.Int64) / float64(rated.Int64)
	}

	return &stat, nil
}
