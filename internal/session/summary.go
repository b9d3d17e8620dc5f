package session

import (
	"context"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

// summaryHorizonDays bounds the forecast consulted for the summary's
// "later" bucket. A year is wide enough that intervals grown during the
// session itself (a mature card rated Easy) still land inside it.
const summaryHorizonDays = 365

// Summary is the presentation-ready projection of a finished (or
// abandoned) session.
type Summary struct {
	SessionID      string     `json:"session_id"`
	Completed      bool       `json:"completed"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
	CardsReviewed  int        `json:"cards_reviewed"`
	TotalCorrect   int        `json:"total_correct"`
	TotalIncorrect int        `json:"total_incorrect"`
	Accuracy       float64    `json:"accuracy"` // percent of completed cards answered correctly
	AverageTimeMs  float64    `json:"average_time_ms"`

	// Rating distribution indexed Again..Easy.
	RatingCounts  [4]int     `json:"rating_counts"`
	RatingPercent [4]float64 `json:"rating_percent"`

	// Forward-looking workload, summed from calendar-day buckets.
	// DueBeyondWeek covers day 7 through the summary horizon (one year).
	DueTomorrow        int `json:"due_tomorrow"`
	DueWithinThreeDays int `json:"due_within_three_days"`
	DueBeyondWeek      int `json:"due_beyond_week"`
}

// ForecastSource supplies day-bucketed due counts from the authoritative
// card store. Buckets are keyed by srs.DateLayout.
type ForecastSource interface {
	Forecast(ctx context.Context, userID, deckID string, now time.Time, horizonDays int) (map[string]int, error)
}

// Build derives a summary from the session and the caller's in-memory card
// collection, computing the forecast locally.
func Build(sess *models.ReviewSession, cards []models.Card, now time.Time) Summary {
	return build(sess, srs.Forecast(cards, now, summaryHorizonDays), now)
}

// BuildWithSource prefers the authoritative forecast source and falls back
// to the local computation when the source is unavailable. Both paths use
// identical bucket semantics.
func BuildWithSource(ctx context.Context, sess *models.ReviewSession, src ForecastSource, cards []models.Card, now time.Time) Summary {
	buckets, err := src.Forecast(ctx, sess.UserID, sess.DeckID, now, summaryHorizonDays)
	if err != nil {
		logger.FromContext(ctx).Warn("forecast source unavailable, using local forecast: %v", err)
		buckets = srs.Forecast(cards, now, summaryHorizonDays)
	}
	return build(sess, buckets, now)
}

func build(sess *models.ReviewSession, buckets map[string]int, now time.Time) Summary {
	s := Summary{
		SessionID:      sess.ID,
		Completed:      sess.Completed,
		StartedAt:      sess.StartedAt,
		EndedAt:        sess.EndedAt,
		CardsReviewed:  sess.CardsReviewed,
		TotalCorrect:   sess.TotalCorrect,
		TotalIncorrect: sess.TotalIncorrect,
		AverageTimeMs:  sess.AverageTimeMs,
	}

	for _, item := range sess.History {
		if item.Rating.IsValid() {
			s.RatingCounts[item.Rating-models.RatingAgain]++
		}
	}
	if n := len(sess.History); n > 0 {
		for i, c := range s.RatingCounts {
			s.RatingPercent[i] = 100 * float64(c) / float64(n)
		}
	}
	if sess.CardsReviewed > 0 {
		s.Accuracy = 100 * float64(sess.TotalCorrect) / float64(sess.CardsReviewed)
	}

	s.DueTomorrow = srs.SumDays(buckets, now, 1, 1)
	s.DueWithinThreeDays = srs.SumDays(buckets, now, 1, 3)
	s.DueBeyondWeek = srs.SumDays(buckets, now, 7, summaryHorizonDays)
	return s
}
