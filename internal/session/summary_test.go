package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/session"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

func finishedSession() *models.ReviewSession {
	ended := sessionNow.Add(5 * time.Minute)
	return &models.ReviewSession{
		ID:             "sess-1",
		UserID:         "user-1",
		StartedAt:      sessionNow,
		EndedAt:        &ended,
		CardsReviewed:  4,
		TotalCorrect:   3,
		TotalIncorrect: 2,
		AverageTimeMs:  4500,
		Completed:      true,
		History: []models.ReviewHistoryItem{
			{CardID: "c1", Rating: models.RatingAgain},
			{CardID: "c1", Rating: models.RatingGood},
			{CardID: "c2", Rating: models.RatingGood},
			{CardID: "c3", Rating: models.RatingHard},
			{CardID: "c4", Rating: models.RatingEasy},
		},
	}
}

func TestBuild_RatingDistribution(t *testing.T) {
	s := session.Build(finishedSession(), nil, sessionNow)

	assert.Equal(t, [4]int{1, 1, 2, 1}, s.RatingCounts)
	assert.InDelta(t, 20.0, s.RatingPercent[0], 1e-9)
	assert.InDelta(t, 20.0, s.RatingPercent[1], 1e-9)
	assert.InDelta(t, 40.0, s.RatingPercent[2], 1e-9)
	assert.InDelta(t, 20.0, s.RatingPercent[3], 1e-9)
}

func TestBuild_AccuracyOverCompletedCards(t *testing.T) {
	s := session.Build(finishedSession(), nil, sessionNow)

	// Accuracy divides by completed cards, not by rating events, so a
	// re-queued card counts each time it was answered.
	assert.InDelta(t, 75.0, s.Accuracy, 1e-9)
	assert.Equal(t, 4, s.CardsReviewed)
	assert.InDelta(t, 4500, s.AverageTimeMs, 1e-9)
}

func TestBuild_EmptySession(t *testing.T) {
	sess := &models.ReviewSession{ID: "sess-1", UserID: "user-1", StartedAt: sessionNow}

	s := session.Build(sess, nil, sessionNow)

	assert.Zero(t, s.Accuracy)
	assert.Equal(t, [4]int{}, s.RatingCounts)
	assert.Equal(t, [4]float64{}, s.RatingPercent)
}

func TestBuild_ForecastBuckets(t *testing.T) {
	cards := []models.Card{
		dueCard("tomorrow", sessionNow.AddDate(0, 0, 1)),
		dueCard("day-two", sessionNow.AddDate(0, 0, 2)),
		dueCard("day-ten", sessionNow.AddDate(0, 0, 10)),
	}

	s := session.Build(finishedSession(), cards, sessionNow)

	assert.Equal(t, 1, s.DueTomorrow)
	assert.Equal(t, 2, s.DueWithinThreeDays, "tomorrow's card also counts in the three-day window")
	assert.Equal(t, 1, s.DueBeyondWeek)
}

func TestBuild_BeyondWeekKeepsGrownIntervals(t *testing.T) {
	// A 10-day card rated Easy mid-session lands around 32 days out; the
	// later bucket must still count it.
	cards := []models.Card{
		dueCard("grown", sessionNow.AddDate(0, 0, 33)),
		dueCard("far", sessionNow.AddDate(0, 0, 200)),
	}

	s := session.Build(finishedSession(), cards, sessionNow)

	assert.Equal(t, 2, s.DueBeyondWeek)
}

type stubForecastSource struct {
	buckets map[string]int
	err     error
}

func (s *stubForecastSource) Forecast(_ context.Context, _, _ string, _ time.Time, _ int) (map[string]int, error) {
	return s.buckets, s.err
}

func TestBuildWithSource_PrefersStoreForecast(t *testing.T) {
	src := &stubForecastSource{buckets: map[string]int{
		sessionNow.AddDate(0, 0, 1).Format(srs.DateLayout): 7,
	}}

	s := session.BuildWithSource(context.Background(), finishedSession(), src, nil, sessionNow)

	assert.Equal(t, 7, s.DueTomorrow, "the store forecast wins when available")
}

func TestBuildWithSource_FallsBackToLocalForecast(t *testing.T) {
	src := &stubForecastSource{err: errors.New("store down")}
	cards := []models.Card{dueCard("tomorrow", sessionNow.AddDate(0, 0, 1))}

	s := session.BuildWithSource(context.Background(), finishedSession(), src, cards, sessionNow)

	assert.Equal(t, 1, s.DueTomorrow, "local forecast over the in-memory cards serves as fallback")
	assert.Equal(t, "sess-1", s.SessionID)
}
