package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
	"github.com/wojciechlas/blendsphere-srs/internal/repository/sqlite"
	"github.com/wojciechlas/blendsphere-srs/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.StatsRepository
	cards repository.CardRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.cards = sqlite.NewCardRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) TestDashboardStats() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO decks (id, user_id, name) VALUES ('deck-1', 'user-1', 'vocab')`)
	s.Require().NoError(err)

	now := time.Now().UTC()
	past := now.Add(-24 * time.Hour)
	soon := now.Add(48 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)

	s.Require().NoError(s.cards.InsertBatch(ctx, []models.Card{
		{ID: "new", DeckID: "deck-1", UserID: "user-1", State: models.StateNew, EaseFactor: 2.5},
		{ID: "overdue", DeckID: "deck-1", UserID: "user-1", State: models.StateReview, EaseFactor: 2.5, IntervalDays: 5, ReviewCount: 2, NextReview: &past},
		{ID: "graduated", DeckID: "deck-1", UserID: "user-1", State: models.StateReview, EaseFactor: 2.6, IntervalDays: 25, ReviewCount: 6, NextReview: &soon},
		{ID: "struggling", DeckID: "deck-1", UserID: "user-1", State: models.StateLearning, EaseFactor: 1.5, IntervalDays: 1, ReviewCount: 5, LapseCount: 4, NextReview: &far},
	}))

	stats, err := s.repo.DashboardStats(ctx, "user-1")
	s.Require().NoError(err)

	s.Equal(4, stats.TotalCards)
	s.Equal(13, stats.TotalReviews)
	s.Equal(1, stats.CardsNew)
	s.Equal(2, stats.CardsDue, "new and overdue cards are due")
	s.Equal(1, stats.CardsDueSoon)
	s.Equal(1, stats.CardsGraduated)
	s.Equal(1, stats.CardsStruggling)
	s.InDelta((2.5+2.5+2.6+1.5)/4, stats.AvgEaseFactor, 1e-9)
}

func (s *StatsRepositorySuite) TestDashboardStatsAccuracy() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Hour)
	_, err := s.db.ExecContext(ctx, `INSERT INTO review_sessions (id, user_id, started_at) VALUES ('sess-1', 'user-1', ?)`, started)
	s.Require().NoError(err)

	history := sqlite.NewSessionRepository(s.db)
	s.Require().NoError(history.InsertHistory(ctx, "sess-1", []models.ReviewHistoryItem{
		{CardID: "c1", Rating: models.RatingGood, ReviewedAt: started},
		{CardID: "c2", Rating: models.RatingEasy, ReviewedAt: started},
		{CardID: "c3", Rating: models.RatingAgain, ReviewedAt: started},
		{CardID: "c4", Rating: models.RatingHard, ReviewedAt: started},
	}))

	stats, err := s.repo.DashboardStats(ctx, "user-1")
	s.Require().NoError(err)
	s.InDelta(50.0, stats.OverallAccuracy, 1e-9, "good and easy count as correct")
}

func (s *StatsRepositorySuite) TestDashboardStatsEmpty() {
	stats, err := s.repo.DashboardStats(context.Background(), "user-without-cards")
	s.Require().NoError(err)
	s.Zero(stats.TotalCards)
	s.Zero(stats.OverallAccuracy)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
