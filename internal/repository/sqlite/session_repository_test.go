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

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) TestInsertSession() {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ended := started.Add(5 * time.Minute)

	sess := models.ReviewSession{
		ID:             "sess-1",
		UserID:         "user-1",
		DeckID:         "deck-1",
		StartedAt:      started,
		EndedAt:        &ended,
		CardsReviewed:  3,
		TotalCorrect:   2,
		TotalIncorrect: 1,
		AverageTimeMs:  4200,
		Completed:      true,
	}
	s.Require().NoError(s.repo.InsertSession(ctx, sess))

	var cardsReviewed int
	var completed bool
	var deckID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT cards_reviewed, completed, deck_id FROM review_sessions WHERE id = ?`, "sess-1").
		Scan(&cardsReviewed, &completed, &deckID)
	s.Require().NoError(err)
	s.Equal(3, cardsReviewed)
	s.True(completed)
	s.True(deckID.Valid)
	s.Equal("deck-1", deckID.String)
}

func (s *SessionRepositorySuite) TestInsertSessionAllDecks() {
	ctx := context.Background()
	sess := models.ReviewSession{
		ID:        "sess-1",
		UserID:    "user-1",
		StartedAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.repo.InsertSession(ctx, sess))

	var deckID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT deck_id FROM review_sessions WHERE id = ?`, "sess-1").Scan(&deckID)
	s.Require().NoError(err)
	s.False(deckID.Valid, "an all-decks session stores a NULL deck id")
}

func (s *SessionRepositorySuite) TestInsertHistory() {
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.InsertSession(ctx, models.ReviewSession{ID: "sess-1", UserID: "user-1", StartedAt: started}))

	items := []models.ReviewHistoryItem{
		{CardID: "c1", Rating: models.RatingAgain, TimeSpentMs: 4000, IntervalBefore: 5, IntervalAfter: 0.1, ReviewedAt: started},
		{CardID: "c1", Rating: models.RatingGood, TimeSpentMs: 2000, IntervalBefore: 0.1, IntervalAfter: 1, ReviewedAt: started.Add(time.Minute)},
	}
	s.Require().NoError(s.repo.InsertHistory(ctx, "sess-1", items))

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_history WHERE session_id = ?`, "sess-1").Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)

	var rating int
	var intervalAfter float64
	err = s.db.QueryRowContext(ctx, `SELECT rating, interval_after FROM review_history WHERE session_id = ? ORDER BY id LIMIT 1`, "sess-1").
		Scan(&rating, &intervalAfter)
	s.Require().NoError(err)
	s.Equal(int(models.RatingAgain), rating)
	s.Equal(0.1, intervalAfter)
}

func (s *SessionRepositorySuite) TestInsertHistoryRequiresSession() {
	items := []models.ReviewHistoryItem{{CardID: "c1", Rating: models.RatingGood, ReviewedAt: time.Now()}}
	err := s.repo.InsertHistory(context.Background(), "no-such-session", items)
	s.Error(err, "history rows reference their session")
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
