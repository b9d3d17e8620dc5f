package services

import (
	"context"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/errors"
	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
	"github.com/wojciechlas/blendsphere-srs/internal/session"
	"github.com/wojciechlas/blendsphere-srs/internal/worker"
)

// StartResult reports the outcome of a session start. NextDue is set only
// for the nothing-due outcome.
type StartResult struct {
	Status    string       `json:"status"`
	SessionID string       `json:"session_id,omitempty"`
	QueueSize int          `json:"queue_size"`
	Card      *models.Card `json:"card,omitempty"`
	NextDue   *time.Time   `json:"next_due,omitempty"`
}

// RateResult reports the outcome of rating the current card.
type RateResult struct {
	Updated       models.Card  `json:"updated"`
	Status        string       `json:"status"`
	QueueSize     int          `json:"queue_size"`
	CardsReviewed int          `json:"cards_reviewed"`
	Next          *models.Card `json:"next,omitempty"`
}

// ReviewService drives review sessions: it loads cards, owns the per-user
// orchestrators, and persists scheduling updates the orchestrator hands back.
type ReviewService interface {
	StartSession(ctx context.Context, userID, deckID string) (*StartResult, error)
	Rate(ctx context.Context, userID string, rating models.Rating) (*RateResult, error)
	Flip(ctx context.Context, userID string) (bool, error)
	Abandon(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (*session.Summary, error)
}

type reviewService struct {
	cards    repository.CardRepository
	sessions repository.SessionRepository
	manager  *session.Manager
	forecast session.ForecastSource
	pool     *worker.Pool
	now      func() time.Time
}

// NewReviewService creates a new ReviewService. The pool receives
// best-effort history persistence jobs; forecast supplies the
// authoritative summary forecast.
func NewReviewService(cards repository.CardRepository, sessions repository.SessionRepository, forecast session.ForecastSource, manager *session.Manager, pool *worker.Pool) ReviewService {
	return &reviewService{
		cards:    cards,
		sessions: sessions,
		manager:  manager,
		forecast: forecast,
		pool:     pool,
		now:      time.Now,
	}
}

func (s *reviewService) StartSession(ctx context.Context, userID, deckID string) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: user_id=%s, deck_id=%s", userID, deckID)

	orch := s.manager.Create(userID)
	collection, err := s.cards.ListByUser(ctx, models.CardFilter{UserID: userID, DeckID: deckID})
	if err != nil {
		log.Error("failed to load cards: %v", err)
		// The session lands in a distinct failed state instead of staying
		// silently uninitialized.
		orch.Fail(err)
		return nil, errors.NewUnavailableError("loading cards", err)
	}

	status := orch.Start(collection, userID, deckID, s.now())

	if status == session.StatusNothingDue {
		log.Debug("nothing due for user_id=%s", userID)
		return &StartResult{
			Status:  status.String(),
			NextDue: orch.NextDue(),
		}, nil
	}

	log.Info("session started: session_id=%s, queue_size=%d", orch.Session().ID, orch.QueueSize())
	return &StartResult{
		Status:    status.String(),
		SessionID: orch.Session().ID,
		QueueSize: orch.QueueSize(),
		Card:      orch.Current(),
	}, nil
}

func (s *reviewService) Rate(ctx context.Context, userID string, rating models.Rating) (*RateResult, error) {
	log := logger.FromContext(ctx)

	orch, ok := s.manager.Get(userID)
	if !ok {
		return nil, errors.NewNotFoundError("session", userID)
	}
	if orch.Status() != session.StatusActive {
		return nil, errors.NewValidationError("session", "no active session to rate")
	}

	now := s.now()
	updated := orch.Rate(rating, now)
	log.Debug("card rated: card_id=%s, rating=%s, state=%s, interval=%.2f", updated.ID, rating, updated.State, updated.IntervalDays)

	// The user has already seen and rated the card, so the in-memory queue
	// is authoritative: a failed write is logged, never rolled back.
	if err := s.cards.UpdateScheduling(ctx, updated); err != nil {
		log.Warn("failed to persist card scheduling, continuing: card_id=%s: %v", updated.ID, err)
	}

	if orch.Status() == session.StatusComplete {
		s.persistSession(ctx, orch)
	}

	return &RateResult{
		Updated:       updated,
		Status:        orch.Status().String(),
		QueueSize:     orch.QueueSize(),
		CardsReviewed: orch.Session().CardsReviewed,
		Next:          orch.Current(),
	}, nil
}

func (s *reviewService) Flip(ctx context.Context, userID string) (bool, error) {
	orch, ok := s.manager.Get(userID)
	if !ok {
		return false, errors.NewNotFoundError("session", userID)
	}
	if orch.Status() != session.StatusActive {
		return false, errors.NewValidationError("session", "no active session to flip")
	}
	return orch.Flip(), nil
}

func (s *reviewService) Abandon(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	orch, ok := s.manager.Get(userID)
	if !ok {
		return errors.NewNotFoundError("session", userID)
	}
	if orch.Status() != session.StatusActive {
		return errors.NewValidationError("session", "no active session to abandon")
	}

	orch.Abandon(s.now())
	log.Info("session abandoned: session_id=%s, cards_reviewed=%d", orch.Session().ID, orch.Session().CardsReviewed)

	// Partial statistics are persisted best-effort.
	s.persistSession(ctx, orch)
	return nil
}

func (s *reviewService) Summary(ctx context.Context, userID string) (*session.Summary, error) {
	orch, ok := s.manager.Get(userID)
	if !ok {
		return nil, errors.NewNotFoundError("session", userID)
	}
	switch orch.Status() {
	case session.StatusComplete, session.StatusAbandoned:
	default:
		return nil, errors.NewValidationError("session", "summary requires a finished session")
	}

	summary := session.BuildWithSource(ctx, orch.Session(), s.forecast, orch.Cards(), s.now())
	return &summary, nil
}

// persistSession writes the session row synchronously and hands the
// history batch to the worker pool so a slow write never blocks a review.
func (s *reviewService) persistSession(ctx context.Context, orch *session.Orchestrator) {
	log := logger.FromContext(ctx)
	sess := orch.Session()

	if err := s.sessions.InsertSession(ctx, *sess); err != nil {
		log.Warn("failed to persist session, continuing: session_id=%s: %v", sess.ID, err)
		return
	}
	if len(sess.History) > 0 && s.pool != nil {
		s.pool.Submit(&historyPersistJob{
			sessions:  s.sessions,
			sessionID: sess.ID,
			items:     append([]models.ReviewHistoryItem(nil), sess.History...),
		})
	}
}
