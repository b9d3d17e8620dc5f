package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/wojciechlas/blendsphere-srs/internal/errors"
	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

// CardDraft is the content for a card to be created. Scheduling fields are
// always initialized by the engine, never supplied by callers.
type CardDraft struct {
	FrontText string
	BackText  string
}

// CardService handles deck and card ingestion. Content authoring lives
// upstream; this service only materializes cards with a fresh scheduling
// record.
type CardService interface {
	CreateDeck(ctx context.Context, userID, name string) (*models.Deck, error)
	ListDecks(ctx context.Context, userID string) ([]models.Deck, error)
	CreateCards(ctx context.Context, userID, deckID string, drafts []CardDraft) ([]models.Card, error)
}

type cardService struct {
	cards repository.CardRepository
	decks repository.DeckRepository
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository, decks repository.DeckRepository) CardService {
	return &cardService{cards: cards, decks: decks}
}

func (s *cardService) CreateDeck(ctx context.Context, userID, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: user_id=%s, name=%s", userID, name)

	deck := models.Deck{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	if err := s.decks.Insert(ctx, deck); err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &deck, nil
}

func (s *cardService) ListDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: user_id=%s", userID)

	decks, err := s.decks.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *cardService) CreateCards(ctx context.Context, userID, deckID string, drafts []CardDraft) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating %d cards: user_id=%s, deck_id=%s", len(drafts), userID, deckID)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards := make([]models.Card, 0, len(drafts))
	for _, d := range drafts {
		cards = append(cards, models.Card{
			ID:         uuid.NewString(),
			DeckID:     deckID,
			UserID:     userID,
			FrontText:  d.FrontText,
			BackText:   d.BackText,
			State:      models.StateNew,
			EaseFactor: srs.StartingEase,
		})
	}
	if err := s.cards.InsertBatch(ctx, cards); err != nil {
		log.Error("failed to insert cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("created %d cards in deck %s", len(cards), deckID)
	return cards, nil
}
