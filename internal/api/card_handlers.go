package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/errors"
	"github.com/wojciechlas/blendsphere-srs/internal/services"
)

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	deckID := r.URL.Query().Get("deck_id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = n
	}

	cards, err := s.StatsService.DuePreview(r.Context(), userID, deckID, time.Now(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(cards),
		"cards": cards,
	})
}

type createDeckRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID := userIDFromContext(r.Context())
	deck, err := s.CardService.CreateDeck(r.Context(), userID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	decks, err := s.CardService.ListDecks(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(decks),
		"decks": decks,
	})
}

type createCardsRequest struct {
	DeckID string          `json:"deck_id" validate:"required,uuid4"`
	Cards  []cardDraftBody `json:"cards" validate:"required,min=1,max=500,dive"`
}

type cardDraftBody struct {
	FrontText string `json:"front_text" validate:"required"`
	BackText  string `json:"back_text" validate:"required"`
}

func (s *Server) handleCreateCards(w http.ResponseWriter, r *http.Request) {
	var req createCardsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	drafts := make([]services.CardDraft, 0, len(req.Cards))
	for _, c := range req.Cards {
		drafts = append(drafts, services.CardDraft{FrontText: c.FrontText, BackText: c.BackText})
	}

	userID := userIDFromContext(r.Context())
	cards, err := s.CardService.CreateCards(r.Context(), userID, req.DeckID, drafts)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"count": len(cards),
		"cards": cards,
	})
}
