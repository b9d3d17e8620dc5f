package api

import (
	"net/http"

	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

type startSessionRequest struct {
	DeckID string `json:"deck_id" validate:"omitempty,uuid4"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID := userIDFromContext(r.Context())
	result, err := s.ReviewService.StartSession(r.Context(), userID, req.DeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("session start outcome: %s", result.Status)
	respondJSON(w, http.StatusOK, result)
}

type rateRequest struct {
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
}

func (s *Server) handleRateCard(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	// Safe after the oneof validation above.
	rating, _ := models.ParseRating(req.Rating)

	userID := userIDFromContext(r.Context())
	result, err := s.ReviewService.Rate(r.Context(), userID, rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFlipCard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	shown, err := s.ReviewService.Flip(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"answer_shown": shown})
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	if err := s.ReviewService.Abandon(r.Context(), userID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	summary, err := s.ReviewService.Summary(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
