package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(userMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleStartSession)
		r.Post("/sessions/rate", s.handleRateCard)
		r.Post("/sessions/flip", s.handleFlipCard)
		r.Post("/sessions/abandon", s.handleAbandonSession)
		r.Get("/sessions/summary", s.handleSessionSummary)

		r.Get("/cards/due", s.handleDueCards)
		r.Post("/cards", s.handleCreateCards)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks", s.handleListDecks)

		r.Get("/forecast", s.handleForecast)
		r.Get("/stats", s.handleDashboard)
	})

	return r
}
