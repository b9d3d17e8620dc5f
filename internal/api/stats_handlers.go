package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/errors"
)

const defaultForecastHorizonDays = 7

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	deckID := r.URL.Query().Get("deck_id")

	horizon := s.forecastHorizonDays
	if v := r.URL.Query().Get("horizon"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			handleError(w, r, errors.NewValidationError("horizon", "must be an integer between 1 and 365"))
			return
		}
		horizon = n
	}

	buckets, err := s.StatsService.Forecast(r.Context(), userID, deckID, time.Now(), horizon)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"horizon_days": horizon,
		"buckets":      buckets,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	stats, err := s.StatsService.Dashboard(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
