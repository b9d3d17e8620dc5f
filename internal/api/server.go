package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/wojciechlas/blendsphere-srs/internal/services"
)

// Server holds the HTTP surface's dependencies. Handlers stay thin:
// scheduling decisions live in the engine, never here.
type Server struct {
	ReviewService services.ReviewService
	StatsService  services.StatsService
	CardService   services.CardService

	forecastHorizonDays int
	validate            *validator.Validate
}

// NewServer creates a Server with a shared request validator.
// forecastHorizonDays is the horizon used when a forecast request does not
// name one; zero falls back to a one-week default.
func NewServer(review services.ReviewService, stats services.StatsService, cards services.CardService, forecastHorizonDays int) *Server {
	if forecastHorizonDays <= 0 {
		forecastHorizonDays = defaultForecastHorizonDays
	}
	return &Server{
		ReviewService:       review,
		StatsService:        stats,
		CardService:         cards,
		forecastHorizonDays: forecastHorizonDays,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
	}
}
