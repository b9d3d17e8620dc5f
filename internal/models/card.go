package models

import "time"

// Card is a flashcard together with its scheduling record.
// EaseFactor never drops below the scheduler's minimum, IntervalDays is
// never negative, and NextReview is set for every card that has been
// reviewed at least once.
type Card struct {
	ID           string     `json:"id"`
	DeckID       string     `json:"deck_id"`
	UserID       string     `json:"user_id"`
	FrontText    string     `json:"front_text"`
	BackText     string     `json:"back_text"`
	State        CardState  `json:"state"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays float64    `json:"interval_days"`
	ReviewCount  int        `json:"review_count"`
	LapseCount   int        `json:"lapse_count"`
	LastReview   *time.Time `json:"last_review"`
	NextReview   *time.Time `json:"next_review"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CardFilter narrows card listings. Zero values mean "no filter".
type CardFilter struct {
	UserID string
	DeckID string
	State  CardState
	Limit  int
}

// Deck groups a user's cards. The engine only uses it for scoping.
type Deck struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
