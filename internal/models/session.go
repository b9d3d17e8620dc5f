package models

import "time"

// ReviewSession aggregates one study session. It is owned exclusively by
// the session orchestrator for its lifetime and persisted once on
// completion or abandonment.
type ReviewSession struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	DeckID         string              `json:"deck_id,omitempty"` // empty means all decks
	StartedAt      time.Time           `json:"started_at"`
	EndedAt        *time.Time          `json:"ended_at"`
	CardsReviewed  int                 `json:"cards_reviewed"` // cards that left the queue for good
	TotalCorrect   int                 `json:"total_correct"`
	TotalIncorrect int                 `json:"total_incorrect"`
	AverageTimeMs  float64             `json:"average_time_ms"`
	History        []ReviewHistoryItem `json:"history"`
	Completed      bool                `json:"completed"`
}

// ReviewHistoryItem records a single rating event. Items are append-only
// and written in strict rating order.
type ReviewHistoryItem struct {
	CardID         string    `json:"card_id"`
	Rating         Rating    `json:"rating"`
	TimeSpentMs    int64     `json:"time_spent_ms"`
	IntervalBefore float64   `json:"interval_before"`
	IntervalAfter  float64   `json:"interval_after"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
