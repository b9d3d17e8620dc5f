package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

// Status is the orchestrator's lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusActive
	StatusComplete
	StatusNothingDue
	StatusAbandoned
	StatusFailed
)

var statusNames = [...]string{
	StatusUninitialized: "uninitialized",
	StatusActive:        "active",
	StatusComplete:      "complete",
	StatusNothingDue:    "nothing_due",
	StatusAbandoned:     "abandoned",
	StatusFailed:        "failed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Orchestrator drives one user through a review session. It owns the
// working queue and the session aggregate and must be driven by a single
// caller at a time; each operation runs to completion synchronously.
// Persistence of updated cards is the caller's job: Rate returns the
// updated record and never rolls the queue back on a failed write.
type Orchestrator struct {
	status      Status
	sess        *models.ReviewSession
	queue       []models.Card
	cards       map[string]models.Card // snapshot of the loaded collection, kept current
	shownAt     time.Time
	answerShown bool
	totalTimeMs int64
	newLimit    int
	nextDue     *time.Time
	err         error
}

// NewOrchestrator creates an orchestrator in the uninitialized state.
// newLimit caps new cards per session; zero means the selector default.
func NewOrchestrator(newLimit int) *Orchestrator {
	return &Orchestrator{status: StatusUninitialized, newLimit: newLimit}
}

// Start selects the due working set from cards and begins a session.
// An empty due set is a first-class outcome: the orchestrator lands in
// StatusNothingDue carrying the next upcoming due instant for messaging.
func (o *Orchestrator) Start(cards []models.Card, userID, deckID string, now time.Time) Status {
	if o.status != StatusUninitialized {
		panic("session: start called on an already started orchestrator")
	}

	o.cards = make(map[string]models.Card, len(cards))
	for _, c := range cards {
		o.cards[c.ID] = c
	}

	due := srs.SelectDue(cards, now, srs.DueOptions{DeckID: deckID, NewLimit: o.newLimit})
	if len(due) == 0 {
		o.nextDue = srs.NextDue(cards, now)
		o.status = StatusNothingDue
		return o.status
	}

	o.sess = &models.ReviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		DeckID:    deckID,
		StartedAt: now,
	}
	o.queue = due
	o.shownAt = now
	o.status = StatusActive
	return o.status
}

// Rate applies the scheduling policy to the card at the queue head and
// returns the updated card for the caller to persist. A card whose new due
// time still falls within today is re-queued at the tail; otherwise it
// leaves the session for good. Calling Rate outside an active session is a
// caller bug and panics.
func (o *Orchestrator) Rate(rating models.Rating, now time.Time) models.Card {
	if o.status != StatusActive {
		panic("session: rate called outside an active session")
	}
	if len(o.queue) == 0 {
		panic("session: rate called with an empty queue")
	}
	if !rating.IsValid() {
		panic("session: rate called with an invalid rating")
	}

	card := o.queue[0]
	timeSpent := now.Sub(o.shownAt).Milliseconds()
	if timeSpent < 0 {
		timeSpent = 0
	}

	updated := srs.Apply(card, rating, now)
	o.cards[updated.ID] = updated

	keepInSession := updated.NextReview == nil || !updated.NextReview.After(endOfDay(now))
	if keepInSession {
		o.queue = append(o.queue[1:], updated)
	} else {
		o.queue = o.queue[1:]
		o.sess.CardsReviewed++
	}

	o.sess.History = append(o.sess.History, models.ReviewHistoryItem{
		CardID:         card.ID,
		Rating:         rating,
		TimeSpentMs:    timeSpent,
		IntervalBefore: card.IntervalDays,
		IntervalAfter:  updated.IntervalDays,
		ReviewedAt:     now,
	})
	if rating.Correct() {
		o.sess.TotalCorrect++
	} else {
		o.sess.TotalIncorrect++
	}
	o.totalTimeMs += timeSpent
	if o.sess.CardsReviewed > 0 {
		o.sess.AverageTimeMs = float64(o.totalTimeMs) / float64(o.sess.CardsReviewed)
	}

	if len(o.queue) == 0 {
		ended := now
		o.sess.EndedAt = &ended
		o.sess.Completed = true
		o.status = StatusComplete
	} else {
		o.shownAt = now
		o.answerShown = false
	}
	return updated
}

// Flip toggles answer visibility for the displayed card. No scheduling
// effect. Valid only while a card is shown.
func (o *Orchestrator) Flip() bool {
	if o.status != StatusActive {
		panic("session: flip called outside an active session")
	}
	o.answerShown = !o.answerShown
	return o.answerShown
}

// Abandon discards the working queue without completing the session.
// Partial statistics stay readable for best-effort persistence.
func (o *Orchestrator) Abandon(now time.Time) {
	if o.status != StatusActive {
		panic("session: abandon called outside an active session")
	}
	ended := now
	o.sess.EndedAt = &ended
	o.queue = nil
	o.status = StatusAbandoned
}

// Fail moves the orchestrator into the failed state so callers see a
// distinct outcome instead of a session stuck in Active.
func (o *Orchestrator) Fail(err error) {
	o.err = err
	o.queue = nil
	o.status = StatusFailed
}

// Status returns the current lifecycle state.
func (o *Orchestrator) Status() Status { return o.status }

// Err returns the failure recorded by Fail, if any.
func (o *Orchestrator) Err() error { return o.err }

// Current returns the card at the queue head, or nil outside Active.
func (o *Orchestrator) Current() *models.Card {
	if o.status != StatusActive || len(o.queue) == 0 {
		return nil
	}
	c := o.queue[0]
	return &c
}

// QueueSize returns the number of cards still in the working queue.
func (o *Orchestrator) QueueSize() int { return len(o.queue) }

// AnswerShown reports the answer-visibility flag for the displayed card.
func (o *Orchestrator) AnswerShown() bool { return o.answerShown }

// Session exposes the session aggregate. Callers must treat it as
// read-only; the orchestrator remains the single writer.
func (o *Orchestrator) Session() *models.ReviewSession { return o.sess }

// NextDue reports when the next card becomes due after a nothing-due start.
func (o *Orchestrator) NextDue() *time.Time { return o.nextDue }

// Cards returns the in-memory card collection the session was started
// with, reflecting every scheduling update applied so far. The summary
// builder's local forecast fallback runs over this snapshot.
func (o *Orchestrator) Cards() []models.Card {
	out := make([]models.Card, 0, len(o.cards))
	for _, c := range o.cards {
		out = append(out, c)
	}
	return out
}

// endOfDay returns the last instant of now's local calendar day. The
// same-day re-queue rule compares against this boundary.
func endOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
}
