package srs

import (
	"sort"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// DefaultNewLimit caps how many never-reviewed cards enter a single
// session's working set.
const DefaultNewLimit = 50

// DueOptions narrows and limits due-card selection.
type DueOptions struct {
	DeckID   string // empty selects across all decks
	NewLimit int    // zero means DefaultNewLimit
}

// IsDue reports whether the card should be reviewed at the given instant.
// New cards are always due; scheduled cards are due once NextReview passes.
func IsDue(card models.Card, now time.Time) bool {
	if card.State == models.StateNew || card.NextReview == nil {
		return true
	}
	return !card.NextReview.After(now)
}

// SelectDue returns the ordered working set of due cards. New cards sort as
// most overdue and come first, capped at the new-card limit; scheduled cards
// follow in ascending NextReview order. An empty result means "no session to
// start", not an error.
func SelectDue(cards []models.Card, now time.Time, opts DueOptions) []models.Card {
	limit := opts.NewLimit
	if limit <= 0 {
		limit = DefaultNewLimit
	}

	var fresh, scheduled []models.Card
	for _, c := range cards {
		if opts.DeckID != "" && c.DeckID != opts.DeckID {
			continue
		}
		if !IsDue(c, now) {
			continue
		}
		if c.State == models.StateNew || c.NextReview == nil {
			fresh = append(fresh, c)
		} else {
			scheduled = append(scheduled, c)
		}
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})
	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].NextReview.Before(*scheduled[j].NextReview)
	})

	return append(fresh, scheduled...)
}
