package srs

import (
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// DateLayout keys forecast buckets by local calendar day.
const DateLayout = "2006-01-02"

// Forecast buckets upcoming review counts by calendar date. A card counts
// when its NextReview falls within [now, now + horizonDays]; never-reviewed
// cards have no NextReview and are excluded.
func Forecast(cards []models.Card, now time.Time, horizonDays int) map[string]int {
	buckets := make(map[string]int)
	if horizonDays <= 0 {
		return buckets
	}
	cutoff := now.Add(time.Duration(horizonDays) * 24 * time.Hour)

	for _, c := range cards {
		if c.NextReview == nil {
			continue
		}
		due := *c.NextReview
		if due.Before(now) || due.After(cutoff) {
			continue
		}
		buckets[due.In(now.Location()).Format(DateLayout)]++
	}
	return buckets
}

// NextDue returns the earliest upcoming review instant strictly after now,
// or nil when no card has one. Drives the "nothing due until ..." message.
func NextDue(cards []models.Card, now time.Time) *time.Time {
	var earliest *time.Time
	for _, c := range cards {
		if c.NextReview == nil || !c.NextReview.After(now) {
			continue
		}
		if earliest == nil || c.NextReview.Before(*earliest) {
			t := *c.NextReview
			earliest = &t
		}
	}
	return earliest
}

// SumDays totals the buckets for calendar days now+fromDay through
// now+toDay inclusive. Summary views sum contiguous ranges this way so the
// local and store-backed forecast paths share one bucket semantic.
func SumDays(buckets map[string]int, now time.Time, fromDay, toDay int) int {
	total := 0
	for d := fromDay; d <= toDay; d++ {
		key := now.AddDate(0, 0, d).Format(DateLayout)
		total += buckets[key]
	}
	return total
}
