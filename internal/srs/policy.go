package srs

import (
	"math"
	"time"

	"github.com/wojciechlas/blendsphere-srs/internal/models"
)

// SM-2 variant constants.
const (
	StartingEase        = 2.5
	MinEase             = 1.3
	EasyBonus           = 1.3
	IntervalModifier    = 1.0
	HardIntervalFactor  = 1.2
	LapseIntervalFactor = 0.1

	// seedIntervalDays is the interval given to the first successful
	// review of a never-scheduled card. The card stays in Learning for
	// that first step instead of jumping straight to Review.
	seedIntervalDays = 1.0

	// GraduatedIntervalDays is the interval above which a Review card is
	// shown as "graduated". Display-only; never stored as a state.
	GraduatedIntervalDays = 21.0
)

// Apply computes the card's next scheduling record from a rating.
// Pure and deterministic: the input card is not mutated, no clock is read,
// and the same inputs always produce the same output.
func Apply(card models.Card, rating models.Rating, now time.Time) models.Card {
	interval := card.IntervalDays
	ease := card.EaseFactor
	if ease == 0 {
		ease = StartingEase
	}

	switch rating {
	case models.RatingAgain:
		// Lapse: short fractional-day relearning step so the card comes
		// back within the same session.
		interval = LapseIntervalFactor * IntervalModifier
		ease = math.Max(MinEase, ease-0.2)
		card.LapseCount++
		if card.State == models.StateReview || card.State == models.StateRelearning {
			card.State = models.StateRelearning
		} else {
			card.State = models.StateLearning
		}

	case models.RatingHard:
		interval = interval * HardIntervalFactor * IntervalModifier
		ease = math.Max(MinEase, ease-0.15)
		if card.State == models.StateNew {
			card.State = models.StateLearning
		}

	case models.RatingGood:
		if card.IntervalDays == 0 {
			// First exposure: fixed seed step, card is not graduated yet.
			interval = seedIntervalDays
			card.State = models.StateLearning
		} else {
			interval = math.Max(seedIntervalDays, interval*ease*IntervalModifier)
			card.State = models.StateReview
		}

	case models.RatingEasy:
		base := interval
		if base < seedIntervalDays {
			base = seedIntervalDays
		}
		interval = base * ease * EasyBonus * IntervalModifier
		ease += 0.15
		card.State = models.StateReview
	}

	next := now.Add(durationForDays(interval))
	card.IntervalDays = interval
	card.EaseFactor = ease
	card.ReviewCount++
	last := now
	card.LastReview = &last
	card.NextReview = &next
	return card
}

// durationForDays converts a fractional day count to a duration.
func durationForDays(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}

// Difficulty reports the card's difficulty on an inverse-ease scale.
// Swappable formula: an FSRS upgrade replaces this function, not the model.
func Difficulty(card models.Card) float64 {
	if card.EaseFactor <= 0 {
		return 1 / StartingEase
	}
	return 1 / card.EaseFactor
}

// Retrievability estimates recall probability as exponential decay of time
// since the last review relative to the scheduled interval. Cards without a
// review yet report 0. Swappable formula, same caveat as Difficulty.
func Retrievability(card models.Card, now time.Time) float64 {
	if card.LastReview == nil || card.IntervalDays <= 0 {
		return 0
	}
	elapsedDays := now.Sub(*card.LastReview).Hours() / 24
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	return math.Exp(-elapsedDays / card.IntervalDays)
}

// IsGraduated reports whether the card shows as graduated: in Review with
// an interval at or above the display threshold.
func IsGraduated(card models.Card) bool {
	return card.State == models.StateReview && card.IntervalDays >= GraduatedIntervalDays
}
