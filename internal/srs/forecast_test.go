package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/srs"
)

func TestForecast_BucketsByCalendarDay(t *testing.T) {
	tomorrow := testNow.AddDate(0, 0, 1)
	tomorrowLater := tomorrow.Add(2 * time.Hour)
	inTen := testNow.AddDate(0, 0, 10)

	cards := []models.Card{
		scheduledCard("a", tomorrow),
		scheduledCard("b", tomorrowLater),
		scheduledCard("c", inTen),
		newCard("never-reviewed", testNow),
	}

	buckets := srs.Forecast(cards, testNow, 30)

	assert.Equal(t, 2, buckets[tomorrow.Format(srs.DateLayout)], "same-day cards share a bucket")
	assert.Equal(t, 1, buckets[inTen.Format(srs.DateLayout)])
	assert.Len(t, buckets, 2, "cards without a next review never appear")
}

func TestForecast_HorizonExcludesDistantCards(t *testing.T) {
	cards := []models.Card{
		scheduledCard("near", testNow.AddDate(0, 0, 3)),
		scheduledCard("far", testNow.AddDate(0, 0, 40)),
		scheduledCard("past", testNow.Add(-time.Hour)),
	}

	buckets := srs.Forecast(cards, testNow, 7)

	assert.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[testNow.AddDate(0, 0, 3).Format(srs.DateLayout)])
}

func TestForecast_WeekHorizonGrid(t *testing.T) {
	cards := []models.Card{
		scheduledCard("d1", testNow.AddDate(0, 0, 1)),
		scheduledCard("d3a", testNow.AddDate(0, 0, 3)),
		scheduledCard("d3b", testNow.AddDate(0, 0, 3)),
		scheduledCard("d10", testNow.AddDate(0, 0, 10)),
	}

	buckets := srs.Forecast(cards, testNow, 7)

	assert.Equal(t, 1, buckets[testNow.AddDate(0, 0, 1).Format(srs.DateLayout)])
	assert.Equal(t, 2, buckets[testNow.AddDate(0, 0, 3).Format(srs.DateLayout)])
	assert.NotContains(t, buckets, testNow.AddDate(0, 0, 10).Format(srs.DateLayout), "day ten lies outside the horizon")
}

func TestNextDue(t *testing.T) {
	soon := testNow.Add(2 * time.Hour)
	later := testNow.AddDate(0, 0, 5)

	cards := []models.Card{
		scheduledCard("later", later),
		scheduledCard("soon", soon),
		scheduledCard("past", testNow.Add(-time.Hour)),
	}

	next := srs.NextDue(cards, testNow)
	require.NotNil(t, next)
	assert.Equal(t, soon, *next)

	assert.Nil(t, srs.NextDue(nil, testNow), "no upcoming card means no next due")
}

func TestSumDays(t *testing.T) {
	buckets := map[string]int{
		testNow.AddDate(0, 0, 1).Format(srs.DateLayout):  3,
		testNow.AddDate(0, 0, 2).Format(srs.DateLayout):  2,
		testNow.AddDate(0, 0, 8).Format(srs.DateLayout):  5,
		testNow.AddDate(0, 0, 20).Format(srs.DateLayout): 1,
	}

	assert.Equal(t, 3, srs.SumDays(buckets, testNow, 1, 1))
	assert.Equal(t, 5, srs.SumDays(buckets, testNow, 1, 3))
	assert.Equal(t, 6, srs.SumDays(buckets, testNow, 7, 30))
	assert.Zero(t, srs.SumDays(buckets, testNow, 4, 6))
}

func TestSumDays_CardCanAppearInOverlappingRanges(t *testing.T) {
	// A card due tomorrow counts both in the one-day and the three-day view.
	buckets := map[string]int{
		testNow.AddDate(0, 0, 1).Format(srs.DateLayout): 1,
	}

	assert.Equal(t, 1, srs.SumDays(buckets, testNow, 1, 1))
	assert.Equal(t, 1, srs.SumDays(buckets, testNow, 1, 3))
}
