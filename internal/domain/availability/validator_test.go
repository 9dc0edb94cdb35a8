package availability

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prorent/internal/domain/pricing"
	"prorent/internal/domain/shared/datekey"
	"prorent/internal/domain/shared/daterange"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, datekey.Zone())
}

func TestValidateDateRange_NoConflicts(t *testing.T) {
	got := ValidateDateRange(at(2025, 8, 1, 14, 0), at(2025, 8, 3, 12, 0), NewUnavailableDateSet())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateDateRange_ReportsConflictsInOrder(t *testing.T) {
	unavailable := NewUnavailableDateSet("2025-08-03", "2025-08-02")

	got := ValidateDateRange(at(2025, 8, 1, 0, 0), at(2025, 8, 4, 0, 0), unavailable)

	assert.Equal(t, []string{"2025-08-02", "2025-08-03"}, got)
}

func TestValidateDateRange_CheckoutDayNeverChecked(t *testing.T) {
	unavailable := NewUnavailableDateSet("2025-08-04")

	got := ValidateDateRange(at(2025, 8, 1, 0, 0), at(2025, 8, 4, 0, 0), unavailable)

	assert.Empty(t, got)
}

func TestValidateDateRange_CheckInDayIsChecked(t *testing.T) {
	// the offset lands on the same day key, so a blocked check-in day conflicts
	unavailable := NewUnavailableDateSet("2025-08-01")

	got := ValidateDateRange(at(2025, 8, 1, 0, 0), at(2025, 8, 3, 0, 0), unavailable)

	assert.Equal(t, []string{"2025-08-01"}, got)
}

func TestValidateDateRange_OffsetCrossesMidnight(t *testing.T) {
	// 23:59:30 + 1m is already the next day
	from := time.Date(2025, 7, 31, 23, 59, 30, 0, datekey.Zone())
	unavailable := NewUnavailableDateSet("2025-07-31")

	got := ValidateDateRange(from, at(2025, 8, 2, 12, 0), unavailable)

	assert.Empty(t, got)
}

func TestValidateDateRange_DegenerateRangeYieldsNothing(t *testing.T) {
	unavailable := NewUnavailableDateSet("2025-08-01", "2025-08-02")

	assert.Empty(t, ValidateDateRange(at(2025, 8, 2, 0, 0), at(2025, 8, 1, 0, 0), unavailable))
	assert.Empty(t, ValidateDateRange(at(2025, 8, 1, 0, 0), at(2025, 8, 1, 0, 0), unavailable))

	_, err := CheckRange(at(2025, 8, 2, 0, 0), at(2025, 8, 1, 0, 0))
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestValidateDateRange_InstantsInOtherZones(t *testing.T) {
	// 2025-08-01T00:00Z is 07:00 in Jakarta
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)
	unavailable := NewUnavailableDateSet("2025-08-02", "2025-08-03")

	assert.Equal(t, []string{"2025-08-02"}, ValidateDateRange(from, to, unavailable))
}

func TestValidateDateRange_IdempotentAndInputUntouched(t *testing.T) {
	unavailable := NewUnavailableDateSet("2025-08-02")
	from, to := at(2025, 8, 1, 0, 0), at(2025, 8, 4, 0, 0)

	first := ValidateDateRange(from, to, unavailable)
	second := ValidateDateRange(from, to, unavailable)

	assert.Equal(t, first, second)
	assert.Equal(t, NewUnavailableDateSet("2025-08-02"), unavailable)
	assert.Equal(t, at(2025, 8, 1, 0, 0), from)
}

func TestValidateDateRangeTraced_VisitsEveryNight(t *testing.T) {
	var visited []string
	unavailable := NewUnavailableDateSet("2025-08-02")

	ValidateDateRangeTraced(at(2025, 8, 1, 14, 0), at(2025, 8, 4, 12, 0), unavailable, func(key string, blocked bool) {
		visited = append(visited, key)
		assert.Equal(t, key == "2025-08-02", blocked)
	})

	assert.Equal(t, []string{"2025-08-01", "2025-08-02", "2025-08-03"}, visited)
}

func TestValidateDateRange_KeysAgreeWithPriceMap(t *testing.T) {
	rt := pricing.RoomType{UpcomingPeakRates: []pricing.PeakRate{{
		StartDate: civil.Date{Year: 2025, Month: time.August, Day: 1},
		EndDate:   civil.Date{Year: 2025, Month: time.August, Day: 6},
		RateType:  pricing.RateFixed,
		Value:     1,
	}}}
	priced := pricing.BuildPriceMap(rt)
	unavailable := NewUnavailableDateSet()
	for key := range priced {
		unavailable[key] = struct{}{}
	}

	got := ValidateDateRange(at(2025, 7, 30, 14, 0), at(2025, 8, 8, 12, 0), unavailable)

	assert.Equal(t, []string{"2025-08-01", "2025-08-02", "2025-08-03", "2025-08-04", "2025-08-05"}, got)
	for _, key := range got {
		assert.True(t, priced.Has(key))
	}
}

func TestUnavailableDateSet_KeysSorted(t *testing.T) {
	set := NewUnavailableDateSet("2025-08-03", " ", "2025-08-01", "2025-08-03")
	assert.Equal(t, []string{"2025-08-01", "2025-08-03"}, set.Keys())
	assert.Equal(t, 2, set.Len())
}
