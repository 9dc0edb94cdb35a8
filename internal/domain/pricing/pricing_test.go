package pricing

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prorent/internal/domain/shared/datekey"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestBuildPriceMap_EmptyPeakRates(t *testing.T) {
	for _, base := range []float64{0, 1, 350000, 1e9} {
		got := BuildPriceMap(RoomType{BasePrice: base})
		require.NotNil(t, got)
		assert.Empty(t, got)

		got = BuildPriceMap(RoomType{BasePrice: base, UpcomingPeakRates: []PeakRate{}})
		assert.Empty(t, got)
	}
}

func TestBuildPriceMap_HalfOpenWindow(t *testing.T) {
	rt := RoomType{
		BasePrice: 50000,
		UpcomingPeakRates: []PeakRate{
			{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 4), RateType: RateFixed, Value: 100000},
		},
	}

	got := BuildPriceMap(rt)

	assert.Equal(t, PriceMap{
		"2025-08-01": 100000,
		"2025-08-02": 100000,
		"2025-08-03": 100000,
	}, got)
	assert.NotContains(t, got, "2025-08-04")
}

func TestBuildPriceMap_LaterWindowWinsOnOverlap(t *testing.T) {
	rt := RoomType{
		BasePrice: 50000,
		UpcomingPeakRates: []PeakRate{
			{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 3), RateType: RateFixed, Value: 100000},
			{StartDate: date(2025, 8, 2), EndDate: date(2025, 8, 5), RateType: RatePercentage, Value: 200000},
		},
	}

	assert.Equal(t, PriceMap{
		"2025-08-01": 100000,
		"2025-08-02": 200000,
		"2025-08-03": 200000,
		"2025-08-04": 200000,
	}, BuildPriceMap(rt))
}

func TestBuildPriceMap_CrossesMonthAndLeapDay(t *testing.T) {
	rt := RoomType{UpcomingPeakRates: []PeakRate{
		{StartDate: date(2024, 2, 28), EndDate: date(2024, 3, 2), RateType: RateFixed, Value: 1},
	}}

	got := BuildPriceMap(rt)

	assert.Len(t, got, 3)
	assert.Contains(t, got, "2024-02-29")
	assert.Contains(t, got, "2024-03-01")
}

func TestBuildPriceMap_EmptyOrReversedWindowContributesNothing(t *testing.T) {
	rt := RoomType{UpcomingPeakRates: []PeakRate{
		{StartDate: date(2025, 8, 5), EndDate: date(2025, 8, 5), Value: 1},
		{StartDate: date(2025, 8, 9), EndDate: date(2025, 8, 6), Value: 1},
	}}
	assert.Empty(t, BuildPriceMap(rt))
}

func TestBuildPriceMap_IdempotentAndDoesNotMutateInput(t *testing.T) {
	rates := []PeakRate{
		{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 3), RateType: RateFixed, Value: 100000},
		{StartDate: date(2025, 8, 2), EndDate: date(2025, 8, 5), RateType: RateFixed, Value: 200000},
	}
	snapshot := append([]PeakRate(nil), rates...)
	rt := RoomType{BasePrice: 1, UpcomingPeakRates: rates}

	first := BuildPriceMap(rt)
	second := BuildPriceMap(rt)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, rt.UpcomingPeakRates)

	first["2025-08-01"] = 0
	assert.Equal(t, float64(100000), second["2025-08-01"])
}

func TestBuildPriceMap_KeysMatchInstantKeys(t *testing.T) {
	rt := RoomType{UpcomingPeakRates: []PeakRate{
		{StartDate: date(2025, 12, 30), EndDate: date(2026, 1, 2), RateType: RateFixed, Value: 9},
	}}
	got := BuildPriceMap(rt)

	zone := datekey.Zone()
	for _, instant := range []time.Time{
		time.Date(2025, 12, 30, 0, 0, 0, 0, zone),
		time.Date(2025, 12, 31, 23, 59, 0, 0, zone),
		time.Date(2025, 12, 31, 17, 30, 0, 0, time.UTC),
	} {
		assert.True(t, got.Has(datekey.ToDateKey(instant)), instant.String())
	}
	assert.False(t, got.Has(datekey.ToDateKey(time.Date(2026, 1, 2, 0, 0, 0, 0, zone))))
}

func TestPriceMap_PriceForFallsBackToBase(t *testing.T) {
	m := PriceMap{"2025-08-01": 100000}
	assert.Equal(t, float64(100000), m.PriceFor("2025-08-01", 50000))
	assert.Equal(t, float64(50000), m.PriceFor("2025-08-02", 50000))
}

func TestValidateRoomType(t *testing.T) {
	valid := RoomType{BasePrice: 1, UpcomingPeakRates: []PeakRate{
		{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 2), RateType: RateFixed, Value: 2},
	}}
	require.NoError(t, ValidateRoomType(valid))

	cases := []struct {
		name string
		rt   RoomType
		want error
	}{
		{"nan base", RoomType{BasePrice: math.NaN()}, ErrInvalidPrice},
		{"negative base", RoomType{BasePrice: -1}, ErrInvalidPrice},
		{"reversed window", RoomType{UpcomingPeakRates: []PeakRate{{StartDate: date(2025, 8, 2), EndDate: date(2025, 8, 1), RateType: RateFixed}}}, ErrInvalidPeakRate},
		{"unknown rate type", RoomType{UpcomingPeakRates: []PeakRate{{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 2), RateType: "SURGE"}}}, ErrInvalidRateType},
		{"infinite value", RoomType{UpcomingPeakRates: []PeakRate{{StartDate: date(2025, 8, 1), EndDate: date(2025, 8, 2), RateType: RateFixed, Value: math.Inf(1)}}}, ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateRoomType(tc.rt), tc.want)
		})
	}
}
