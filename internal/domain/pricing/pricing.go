package pricing

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"cloud.google.com/go/civil"

	"prorent/internal/domain/shared/datekey"
)

var (
	ErrInvalidPrice    = errors.New("pricing: price must be a finite non-negative number")
	ErrInvalidPeakRate = errors.New("pricing: peak rate start date must be before end date")
	ErrInvalidRateType = errors.New("pricing: unknown rate type")
)

type RateType string

const (
	RateFixed      RateType = "FIXED"
	RatePercentage RateType = "PERCENTAGE"
)

func (r RateType) Valid() bool {
	return r == RateFixed || r == RatePercentage
}

// PeakRate overrides the nightly price over [StartDate, EndDate). Value is the
// final nightly amount whatever the RateType.
type PeakRate struct {
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"`
	RateType  RateType   `json:"rate_type"`
	Value     float64    `json:"value"`
}

func (p PeakRate) Covers(d civil.Date) bool {
	return !d.Before(p.StartDate) && d.Before(p.EndDate)
}

// RoomType is a read-only snapshot owned by the backend.
type RoomType struct {
	ID                string     `json:"id"`
	PropertyID        string     `json:"property_id"`
	Name              string     `json:"name"`
	BasePrice         float64    `json:"base_price"`
	UpcomingPeakRates []PeakRate `json:"upcoming_peak_rates"`
}

// Clone returns a copy that shares no peak-rate storage with rt.
func (rt RoomType) Clone() RoomType {
	rt.UpcomingPeakRates = slices.Clone(rt.UpcomingPeakRates)
	return rt
}

// PriceMap maps date keys to peak nightly prices. Days without a key are
// priced at the room type's base price.
type PriceMap map[string]float64

func (m PriceMap) PriceFor(key string, basePrice float64) float64 {
	if price, ok := m[key]; ok {
		return price
	}
	return basePrice
}

func (m PriceMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// BuildPriceMap lays every peak-rate window over the calendar in order, one
// calendar day at a time; later windows win on overlapping days.
func BuildPriceMap(rt RoomType) PriceMap {
	out := make(PriceMap)
	for _, rate := range rt.UpcomingPeakRates {
		for d := rate.StartDate; d.Before(rate.EndDate); d = d.AddDays(1) {
			out[datekey.KeyOfDate(d)] = rate.Value
		}
	}
	return out
}

// ValidateRoomType reports snapshots BuildPriceMap would render meaninglessly.
func ValidateRoomType(rt RoomType) error {
	if !validPrice(rt.BasePrice) {
		return fmt.Errorf("%w: base price", ErrInvalidPrice)
	}
	for i, rate := range rt.UpcomingPeakRates {
		if err := ValidatePeakRate(rate); err != nil {
			return fmt.Errorf("peak rate %d: %w", i, err)
		}
	}
	return nil
}

func ValidatePeakRate(rate PeakRate) error {
	if !rate.StartDate.IsValid() || !rate.EndDate.IsValid() || !rate.StartDate.Before(rate.EndDate) {
		return ErrInvalidPeakRate
	}
	if !rate.RateType.Valid() {
		return ErrInvalidRateType
	}
	if !validPrice(rate.Value) {
		return ErrInvalidPrice
	}
	return nil
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
