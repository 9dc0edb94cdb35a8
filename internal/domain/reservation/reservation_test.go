package reservation

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

func jakarta(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, datekey.Zone())
}

func TestNewRequest(t *testing.T) {
	in := jakarta(2025, time.August, 1, 14)
	out := jakarta(2025, time.August, 3, 12)

	req, err := NewRequest(" rt-1 ", in, out, 2)
	require.NoError(t, err)
	assert.Equal(t, "rt-1", req.RoomTypeID)
	assert.Equal(t, 2, req.Stay.Nights())

	_, err = NewRequest("", in, out, 2)
	assert.ErrorIs(t, err, ErrRoomTypeRequired)

	_, err = NewRequest("rt-1", in, out, 0)
	assert.ErrorIs(t, err, ErrInvalidGuests)

	_, err = NewRequest("rt-1", in, out, MaxGuests+1)
	assert.ErrorIs(t, err, ErrInvalidGuests)

	_, err = NewRequest("rt-1", out, in, 2)
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestConflictError(t *testing.T) {
	dates := []string{"2025-08-02", "2025-08-03"}
	err := NewConflictError(dates)
	dates[0] = "mutated"

	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.Equal(t, []string{"2025-08-02", "2025-08-03"}, err.Dates)
	assert.Contains(t, err.Error(), "2025-08-02, 2025-08-03")
}

func TestQuote(t *testing.T) {
	rt := pricing.RoomType{
		BasePrice: 100,
		UpcomingPeakRates: []pricing.PeakRate{{
			StartDate: civil.Date{Year: 2025, Month: time.August, Day: 2},
			EndDate:   civil.Date{Year: 2025, Month: time.August, Day: 3},
			RateType:  pricing.RateFixed,
			Value:     250,
		}},
	}
	stay, err := daterange.New(jakarta(2025, time.August, 1, 14), jakarta(2025, time.August, 4, 12))
	require.NoError(t, err)

	assert.InDelta(t, 450.0, Quote(stay, pricing.BuildPriceMap(rt), rt.BasePrice), 1e-9)
}

func TestOwnerKey(t *testing.T) {
	_, err := OwnerKey("  ")
	assert.ErrorIs(t, err, ErrDraftOwner)

	key, err := OwnerKey(" tok ")
	require.NoError(t, err)
	assert.Equal(t, "tok", key)
}
