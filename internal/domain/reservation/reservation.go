package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"prorent/internal/domain/pricing"
	"prorent/internal/domain/shared/datekey"
	"prorent/internal/domain/shared/daterange"
)

const (
	MinGuests = 1
	MaxGuests = 20
)

var (
	ErrDatesUnavailable = errors.New("reservation: dates unavailable")
	ErrInvalidGuests    = errors.New("reservation: invalid guest count")
	ErrRoomTypeRequired = errors.New("reservation: room type required")
)

// ConflictError lists the nights that blocked a submission.
type ConflictError struct {
	Dates []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDatesUnavailable.Error(), strings.Join(e.Dates, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrDatesUnavailable
}

func NewConflictError(dates []string) *ConflictError {
	return &ConflictError{Dates: append([]string(nil), dates...)}
}

// Request is what gets forwarded to the backend once the range is clear.
type Request struct {
	RoomTypeID string
	Stay       daterange.DateRange
	Guests     int
}

func NewRequest(roomTypeID string, checkIn, checkOut time.Time, guests int) (Request, error) {
	roomTypeID = strings.TrimSpace(roomTypeID)
	if roomTypeID == "" {
		return Request{}, ErrRoomTypeRequired
	}
	if guests < MinGuests || guests > MaxGuests {
		return Request{}, ErrInvalidGuests
	}
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return Request{}, err
	}
	return Request{RoomTypeID: roomTypeID, Stay: stay, Guests: guests}, nil
}

type Receipt struct {
	ID         string    `json:"id"`
	RoomTypeID string    `json:"room_type_id"`
	Status     string    `json:"status"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// Quote sums the nightly prices of the stay. Nights missing from prices are
// charged at the base price.
func Quote(stay daterange.DateRange, prices pricing.PriceMap, basePrice float64) float64 {
	start := datekey.DateOf(stay.CheckIn)
	end := datekey.DateOf(stay.CheckOut)
	total := 0.0
	for d := start; d.Before(end); d = d.AddDays(1) {
		total += prices.PriceFor(datekey.KeyOfDate(d), basePrice)
	}
	return total
}
