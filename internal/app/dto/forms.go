package dto

import "time"

// ReservationForm is the booking form submitted by the calendar page.
type ReservationForm struct {
	RoomTypeID string    `json:"room_type_id" validate:"required,max=64"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
	Guests     int       `json:"guests" validate:"required,min=1,max=20"`
}

// RangeForm is the date pair checked before the booking form is shown.
type RangeForm struct {
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
}

// PeakRateForm is the owner-side peak-rate editor. StartDate < EndDate is a
// struct-level rule registered by the validator.
type PeakRateForm struct {
	StartDate string  `json:"start_date" validate:"required,datekey"`
	EndDate   string  `json:"end_date" validate:"required,datekey"`
	RateType  string  `json:"rate_type" validate:"required,oneof=FIXED PERCENTAGE"`
	Value     float64 `json:"value" validate:"gt=0"`
}

// DraftForm accepts partial input; dates are optional until submission.
type DraftForm struct {
	RoomTypeID string `json:"room_type_id" validate:"required,max=64"`
	CheckIn    string `json:"check_in" validate:"omitempty,datekey"`
	CheckOut   string `json:"check_out" validate:"omitempty,datekey"`
	Guests     int    `json:"guests" validate:"omitempty,min=1,max=20"`
}

type FormCheck struct {
	Valid bool `json:"valid"`
}
