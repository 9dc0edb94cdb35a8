package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"prorent/internal/domain/reservation"
	"prorent/internal/domain/shared/datekey"
)

type reservationRequest struct {
	RoomTypeID string    `json:"roomTypeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Guests     int       `json:"guests"`
}

type reservationResponse struct {
	ID         string    `json:"id"`
	RoomTypeID string    `json:"roomTypeId"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateReservation forwards an accepted request with the caller's bearer token.
// Writes are never coalesced.
func (c *Client) CreateReservation(ctx context.Context, token string, req reservation.Request) (reservation.Receipt, error) {
	payload := reservationRequest{
		RoomTypeID: req.RoomTypeID,
		StartDate:  req.Stay.CheckIn,
		EndDate:    req.Stay.CheckOut,
		Guests:     req.Guests,
	}
	var resp reservationResponse
	if err := c.do(ctx, http.MethodPost, "/reservations", strings.TrimSpace(token), payload, &resp); err != nil {
		return reservation.Receipt{}, err
	}
	receipt := reservation.Receipt{
		ID:         resp.ID,
		RoomTypeID: resp.RoomTypeID,
		Status:     resp.Status,
		CheckIn:    datekey.ToDateKey(req.Stay.CheckIn),
		CheckOut:   datekey.ToDateKey(req.Stay.CheckOut),
		Nights:     req.Stay.Nights(),
		Guests:     req.Guests,
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt,
	}
	if receipt.RoomTypeID == "" {
		receipt.RoomTypeID = req.RoomTypeID
	}
	if receipt.Status == "" {
		receipt.Status = "PENDING_PAYMENT"
	}
	return receipt, nil
}
