package policies

import (
	"context"

	"prorent/internal/domain/availability"
	"prorent/internal/domain/pricing"
	"prorent/internal/domain/reservation"
)

// Catalog serves room-type snapshots and their blocked nights.
type Catalog interface {
	RoomType(ctx context.Context, id string) (pricing.RoomType, error)
	UnavailableDates(ctx context.Context, roomTypeID string) (availability.UnavailableDateSet, error)
}

// ReservationGateway forwards accepted requests with the caller's session token.
type ReservationGateway interface {
	CreateReservation(ctx context.Context, token string, req reservation.Request) (reservation.Receipt, error)
}
