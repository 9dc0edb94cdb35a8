package reservation

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrDraftNotFound = errors.New("reservation: draft not found")
	ErrDraftOwner    = errors.New("reservation: draft owner required")
)

// Draft is the half-filled booking form kept between page loads.
type Draft struct {
	RoomTypeID string    `json:"room_type_id"`
	CheckIn    string    `json:"check_in,omitempty"`
	CheckOut   string    `json:"check_out,omitempty"`
	Guests     int       `json:"guests,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DraftStore keeps one draft per session owner.
type DraftStore interface {
	Get(ctx context.Context, owner string) (Draft, error)
	Put(ctx context.Context, owner string, draft Draft) error
	Delete(ctx context.Context, owner string) error
}

func OwnerKey(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrDraftOwner
	}
	return token, nil
}
