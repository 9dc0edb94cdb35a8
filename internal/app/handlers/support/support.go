package support

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"prorent/internal/app/policies"
	"prorent/internal/domain/availability"
	"prorent/internal/domain/pricing"
)

var (
	ErrInvalidInput   = errors.New("app: invalid input")
	ErrCatalogMissing = errors.New("app: catalog not configured")
)

// Invalid wraps ErrInvalidInput with a reason shown to the caller.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func RoomTypeID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", Invalid("room type id is required")
	}
	return id, nil
}

// LoadRoomState fetches the room-type snapshot and its unavailable nights
// concurrently. The snapshot is checked before it is returned.
func LoadRoomState(ctx context.Context, catalog policies.Catalog, roomTypeID string) (pricing.RoomType, availability.UnavailableDateSet, error) {
	if catalog == nil {
		return pricing.RoomType{}, nil, ErrCatalogMissing
	}
	var (
		rt      pricing.RoomType
		blocked availability.UnavailableDateSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rt, err = LoadRoomType(gctx, catalog, roomTypeID)
		return err
	})
	g.Go(func() error {
		var err error
		blocked, err = catalog.UnavailableDates(gctx, roomTypeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return pricing.RoomType{}, nil, err
	}
	if blocked == nil {
		blocked = availability.NewUnavailableDateSet()
	}
	return rt, blocked, nil
}

func LoadRoomType(ctx context.Context, catalog policies.Catalog, roomTypeID string) (pricing.RoomType, error) {
	if catalog == nil {
		return pricing.RoomType{}, ErrCatalogMissing
	}
	rt, err := catalog.RoomType(ctx, roomTypeID)
	if err != nil {
		return pricing.RoomType{}, err
	}
	if err := pricing.ValidateRoomType(rt); err != nil {
		return pricing.RoomType{}, fmt.Errorf("room type %s: %w", roomTypeID, err)
	}
	return rt, nil
}
