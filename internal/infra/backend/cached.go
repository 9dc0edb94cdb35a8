package backend

import (
	"context"
	"log/slog"
	"time"

	"prorent/internal/app/policies"
	"prorent/internal/domain/availability"
	"prorent/internal/domain/pricing"
)

// Cache is the key/value surface CachedCatalog needs; memory and redis stores satisfy it.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedCatalog serves room-type snapshots and unavailable dates from Cache,
// falling through to the backend on a miss. Cache failures degrade to a miss.
type CachedCatalog struct {
	Source policies.Catalog
	Cache  Cache
	TTL    time.Duration
	Logger *slog.Logger
}

func (c *CachedCatalog) RoomType(ctx context.Context, id string) (pricing.RoomType, error) {
	key := "room-type:" + id
	var cached pricing.RoomType
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	rt, err := c.Source.RoomType(ctx, id)
	if err != nil {
		return pricing.RoomType{}, err
	}
	c.store(ctx, key, rt)
	return rt, nil
}

func (c *CachedCatalog) UnavailableDates(ctx context.Context, roomTypeID string) (availability.UnavailableDateSet, error) {
	key := "unavailable:" + roomTypeID
	var keys []string
	if c.lookup(ctx, key, &keys) {
		return availability.NewUnavailableDateSet(keys...), nil
	}
	set, err := c.Source.UnavailableDates(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, set.Keys())
	return set, nil
}

func (c *CachedCatalog) lookup(ctx context.Context, key string, out any) bool {
	if c.Cache == nil || c.TTL <= 0 {
		return false
	}
	ok, err := c.Cache.Get(ctx, key, out)
	if err != nil {
		c.warn("catalog cache read failed", key, err)
		return false
	}
	return ok
}

func (c *CachedCatalog) store(ctx context.Context, key string, value any) {
	if c.Cache == nil || c.TTL <= 0 {
		return
	}
	if err := c.Cache.Set(ctx, key, value, c.TTL); err != nil {
		c.warn("catalog cache write failed", key, err)
	}
}

func (c *CachedCatalog) warn(msg, key string, err error) {
	if c.Logger != nil {
		c.Logger.Warn(msg, "key", key, "error", err)
	}
}

var _ policies.Catalog = (*CachedCatalog)(nil)
var _ policies.Catalog = (*Client)(nil)
var _ policies.ReservationGateway = (*Client)(nil)
