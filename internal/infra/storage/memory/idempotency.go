package memory

import (
	"context"
	"time"

	"prorent/internal/app/middleware"
)

// IdempotencyStore keeps command results in memory for ttl.
type IdempotencyStore struct {
	items *ttlMap[middleware.IdempotencyRecord]
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{items: newTTLMap[middleware.IdempotencyRecord](ttl)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	rec, ok := s.items.get(key)
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.items.set(rec.Key, rec, s.items.ttl)
	return nil
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
