package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"prorent/internal/domain/reservation"
)

type DraftStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

func NewDraftStore(rdb goredis.UniversalClient, ttl time.Duration) *DraftStore {
	return &DraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(owner string) string {
	return keyPrefix + "draft:" + owner
}

func (s *DraftStore) Get(ctx context.Context, owner string) (reservation.Draft, error) {
	raw, err := s.rdb.Get(ctx, draftKey(owner)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return reservation.Draft{}, reservation.ErrDraftNotFound
	}
	if err != nil {
		return reservation.Draft{}, err
	}
	var draft reservation.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return reservation.Draft{}, err
	}
	return draft, nil
}

func (s *DraftStore) Put(ctx context.Context, owner string, draft reservation.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKey(owner), raw, s.ttl).Err()
}

func (s *DraftStore) Delete(ctx context.Context, owner string) error {
	n, err := s.rdb.Del(ctx, draftKey(owner)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return reservation.ErrDraftNotFound
	}
	return nil
}

var _ reservation.DraftStore = (*DraftStore)(nil)
