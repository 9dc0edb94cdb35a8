package memory

import (
	"context"
	"time"

	"prorent/internal/domain/reservation"
)

// DraftStore keeps one reservation draft per session for ttl.
type DraftStore struct {
	items *ttlMap[reservation.Draft]
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{items: newTTLMap[reservation.Draft](ttl)}
}

func (s *DraftStore) Get(ctx context.Context, owner string) (reservation.Draft, error) {
	draft, ok := s.items.get(owner)
	if !ok {
		return reservation.Draft{}, reservation.ErrDraftNotFound
	}
	return draft, nil
}

func (s *DraftStore) Put(ctx context.Context, owner string, draft reservation.Draft) error {
	s.items.set(owner, draft, s.items.ttl)
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, owner string) error {
	if !s.items.delete(owner) {
		return reservation.ErrDraftNotFound
	}
	return nil
}

var _ reservation.DraftStore = (*DraftStore)(nil)
