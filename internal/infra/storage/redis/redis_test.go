package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prorent/internal/app/middleware"
	"prorent/internal/domain/reservation"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCache_TTL(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	c := NewCache(rdb)

	require.NoError(t, c.Set(ctx, "unavailable:rt-1", []string{"2025-08-02"}, 30*time.Second))
	var got []string
	ok, err := c.Get(ctx, "unavailable:rt-1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"2025-08-02"}, got)

	mr.FastForward(31 * time.Second)
	ok, err = c.Get(ctx, "unavailable:rt-1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftStore(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	s := NewDraftStore(rdb, time.Hour)

	_, err := s.Get(ctx, "tok")
	assert.ErrorIs(t, err, reservation.ErrDraftNotFound)

	draft := reservation.Draft{RoomTypeID: "rt-1", CheckIn: "2025-08-01", CheckOut: "2025-08-03", Guests: 2,
		UpdatedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Put(ctx, "tok", draft))
	got, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, draft, got)
	assert.Equal(t, time.Hour, mr.TTL("prorent:draft:tok"))

	require.NoError(t, s.Delete(ctx, "tok"))
	assert.ErrorIs(t, s.Delete(ctx, "tok"), reservation.ErrDraftNotFound)
}

func TestIdempotencyStore_FirstWriteWins(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	s := NewIdempotencyStore(rdb, time.Hour)

	require.NoError(t, s.Save(ctx, middleware.IdempotencyRecord{Key: "k", Payload: []byte(`{"id":"a"}`)}))
	require.NoError(t, s.Save(ctx, middleware.IdempotencyRecord{Key: "k", Payload: []byte(`{"id":"b"}`)}))

	rec, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"a"}`, string(rec.Payload))

	_, ok, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	mr, rdb := newRedis(t)
	check := Ping(rdb)
	assert.NoError(t, check(context.Background()))

	mr.Close()
	assert.Error(t, check(context.Background()))
}
