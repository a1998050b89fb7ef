package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisabot-dev/paisabot/internal/model"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStore_GetOrCreate_Zeroed(t *testing.T) {
	s := newTestRedisStore(t)

	rec, err := s.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, rec.Budget.IsZero())
	assert.True(t, rec.Spent.IsZero())
}

func TestRedisStore_Update_RoundTrip(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, 7, func(r *model.Record) {
		r.Budget = dec("5000")
		r.Spent = dec("150.25")
	})
	require.NoError(t, err)
	_, err = s.Update(ctx, 7, func(r *model.Record) {
		r.Spent = r.Spent.Add(dec("49.75"))
	})
	require.NoError(t, err)

	rec, err := s.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.True(t, rec.Budget.Equal(dec("5000")))
	assert.True(t, rec.Spent.Equal(dec("200")), "got %s", rec.Spent)
}

func TestRedisStore_DistinctChats(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, 1, func(r *model.Record) { r.Income = dec("100") })
	require.NoError(t, err)
	_, err = s.Update(ctx, 2, func(r *model.Record) { r.Income = dec("200") })
	require.NoError(t, err)

	a, _ := s.GetOrCreate(ctx, 1)
	b, _ := s.GetOrCreate(ctx, 2)
	assert.True(t, a.Income.Equal(dec("100")))
	assert.True(t, b.Income.Equal(dec("200")))
}
