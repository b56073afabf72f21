package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
)

const day = "2026-03-11"

var grid = []booking.TimeSlot{{Start: "06:00", End: "07:00", Available: true}}

func newRedis(t *testing.T) (*RedisAvailability, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisAvailabilityFromClient(client, time.Minute), mr
}

func TestAvailabilityKeys(t *testing.T) {
	assert.Equal(t, "availability:3:2026-03-11", availabilityKey(3, day))
	assert.Equal(t, "availability:3:2026-03-11:gen", generationKey(3, day))
}

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Availability = Noop{}
	ctx := context.Background()

	c.Set(ctx, 1, day, 0, grid)
	slots, gen, ok := c.Get(ctx, 1, day)

	assert.False(t, ok)
	assert.Nil(t, slots)
	assert.Equal(t, NoGeneration, gen)
}

func TestRedisAvailability_SetAndGet(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, 1, day)
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	c.Set(ctx, 1, day, gen, grid)

	slots, _, ok := c.Get(ctx, 1, day)
	require.True(t, ok)
	assert.Equal(t, grid, slots)

	ttl := mr.TTL(availabilityKey(1, day))
	assert.Equal(t, time.Minute, ttl)
}

func TestRedisAvailability_InvalidateDropsOlderGeneration(t *testing.T) {
	c, _ := newRedis(t)
	ctx := context.Background()

	// leitura começa, escrita invalida antes da leitura gravar
	_, gen, _ := c.Get(ctx, 1, day)
	c.Invalidate(ctx, 1, day)
	c.Set(ctx, 1, day, gen, grid)

	_, next, ok := c.Get(ctx, 1, day)
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)

	c.Set(ctx, 1, day, next, grid)
	_, _, ok = c.Get(ctx, 1, day)
	assert.True(t, ok)
}

func TestRedisAvailability_InvalidateClearsEachDate(t *testing.T) {
	c, _ := newRedis(t)
	ctx := context.Background()

	c.Set(ctx, 1, day, 0, grid)
	c.Set(ctx, 1, "2026-03-12", 0, grid)
	c.Set(ctx, 2, day, 0, grid)

	c.Invalidate(ctx, 1, day, "2026-03-12")

	_, _, ok := c.Get(ctx, 1, day)
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 1, "2026-03-12")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, 2, day)
	assert.True(t, ok)
}

func TestRedisAvailability_UnreachableIsMiss(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()
	mr.Close()

	_, gen, ok := c.Get(ctx, 1, day)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)

	c.Set(ctx, 1, day, gen, grid)
	c.Invalidate(ctx, 1, day)
}
