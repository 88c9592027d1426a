package editor

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

func newGuard(t *testing.T) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisGuard(rdb, time.Minute), mr
}

func TestGuard_SecondAcquireRejected(t *testing.T) {
	g, _ := newGuard(t)
	ctx := context.Background()

	release, err := g.Acquire(ctx, "sess-1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "sess-1")
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)

	// a different session is unaffected
	release2, err := g.Acquire(ctx, "sess-2")
	require.NoError(t, err)
	release2()

	release()
	_, err = g.Acquire(ctx, "sess-1")
	require.NoError(t, err)
}

func TestGuard_TTLExpiryFreesSession(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	_, err := g.Acquire(ctx, "sess-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = g.Acquire(ctx, "sess-1")
	require.NoError(t, err)
}

func TestGuard_StaleReleaseKeepsNewLock(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	release1, err := g.Acquire(ctx, "sess-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = g.Acquire(ctx, "sess-1")
	require.NoError(t, err)

	// the expired holder's release must not free the new holder's lock
	release1()
	_, err = g.Acquire(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
}
