package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// releaseScript deletes the lock only when the holder's token still owns
// it, so a release after TTL expiry cannot drop someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard enforces at most one full-document validation in flight per
// editor session using SET NX with a TTL. The TTL bounds how long a
// crashed holder can block the session.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

// Acquire takes the session lock or fails with ErrSubmitInFlight. The
// returned release func is safe to call after the TTL has expired.
func (g *RedisGuard) Acquire(ctx domain.Context, sessionID string) (func(), error) {
	key := "submit:" + sessionID
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("op=editor.guard: %w", err)
	}
	if !ok {
		return nil, domain.ErrSubmitInFlight
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, g.rdb, []string{key}, token).Err(); err != nil && err != redis.Nil {
			slog.Warn("failed to release submit lock",
				slog.String("session_id", sessionID),
				slog.Any("error", err))
		}
	}
	return release, nil
}
