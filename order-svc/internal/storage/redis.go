package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"tableorder/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) AckMarkerKey(orderID int) string {
	return "order:ack:" + strconv.Itoa(orderID)
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

const lockRetryInterval = 25 * time.Millisecond

// releaseLock deletes the key only while it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisTableLocker serializes session bookkeeping per table across order-svc replicas.
type RedisTableLocker struct {
	Client *redis.Client
	TTL    time.Duration
	Wait   time.Duration
}

func NewRedisTableLocker(client *redis.Client, ttl time.Duration) *RedisTableLocker {
	return &RedisTableLocker{Client: client, TTL: ttl, Wait: ttl}
}

func (l *RedisTableLocker) lockKey(tableID int) string {
	return "lock:table:" + strconv.Itoa(tableID)
}

func (l *RedisTableLocker) Lock(ctx context.Context, tableID int) (func(), error) {
	key := l.lockKey(tableID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.Wait)

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// the caller's context may already be done
				_ = releaseLock.Run(context.Background(), l.Client, []string{key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrTableLocked
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, domain.ErrTableLocked
			}
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}
