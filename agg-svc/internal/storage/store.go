package storage

import (
	"context"
	"time"

	"tableorder/config"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const scanBatch = 100

type Store struct {
	rdb     *redis.Client
	liveTTL time.Duration
	now     func() time.Time
}

func NewStore(rdb *redis.Client, liveTTL time.Duration) *Store {
	return &Store{rdb: rdb, liveTTL: liveTTL, now: time.Now}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// InvalidateStatistics stamps the invalidation time, so bundles computed
// before it are ignored, then deletes every cached range of the restaurant.
func (s *Store) InvalidateStatistics(ctx context.Context, restaurantID int) error {
	if err := s.rdb.Set(ctx, config.StatsInvalidatedKey(restaurantID), s.now().UnixNano(), 0).Err(); err != nil {
		return err
	}
	iter := s.rdb.Scan(ctx, 0, config.StatsCachePattern(restaurantID), scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *Store) AddLiveOrder(ctx context.Context, restaurantID int, date string, total decimal.Decimal) error {
	key := config.LiveCountersKey(date, restaurantID)
	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, config.LiveFieldOrders, 1)
	pipe.HIncrBy(ctx, key, config.LiveFieldRevenueCents, cents(total))
	pipe.Expire(ctx, key, s.liveTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// RetractLiveOrder removes a cancelled order's revenue; the order still counts
// as placed and is tallied under cancelled.
func (s *Store) RetractLiveOrder(ctx context.Context, restaurantID int, date string, total decimal.Decimal) error {
	key := config.LiveCountersKey(date, restaurantID)
	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, config.LiveFieldCancelled, 1)
	pipe.HIncrBy(ctx, key, config.LiveFieldRevenueCents, -cents(total))
	pipe.Expire(ctx, key, s.liveTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func cents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
