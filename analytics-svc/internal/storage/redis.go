package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"tableorder/analytics-svc/internal/domain"
	"tableorder/config"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetStatistics(ctx context.Context, restaurantID int, timeRange domain.TimeRange, date string) (*domain.StatisticsBundle, error) {
	values, err := c.Client.MGet(ctx,
		config.StatsCacheKey(restaurantID, string(timeRange), date),
		config.StatsInvalidatedKey(restaurantID),
	).Result()
	if err != nil {
		return nil, err
	}
	data, ok := values[0].(string)
	if !ok {
		return nil, nil
	}

	var bundle domain.StatisticsBundle
	if err := json.Unmarshal([]byte(data), &bundle); err != nil {
		return nil, err
	}
	// A compute that raced an order event may have stored a bundle older than the event.
	if raw, ok := values[1].(string); ok {
		invalidatedAt, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && bundle.GeneratedAt.UnixNano() < invalidatedAt {
			return nil, nil
		}
	}
	return &bundle, nil
}

func (c *RedisCache) SetStatistics(ctx context.Context, date string, bundle *domain.StatisticsBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	key := config.StatsCacheKey(bundle.RestaurantID, string(bundle.TimeRange), date)
	return c.Client.Set(ctx, key, data, c.TTL).Err()
}

func (c *RedisCache) LiveCounters(ctx context.Context, restaurantID int, date string) (*domain.LiveCounters, error) {
	fields, err := c.Client.HGetAll(ctx, config.LiveCountersKey(date, restaurantID)).Result()
	if err != nil {
		return nil, err
	}

	counters := &domain.LiveCounters{RestaurantID: restaurantID, Date: date, Revenue: decimal.Zero}
	counters.Orders, _ = strconv.ParseInt(fields[config.LiveFieldOrders], 10, 64)
	counters.Cancelled, _ = strconv.ParseInt(fields[config.LiveFieldCancelled], 10, 64)
	if cents, err := strconv.ParseInt(fields[config.LiveFieldRevenueCents], 10, 64); err == nil {
		counters.Revenue = decimal.New(cents, -2)
	}
	return counters, nil
}
