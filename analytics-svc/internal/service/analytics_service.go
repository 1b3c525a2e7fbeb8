package service

import (
	"context"
	"log"
	"time"

	"tableorder/analytics-svc/internal/domain"
	"tableorder/config"
)

type AnalyticsService struct {
	store SnapshotStore
	cache StatsCache
	loc   *time.Location
	now   func() time.Time
}

func NewAnalyticsService(store SnapshotStore, cache StatsCache, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{store: store, cache: cache, loc: loc, now: time.Now}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Statistics serves the bundle from cache when present, otherwise reads one
// snapshot for the window and computes it. Cache failures only cost a recompute.
func (s *AnalyticsService) Statistics(ctx context.Context, restaurantID int, raw string) (*domain.StatisticsBundle, error) {
	if restaurantID <= 0 {
		return nil, ErrForbidden
	}
	timeRange, err := ParseTimeRange(raw)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	date := now.Format(config.LiveDateLayout)

	if s.cache != nil {
		cached, err := s.cache.GetStatistics(ctx, restaurantID, timeRange, date)
		if err != nil {
			log.Printf("Stats cache read failed for restaurant %d: %v", restaurantID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	from, err := WindowStart(now, timeRange)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.store.Snapshot(ctx, restaurantID, from, now)
	if err != nil {
		return nil, upstream("load statistics snapshot", err)
	}

	bundle := Compute(Input{
		RestaurantID: restaurantID,
		TimeRange:    timeRange,
		From:         from,
		To:           now,
		Snapshot:     *snapshot,
	})
	bundle.GeneratedAt = now

	if s.cache != nil {
		if err := s.cache.SetStatistics(ctx, date, &bundle); err != nil {
			log.Printf("Stats cache write failed for restaurant %d: %v", restaurantID, err)
		}
	}
	return &bundle, nil
}

// LiveCounters returns today's running totals; an empty day reads as zeros.
func (s *AnalyticsService) LiveCounters(ctx context.Context, restaurantID int) (*domain.LiveCounters, error) {
	if restaurantID <= 0 {
		return nil, ErrForbidden
	}
	date := s.now().In(s.loc).Format(config.LiveDateLayout)
	counters, err := s.cache.LiveCounters(ctx, restaurantID, date)
	if err != nil {
		return nil, upstream("read live counters", err)
	}
	return counters, nil
}
