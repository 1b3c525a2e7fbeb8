package service

import (
	"context"
	"time"

	"tableorder/analytics-svc/internal/domain"
)

type SnapshotStore interface {
	// Snapshot reads orders created and sessions started in [from, to).
	Snapshot(ctx context.Context, restaurantID int, from, to time.Time) (*domain.Snapshot, error)
}

type StatsCache interface {
	// GetStatistics returns nil, nil on a miss or when the bundle predates the
	// restaurant's latest invalidation.
	GetStatistics(ctx context.Context, restaurantID int, timeRange domain.TimeRange, date string) (*domain.StatisticsBundle, error)
	SetStatistics(ctx context.Context, date string, bundle *domain.StatisticsBundle) error
	LiveCounters(ctx context.Context, restaurantID int, date string) (*domain.LiveCounters, error)
}

type AnalyticsInterface interface {
	Statistics(ctx context.Context, restaurantID int, timeRange string) (*domain.StatisticsBundle, error)
	LiveCounters(ctx context.Context, restaurantID int) (*domain.LiveCounters, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
