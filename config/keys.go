package config

import "fmt"

// Redis keys shared by analytics-svc and agg-svc.

// StatsCacheKey names one cached statistics bundle; date is the local
// calendar day the bundle was computed on (YYYY-MM-DD).
func StatsCacheKey(restaurantID int, timeRange, date string) string {
	return fmt.Sprintf("stats:%d:%s:%s", restaurantID, timeRange, date)
}

func StatsCachePattern(restaurantID int) string {
	return fmt.Sprintf("stats:%d:*", restaurantID)
}

// StatsInvalidatedKey holds the UnixNano time of the restaurant's latest
// invalidation. Bundles generated before it are stale.
func StatsInvalidatedKey(restaurantID int) string {
	return fmt.Sprintf("statsinv:%d", restaurantID)
}

// LiveCountersKey names the hash of one restaurant's running totals for a local date (YYYY-MM-DD).
func LiveCountersKey(date string, restaurantID int) string {
	return fmt.Sprintf("live:%s:%d", date, restaurantID)
}

const (
	LiveFieldOrders       = "orders"
	LiveFieldCancelled    = "cancelled"
	LiveFieldRevenueCents = "revenue_cents"
	LiveDateLayout        = "2006-01-02"
)
