package tests

import (
	"encoding/json"
	"testing"
	"time"

	"tableorder/analytics-svc/internal/domain"
	"tableorder/analytics-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 15, hour, minute, 0, 0, time.UTC)
}

func line(itemID int, name string, categoryID, quantity int, price string) domain.LineRecord {
	return domain.LineRecord{
		MenuItemID: itemID,
		Name:       name,
		CategoryID: categoryID,
		Quantity:   quantity,
		Price:      decimal.RequireFromString(price),
	}
}

func order(id, sessionID int, status string, createdAt time.Time, lines ...domain.LineRecord) domain.OrderRecord {
	return domain.OrderRecord{ID: id, TableID: sessionID, SessionID: sessionID, Status: status, CreatedAt: createdAt, Lines: lines}
}

func compute(timeRange domain.TimeRange, snapshot domain.Snapshot) domain.StatisticsBundle {
	from, _ := service.WindowStart(now, timeRange)
	return service.Compute(service.Input{
		RestaurantID: 10,
		TimeRange:    timeRange,
		From:         from,
		To:           now,
		Snapshot:     snapshot,
	})
}

func TestWindowStart(t *testing.T) {
	tests := []struct {
		timeRange domain.TimeRange
		want      time.Time
	}{
		{domain.RangeDay, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{domain.RangeWeek, time.Date(2026, 10, 8, 14, 30, 0, 0, time.UTC)},
		{domain.RangeMonth, time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)},
		{domain.RangeYear, time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.timeRange), func(t *testing.T) {
			got, err := service.WindowStart(now, tt.timeRange)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, err := service.WindowStart(now, "decade")
	assert.ErrorIs(t, err, service.ErrInvalidTimeRange)
}

func TestWindowStart_DayUsesLocalMidnight(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	got, err := service.WindowStart(now.In(tokyo), domain.RangeDay)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 15, 0, 0, 0, 0, tokyo).Equal(got))
	assert.True(t, time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC).Equal(got))
}

func TestParseTimeRange(t *testing.T) {
	got, err := service.ParseTimeRange(" WEEK ")
	require.NoError(t, err)
	assert.Equal(t, domain.RangeWeek, got)

	for _, raw := range []string{"", "hour", "days"} {
		_, err := service.ParseTimeRange(raw)
		assert.ErrorIs(t, err, service.ErrInvalidInput, raw)
	}
}

func TestCompute_ZeroOrdersDay(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{TableCount: 6})

	assert.Equal(t, 0, bundle.TotalOrders)
	assert.True(t, bundle.TotalRevenue.IsZero())
	assert.True(t, bundle.AverageOrderValue.IsZero())
	assert.Nil(t, bundle.LargestOrder)
	assert.Zero(t, bundle.AverageTableTime)
	assert.Zero(t, bundle.TableUtilization)
	assert.Zero(t, bundle.PendingOrders)
	assert.Zero(t, bundle.CompletedOrders)
	assert.Zero(t, bundle.CustomerRetention)
	assert.Zero(t, bundle.FirstTimeOrders)
	assert.Zero(t, bundle.AveragePartySize)
	assert.Zero(t, bundle.AverageItemsPerOrder)

	require.Len(t, bundle.HourlyDistribution, 24)
	for _, hour := range bundle.HourlyDistribution {
		assert.Zero(t, hour.Count)
		assert.False(t, hour.IsPeak)
	}
	require.Len(t, bundle.SalesOverTime.Hourly, 24)
	for _, b := range bundle.SalesOverTime.Hourly {
		assert.Zero(t, b.Orders)
	}

	data, err := json.Marshal(bundle)
	require.NoError(t, err)
	body := string(data)
	for _, field := range []string{`"topProducts":[]`, `"topCategories":[]`, `"itemPairings":[]`,
		`"daily":[]`, `"weekly":[]`, `"monthly":[]`} {
		assert.Contains(t, body, field)
	}
}

func TestCompute_RevenueAndOrderCounts(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{
		Orders: []domain.OrderRecord{
			order(1, 1, domain.StatusCompleted, at(9, 0), line(1, "Burger", 1, 2, "10.00"), line(2, "Fries", 1, 1, "5.00")),
			order(2, 2, domain.StatusPending, at(10, 0), line(3, "Steak", 1, 1, "25.00")),
			order(3, 2, domain.StatusCancelled, at(11, 0), line(3, "Steak", 1, 4, "25.00")),
			order(4, 3, domain.StatusDelivered, at(12, 0), line(4, "Soda", 2, 3, "3.50")),
		},
		Sessions: []domain.SessionRecord{
			{ID: 1, TableID: 1, Status: "active", StartTime: at(9, 0)},
			{ID: 2, TableID: 2, Status: "active", StartTime: at(10, 0)},
		},
	})

	assert.Equal(t, 4, bundle.TotalOrders)
	assert.Equal(t, "160.5", bundle.TotalRevenue.String())
	assert.Equal(t, "40.13", bundle.AverageOrderValue.String())
	require.NotNil(t, bundle.LargestOrder)
	assert.Equal(t, 3, bundle.LargestOrder.OrderID)
	assert.Equal(t, "100", bundle.LargestOrder.Total.String())
	assert.Equal(t, 2, bundle.PendingOrders, "cancelled is neither pending nor completed")
	assert.Equal(t, 1, bundle.CompletedOrders)
	assert.Equal(t, 2.75, bundle.AverageItemsPerOrder)
	assert.Equal(t, 2, bundle.FirstTimeOrders, "session 3 opened before the window")
}

func TestCompute_CancelledOrdersStayInRankings(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: []domain.OrderRecord{
		order(1, 1, domain.StatusCancelled, at(19, 0), line(1, "Steak", 1, 3, "25.00"), line(2, "Wine", 2, 1, "8.00")),
		order(2, 1, domain.StatusPending, at(20, 0), line(3, "Soup", 1, 1, "6.00")),
	}})

	require.Len(t, bundle.TopProducts, 3)
	assert.Equal(t, 1, bundle.TopProducts[0].MenuItemID)
	require.Len(t, bundle.ItemPairings, 1)
	assert.Equal(t, 1, bundle.ItemPairings[0].Count)
	assert.Equal(t, 1, bundle.HourlyDistribution[19].Count)
	assert.Equal(t, 1, bundle.SalesOverTime.Hourly[19].Orders)
	assert.Equal(t, "83", bundle.SalesOverTime.Hourly[19].Revenue.String())
	assert.Equal(t, "89", bundle.TotalRevenue.String())
	assert.Zero(t, bundle.CompletedOrders)
	assert.Equal(t, 1, bundle.PendingOrders)
}

func TestCompute_TopProductsCappedAndStable(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: []domain.OrderRecord{
		order(1, 1, domain.StatusPending, at(9, 0),
			line(1, "A", 1, 3, "1.00"), line(2, "B", 1, 5, "1.00"), line(3, "C", 1, 3, "1.00"), line(4, "D", 1, 1, "1.00")),
		order(2, 1, domain.StatusPending, at(9, 5),
			line(5, "E", 1, 3, "1.00"), line(6, "F", 1, 3, "1.00"), line(7, "G", 1, 2, "1.00")),
	}})

	require.Len(t, bundle.TopProducts, 5)
	var ids []int
	for _, p := range bundle.TopProducts {
		ids = append(ids, p.MenuItemID)
	}
	assert.Equal(t, []int{2, 1, 3, 5, 6}, ids)
	assert.Equal(t, "5", bundle.TopProducts[0].Revenue.String())
}

func TestCompute_DanglingItemsDegrade(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{
		Orders: []domain.OrderRecord{
			order(1, 1, domain.StatusPending, at(9, 0), line(42, "", 0, 2, "4.00"), line(1, "Burger", 7, 1, "10.00")),
		},
		Categories: map[int]string{},
	})

	require.Len(t, bundle.TopProducts, 2)
	assert.Equal(t, domain.UnknownItemName, bundle.TopProducts[0].Name)
	require.Len(t, bundle.TopCategories, 2)
	assert.Equal(t, domain.UncategorizedLabel, bundle.TopCategories[0].Name)
	assert.Equal(t, domain.UncategorizedLabel, bundle.TopCategories[1].Name)
	require.Len(t, bundle.ItemPairings, 1)
	assert.Equal(t, domain.UnknownItemName, bundle.ItemPairings[0].Items[1].Name)
}

func TestCompute_TopCategories(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{
		Orders: []domain.OrderRecord{
			order(1, 1, domain.StatusPending, at(9, 0), line(1, "Burger", 1, 3, "10.00"), line(2, "Cola", 2, 1, "2.00")),
			order(2, 1, domain.StatusPending, at(9, 30), line(3, "Mystery", 99, 1, "1.00")),
		},
		Categories: map[int]string{1: "Mains", 2: "Drinks"},
	})

	require.Len(t, bundle.TopCategories, 3)
	assert.Equal(t, domain.CategoryStat{CategoryID: 1, Name: "Mains", Quantity: 3, Percentage: 60}, bundle.TopCategories[0])
	assert.Equal(t, domain.CategoryStat{CategoryID: 2, Name: "Drinks", Quantity: 1, Percentage: 20}, bundle.TopCategories[1])
	assert.Equal(t, domain.CategoryStat{CategoryID: 99, Name: domain.UncategorizedLabel, Quantity: 1, Percentage: 20}, bundle.TopCategories[2])
}

func TestCompute_ItemPairingsCanonical(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: []domain.OrderRecord{
		order(1, 1, domain.StatusPending, at(9, 0), line(1, "A", 1, 1, "1.00"), line(2, "B", 1, 1, "1.00"), line(3, "C", 1, 1, "1.00")),
		order(2, 1, domain.StatusPending, at(9, 0), line(2, "B", 1, 1, "1.00"), line(1, "A", 1, 1, "1.00")),
		order(3, 1, domain.StatusPending, at(9, 0), line(3, "C", 1, 1, "1.00"), line(3, "C", 1, 2, "1.00"), line(1, "A", 1, 1, "1.00")),
	}})

	require.Len(t, bundle.ItemPairings, 3)
	assert.Equal(t, [2]domain.PairedItem{{MenuItemID: 1, Name: "A"}, {MenuItemID: 2, Name: "B"}}, bundle.ItemPairings[0].Items)
	assert.Equal(t, 2, bundle.ItemPairings[0].Count)
	assert.Equal(t, [2]domain.PairedItem{{MenuItemID: 1, Name: "A"}, {MenuItemID: 3, Name: "C"}}, bundle.ItemPairings[1].Items)
	assert.Equal(t, 2, bundle.ItemPairings[1].Count)
	assert.Equal(t, 1, bundle.ItemPairings[2].Count)
}

func TestCompute_ItemPairingsCapped(t *testing.T) {
	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: []domain.OrderRecord{
		order(1, 1, domain.StatusPending, at(9, 0),
			line(1, "A", 1, 1, "1.00"), line(2, "B", 1, 1, "1.00"), line(3, "C", 1, 1, "1.00"),
			line(4, "D", 1, 1, "1.00"), line(5, "E", 1, 1, "1.00")),
	}})

	assert.Len(t, bundle.ItemPairings, 5)
}

func TestCompute_HourlyDistribution(t *testing.T) {
	var orders []domain.OrderRecord
	add := func(hour, n int) {
		for i := 0; i < n; i++ {
			orders = append(orders, order(len(orders)+1, 1, domain.StatusPending, at(hour, i), line(1, "A", 1, 1, "1.00")))
		}
	}
	add(9, 1)
	add(12, 3)
	add(13, 2)
	add(19, 4)

	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: orders})

	hours := bundle.HourlyDistribution
	require.Len(t, hours, 24)
	assert.Equal(t, 4, hours[19].Count)
	assert.Equal(t, 40.0, hours[19].Percentage)
	assert.Equal(t, 30.0, hours[12].Percentage)

	var sum float64
	var peaks []int
	for _, h := range hours {
		sum += h.Percentage
		if h.IsPeak {
			peaks = append(peaks, h.Hour)
		}
	}
	assert.InDelta(t, 100, sum, 0.01)
	assert.Equal(t, []int{19}, peaks, "ceil(20% of 4 busy hours) is one peak")
}

func TestCompute_PeakHoursTieBreakByHour(t *testing.T) {
	var orders []domain.OrderRecord
	for _, hour := range []int{8, 8, 9, 10, 10, 11, 12, 13} {
		orders = append(orders, order(len(orders)+1, 1, domain.StatusPending, at(hour, len(orders)), line(1, "A", 1, 1, "1.00")))
	}

	bundle := compute(domain.RangeDay, domain.Snapshot{Orders: orders})

	var peaks []int
	var sum float64
	for _, h := range bundle.HourlyDistribution {
		sum += h.Percentage
		if h.IsPeak {
			peaks = append(peaks, h.Hour)
		}
	}
	assert.Equal(t, []int{8, 10}, peaks)
	assert.InDelta(t, 100, sum, 0.05)
}

func TestCompute_SalesOverTimeBuckets(t *testing.T) {
	orders := []domain.OrderRecord{
		order(1, 1, domain.StatusPending, at(9, 0), line(1, "A", 1, 2, "5.00")),
		order(2, 1, domain.StatusPending, at(9, 30), line(1, "A", 1, 1, "5.00")),
	}

	t.Run("day", func(t *testing.T) {
		sales := compute(domain.RangeDay, domain.Snapshot{Orders: orders}).SalesOverTime
		require.Len(t, sales.Hourly, 24)
		assert.Equal(t, "09:00", sales.Hourly[9].Label)
		assert.Equal(t, 2, sales.Hourly[9].Orders)
		assert.Equal(t, "15", sales.Hourly[9].Revenue.String())
		assert.Empty(t, sales.Daily)
		assert.Empty(t, sales.Weekly)
		assert.Empty(t, sales.Monthly)
	})

	t.Run("week", func(t *testing.T) {
		sales := compute(domain.RangeWeek, domain.Snapshot{Orders: orders}).SalesOverTime
		require.Len(t, sales.Daily, 7)
		assert.Equal(t, "Sun", sales.Daily[0].Label)
		assert.Equal(t, "Thu", sales.Daily[int(now.Weekday())].Label)
		assert.Equal(t, 2, sales.Daily[int(now.Weekday())].Orders)
		assert.Empty(t, sales.Hourly)
	})

	t.Run("month", func(t *testing.T) {
		monthOrders := append([]domain.OrderRecord{
			order(3, 1, domain.StatusPending, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), line(1, "A", 1, 1, "5.00")),
			order(4, 1, domain.StatusPending, time.Date(2026, 9, 30, 12, 0, 0, 0, time.UTC), line(1, "A", 1, 1, "5.00")),
		}, orders...)
		sales := compute(domain.RangeMonth, domain.Snapshot{Orders: monthOrders}).SalesOverTime
		require.Len(t, sales.Weekly, 5)
		assert.Equal(t, "Week 1", sales.Weekly[0].Label)
		assert.Equal(t, 1, sales.Weekly[0].Orders)
		assert.Equal(t, 2, sales.Weekly[2].Orders, "the 15th falls in week 3")
		assert.Equal(t, 1, sales.Weekly[4].Orders, "the 30th falls in week 5")
	})

	t.Run("year", func(t *testing.T) {
		sales := compute(domain.RangeYear, domain.Snapshot{Orders: orders}).SalesOverTime
		require.Len(t, sales.Monthly, 12)
		assert.Equal(t, "Oct", sales.Monthly[9].Label)
		assert.Equal(t, 2, sales.Monthly[9].Orders)
		assert.Empty(t, sales.Weekly)
	})
}

func TestCompute_SessionMetrics(t *testing.T) {
	end := func(start time.Time, minutes int) *time.Time {
		t := start.Add(time.Duration(minutes) * time.Minute)
		return &t
	}
	sessions := []domain.SessionRecord{
		{ID: 1, TableID: 1, Status: domain.SessionPaid, StartTime: at(9, 0), EndTime: end(at(9, 0), 30), TableCapacity: 4},
		{ID: 2, TableID: 1, Status: domain.SessionPaid, StartTime: at(11, 0), EndTime: end(at(11, 0), 60), TableCapacity: 4},
		{ID: 3, TableID: 2, Status: "active", StartTime: at(13, 0), TableCapacity: 2},
		{ID: 4, TableID: 2, Status: domain.SessionPaid, StartTime: at(14, 0), TableCapacity: 2},
	}

	t.Run("four tables", func(t *testing.T) {
		bundle := compute(domain.RangeDay, domain.Snapshot{Sessions: sessions, TableCount: 4})
		assert.Equal(t, 50, bundle.TableUtilization)
		assert.Equal(t, 45.0, bundle.AverageTableTime, "sessions without an end time are skipped")
		assert.Equal(t, 100.0, bundle.CustomerRetention)
		assert.Equal(t, 3.0, bundle.AveragePartySize)
	})

	t.Run("utilization rounds", func(t *testing.T) {
		bundle := compute(domain.RangeDay, domain.Snapshot{Sessions: sessions[:1], TableCount: 3})
		assert.Equal(t, 33, bundle.TableUtilization)
		assert.Equal(t, 0.0, bundle.CustomerRetention)
	})

	t.Run("no tables", func(t *testing.T) {
		bundle := compute(domain.RangeDay, domain.Snapshot{Sessions: sessions})
		assert.Zero(t, bundle.TableUtilization)
	})
}
