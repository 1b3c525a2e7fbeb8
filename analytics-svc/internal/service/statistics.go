package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"tableorder/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	topListSize   = 5
	peakHourShare = 0.2
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Input is one restaurant's snapshot for a window, plus the clock it was taken with.
type Input struct {
	RestaurantID int
	TimeRange    domain.TimeRange
	From         time.Time
	To           time.Time
	Snapshot     domain.Snapshot
}

func ParseTimeRange(raw string) (domain.TimeRange, error) {
	switch r := domain.TimeRange(strings.ToLower(strings.TrimSpace(raw))); r {
	case domain.RangeDay, domain.RangeWeek, domain.RangeMonth, domain.RangeYear:
		return r, nil
	}
	return "", ErrInvalidTimeRange
}

// WindowStart returns the inclusive lower bound of the window ending at now.
// The day window starts at midnight in now's location.
func WindowStart(now time.Time, timeRange domain.TimeRange) (time.Time, error) {
	switch timeRange {
	case domain.RangeDay:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case domain.RangeWeek:
		return now.AddDate(0, 0, -7), nil
	case domain.RangeMonth:
		return now.AddDate(0, -1, 0), nil
	case domain.RangeYear:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, ErrInvalidTimeRange
}

// Compute derives every statistic from the snapshot. It performs no I/O and
// tolerates lines whose menu item or category no longer exists.
// Cancelled orders count everywhere except the pending/completed split.
func Compute(in Input) domain.StatisticsBundle {
	orders := in.Snapshot.Orders

	bundle := domain.StatisticsBundle{
		RestaurantID:       in.RestaurantID,
		TimeRange:          in.TimeRange,
		From:               in.From,
		To:                 in.To,
		TotalOrders:        len(orders),
		TotalRevenue:       decimal.Zero,
		AverageOrderValue:  decimal.Zero,
		TopProducts:        topProducts(orders),
		SalesOverTime:      salesOverTime(in.TimeRange, in.To.Location(), orders),
		HourlyDistribution: hourlyDistribution(in.To.Location(), orders),
		TableUtilization:   tableUtilization(in.Snapshot.Sessions, in.Snapshot.TableCount),
		TopCategories:      topCategories(orders, in.Snapshot.Categories),
		ItemPairings:       itemPairings(orders),
		AverageTableTime:   averageTableTime(in.Snapshot.Sessions),
	}

	opened := make(map[int]bool, len(in.Snapshot.Sessions))
	for _, session := range in.Snapshot.Sessions {
		opened[session.ID] = true
	}

	var items int
	firstOrders := make(map[int]struct{})
	for _, order := range orders {
		total := orderTotal(order)
		bundle.TotalRevenue = bundle.TotalRevenue.Add(total)
		if bundle.LargestOrder == nil || total.GreaterThan(bundle.LargestOrder.Total) {
			bundle.LargestOrder = &domain.LargestOrder{OrderID: order.ID, TableID: order.TableID, Total: total}
		}
		for _, line := range order.Lines {
			items += line.Quantity
		}
		switch order.Status {
		case domain.StatusCompleted:
			bundle.CompletedOrders++
		case domain.StatusPending, domain.StatusPreparing, domain.StatusReady, domain.StatusDelivered:
			bundle.PendingOrders++
		}
		if opened[order.SessionID] {
			firstOrders[order.SessionID] = struct{}{}
		}
	}

	if len(orders) > 0 {
		count := decimal.NewFromInt(int64(len(orders)))
		bundle.AverageOrderValue = bundle.TotalRevenue.DivRound(count, 2)
		bundle.AverageItemsPerOrder = round2(float64(items) / float64(len(orders)))
	}
	// Only sessions that started inside the window had their opening order here.
	bundle.FirstTimeOrders = len(firstOrders)
	bundle.CustomerRetention = customerRetention(in.Snapshot.Sessions)
	bundle.AveragePartySize = averagePartySize(in.Snapshot.Sessions)
	return bundle
}

func orderTotal(order domain.OrderRecord) decimal.Decimal {
	total := decimal.Zero
	for _, line := range order.Lines {
		total = total.Add(lineTotal(line))
	}
	return total
}

func lineTotal(line domain.LineRecord) decimal.Decimal {
	return line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func itemName(line domain.LineRecord) string {
	if line.Name == "" {
		return domain.UnknownItemName
	}
	return line.Name
}

func topProducts(orders []domain.OrderRecord) []domain.ProductStat {
	var stats []domain.ProductStat
	index := make(map[int]int)
	for _, order := range orders {
		for _, line := range order.Lines {
			i, ok := index[line.MenuItemID]
			if !ok {
				i = len(stats)
				index[line.MenuItemID] = i
				stats = append(stats, domain.ProductStat{MenuItemID: line.MenuItemID, Name: itemName(line), Revenue: decimal.Zero})
			}
			stats[i].Quantity += line.Quantity
			stats[i].Revenue = stats[i].Revenue.Add(lineTotal(line))
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Quantity > stats[j].Quantity })
	if len(stats) > topListSize {
		stats = stats[:topListSize]
	}
	if stats == nil {
		return []domain.ProductStat{}
	}
	return stats
}

func topCategories(orders []domain.OrderRecord, names map[int]string) []domain.CategoryStat {
	var stats []domain.CategoryStat
	index := make(map[int]int)
	var total int
	for _, order := range orders {
		for _, line := range order.Lines {
			i, ok := index[line.CategoryID]
			if !ok {
				name, known := names[line.CategoryID]
				if !known {
					name = domain.UncategorizedLabel
				}
				i = len(stats)
				index[line.CategoryID] = i
				stats = append(stats, domain.CategoryStat{CategoryID: line.CategoryID, Name: name})
			}
			stats[i].Quantity += line.Quantity
			total += line.Quantity
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Quantity > stats[j].Quantity })
	if len(stats) > topListSize {
		stats = stats[:topListSize]
	}
	for i := range stats {
		stats[i].Percentage = percent(stats[i].Quantity, total)
	}
	if stats == nil {
		return []domain.CategoryStat{}
	}
	return stats
}

type pairKey struct{ low, high int }

// itemPairings counts unordered pairs of distinct items ordered together.
func itemPairings(orders []domain.OrderRecord) []domain.PairingStat {
	var stats []domain.PairingStat
	index := make(map[pairKey]int)
	names := make(map[int]string)
	for _, order := range orders {
		var items []int
		seen := make(map[int]bool)
		for _, line := range order.Lines {
			if _, ok := names[line.MenuItemID]; !ok {
				names[line.MenuItemID] = itemName(line)
			}
			if !seen[line.MenuItemID] {
				seen[line.MenuItemID] = true
				items = append(items, line.MenuItemID)
			}
		}
		for a := 0; a < len(items); a++ {
			for b := a + 1; b < len(items); b++ {
				key := pairKey{low: items[a], high: items[b]}
				if key.low > key.high {
					key.low, key.high = key.high, key.low
				}
				i, ok := index[key]
				if !ok {
					i = len(stats)
					index[key] = i
					stats = append(stats, domain.PairingStat{Items: [2]domain.PairedItem{
						{MenuItemID: key.low, Name: names[key.low]},
						{MenuItemID: key.high, Name: names[key.high]},
					}})
				}
				stats[i].Count++
			}
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	if len(stats) > topListSize {
		stats = stats[:topListSize]
	}
	if stats == nil {
		return []domain.PairingStat{}
	}
	return stats
}

func salesOverTime(timeRange domain.TimeRange, loc *time.Location, orders []domain.OrderRecord) domain.SalesOverTime {
	sales := domain.SalesOverTime{
		Hourly:  []domain.SalesBucket{},
		Daily:   []domain.SalesBucket{},
		Weekly:  []domain.SalesBucket{},
		Monthly: []domain.SalesBucket{},
	}

	var labels []string
	var bucket func(t time.Time) int
	switch timeRange {
	case domain.RangeDay:
		for h := 0; h < 24; h++ {
			labels = append(labels, time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("15:00"))
		}
		bucket = func(t time.Time) int { return t.Hour() }
	case domain.RangeWeek:
		labels = weekdayLabels
		bucket = func(t time.Time) int { return int(t.Weekday()) }
	case domain.RangeMonth:
		labels = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}
		bucket = func(t time.Time) int { return (t.Day()+6)/7 - 1 }
	case domain.RangeYear:
		labels = monthLabels
		bucket = func(t time.Time) int { return int(t.Month()) - 1 }
	default:
		return sales
	}

	buckets := make([]domain.SalesBucket, len(labels))
	for i, label := range labels {
		buckets[i] = domain.SalesBucket{Label: label, Revenue: decimal.Zero}
	}
	for _, order := range orders {
		i := bucket(localTime(order.CreatedAt, loc))
		buckets[i].Orders++
		buckets[i].Revenue = buckets[i].Revenue.Add(orderTotal(order))
	}

	switch timeRange {
	case domain.RangeDay:
		sales.Hourly = buckets
	case domain.RangeWeek:
		sales.Daily = buckets
	case domain.RangeMonth:
		sales.Weekly = buckets
	case domain.RangeYear:
		sales.Monthly = buckets
	}
	return sales
}

func hourlyDistribution(loc *time.Location, orders []domain.OrderRecord) []domain.HourStat {
	hours := make([]domain.HourStat, 24)
	for h := range hours {
		hours[h].Hour = h
	}
	for _, order := range orders {
		hours[localTime(order.CreatedAt, loc).Hour()].Count++
	}

	var busy []int
	for h := range hours {
		hours[h].Percentage = percent(hours[h].Count, len(orders))
		if hours[h].Count > 0 {
			busy = append(busy, h)
		}
	}
	if len(busy) == 0 {
		return hours
	}

	sort.SliceStable(busy, func(i, j int) bool { return hours[busy[i]].Count > hours[busy[j]].Count })
	peaks := int(math.Ceil(float64(len(busy)) * peakHourShare))
	if peaks < 1 {
		peaks = 1
	}
	for _, h := range busy[:peaks] {
		hours[h].IsPeak = true
	}
	return hours
}

func tableUtilization(sessions []domain.SessionRecord, tableCount int) int {
	if tableCount == 0 || len(sessions) == 0 {
		return 0
	}
	tables := make(map[int]struct{})
	for _, session := range sessions {
		tables[session.TableID] = struct{}{}
	}
	return int(math.Round(float64(len(tables)) / float64(tableCount) * 100))
}

func averageTableTime(sessions []domain.SessionRecord) float64 {
	var minutes float64
	var n int
	for _, session := range sessions {
		if session.Status != domain.SessionPaid || session.EndTime == nil {
			continue
		}
		minutes += session.EndTime.Sub(session.StartTime).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(minutes / float64(n))
}

// customerRetention treats a table as a returning customer when it saw
// two or more sessions in the window.
func customerRetention(sessions []domain.SessionRecord) float64 {
	perTable := make(map[int]int)
	for _, session := range sessions {
		perTable[session.TableID]++
	}
	var returning int
	for _, count := range perTable {
		if count >= 2 {
			returning++
		}
	}
	return percent(returning, len(perTable))
}

func averagePartySize(sessions []domain.SessionRecord) float64 {
	var seats, n int
	for _, session := range sessions {
		if session.TableCapacity > 0 {
			seats += session.TableCapacity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(float64(seats) / float64(n))
}

func localTime(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
