package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange string

const (
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
)

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	SessionPaid = "paid"
)

const (
	UnknownItemName    = "Unknown item"
	UncategorizedLabel = "Uncategorized"
)

// Snapshot is everything the statistics need for one restaurant and window,
// read in a single consistent transaction.
type Snapshot struct {
	Orders     []OrderRecord
	Sessions   []SessionRecord
	TableCount int
	// Categories maps category ids of the restaurant's menus to their names.
	Categories map[int]string
}

type OrderRecord struct {
	ID        int
	TableID   int
	SessionID int
	Status    string
	CreatedAt time.Time
	Lines     []LineRecord
}

type LineRecord struct {
	MenuItemID int
	// Name is empty when the menu item no longer exists.
	Name       string
	CategoryID int
	Quantity   int
	Price      decimal.Decimal
}

type SessionRecord struct {
	ID            int
	TableID       int
	Status        string
	StartTime     time.Time
	EndTime       *time.Time
	TableCapacity int
}

type StatisticsBundle struct {
	RestaurantID         int             `json:"restaurantId"`
	TimeRange            TimeRange       `json:"timeRange"`
	From                 time.Time       `json:"from"`
	To                   time.Time       `json:"to"`
	TotalOrders          int             `json:"totalOrders"`
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue    decimal.Decimal `json:"averageOrderValue"`
	LargestOrder         *LargestOrder   `json:"largestOrder"`
	AverageTableTime     float64         `json:"averageTableTime"`
	TopProducts          []ProductStat   `json:"topProducts"`
	SalesOverTime        SalesOverTime   `json:"salesOverTime"`
	HourlyDistribution   []HourStat      `json:"hourlyDistribution"`
	TableUtilization     int             `json:"tableUtilization"`
	TopCategories        []CategoryStat  `json:"topCategories"`
	ItemPairings         []PairingStat   `json:"itemPairings"`
	PendingOrders        int             `json:"pendingOrders"`
	CompletedOrders      int             `json:"completedOrders"`
	CustomerRetention    float64         `json:"customerRetention"`
	FirstTimeOrders      int             `json:"firstTimeOrders"`
	AveragePartySize     float64         `json:"averagePartySize"`
	AverageItemsPerOrder float64         `json:"averageItemsPerOrder"`
	GeneratedAt          time.Time       `json:"generatedAt"`
}

type LargestOrder struct {
	OrderID int             `json:"orderId"`
	TableID int             `json:"tableId"`
	Total   decimal.Decimal `json:"total"`
}

type ProductStat struct {
	MenuItemID int             `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type SalesBucket struct {
	Label   string          `json:"label"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesOverTime holds one populated series, the one matching the requested range.
type SalesOverTime struct {
	Hourly  []SalesBucket `json:"hourly"`
	Daily   []SalesBucket `json:"daily"`
	Weekly  []SalesBucket `json:"weekly"`
	Monthly []SalesBucket `json:"monthly"`
}

type HourStat struct {
	Hour       int     `json:"hour"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	IsPeak     bool    `json:"isPeak"`
}

type CategoryStat struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

type PairedItem struct {
	MenuItemID int    `json:"menuItemId"`
	Name       string `json:"name"`
}

type PairingStat struct {
	Items [2]PairedItem `json:"items"`
	Count int           `json:"count"`
}

// LiveCounters are today's running totals kept by the aggregator.
type LiveCounters struct {
	RestaurantID int             `json:"restaurantId"`
	Date         string          `json:"date"`
	Orders       int64           `json:"orders"`
	Cancelled    int64           `json:"cancelled"`
	Revenue      decimal.Decimal `json:"revenue"`
}
