package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// orderRank orders the forward path; cancelled sits outside it.
var orderRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderPreparing: 1,
	OrderReady:     2,
	OrderDelivered: 3,
	OrderCompleted: 4,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderRank[s]
	return ok || s == OrderCancelled
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransition reports whether an order may move from s to next.
// Forward moves may skip steps; backward moves and leaving a terminal state are refused.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	return orderRank[next] > orderRank[s]
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaid      SessionStatus = "paid"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Closing() bool {
	return s == SessionPaid || s == SessionCancelled
}

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

type MenuType string

const (
	MenuLunch     MenuType = "lunch"
	MenuDinner    MenuType = "dinner"
	MenuBreakfast MenuType = "breakfast"
	MenuWeekend   MenuType = "weekend"
	MenuSpecial   MenuType = "special"
	MenuDefault   MenuType = "default"
)

func (t MenuType) Valid() bool {
	switch t {
	case MenuLunch, MenuDinner, MenuBreakfast, MenuWeekend, MenuSpecial, MenuDefault:
		return true
	}
	return false
}

const (
	UnknownItemName    = "Unknown item"
	UncategorizedLabel = "Uncategorized"
)

type MenuItem struct {
	ID              int             `json:"id"`
	RestaurantID    int             `json:"restaurant_id"`
	CategoryID      int             `json:"category_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	IsAvailable     bool            `json:"is_available"`
	PreparationTime int             `json:"preparation_time"`
	IsSpicy         bool            `json:"is_spicy"`
	IsVegetarian    bool            `json:"is_vegetarian"`
	IsVegan         bool            `json:"is_vegan"`
	Allergens       []string        `json:"allergens"`
	Nutrition       Nutrition       `json:"nutritional_info"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Nutrition struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	ItemIDs     []int  `json:"items"`
}

type Availability struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Days      []int      `json:"days,omitempty"`
	StartTime string     `json:"start_time,omitempty"`
	EndTime   string     `json:"end_time,omitempty"`
}

type Menu struct {
	ID           int          `json:"id"`
	RestaurantID int          `json:"restaurant_id"`
	Name         string       `json:"name"`
	Type         MenuType     `json:"type"`
	Categories   []Category   `json:"categories"`
	IsActive     bool         `json:"is_active"`
	Availability Availability `json:"availability"`
	CreatedAt    time.Time    `json:"created_at"`
}

type Table struct {
	ID               int         `json:"id"`
	RestaurantID     int         `json:"restaurant_id"`
	Number           int         `json:"number"`
	Capacity         int         `json:"capacity"`
	Status           TableStatus `json:"status"`
	QRCode           string      `json:"qr_code"`
	IsActive         bool        `json:"is_active"`
	CurrentSessionID *int        `json:"current_session_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

type Session struct {
	ID           int             `json:"id"`
	TableID      int             `json:"table_id"`
	RestaurantID int             `json:"restaurant_id"`
	Status       SessionStatus   `json:"status"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      *time.Time      `json:"end_time,omitempty"`
	OrderIDs     []int           `json:"order_ids"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Table        *Table          `json:"table,omitempty"`
	Orders       []Order         `json:"orders,omitempty"`
}

type Order struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	TableID      int             `json:"table_id"`
	SessionID    int             `json:"session_id"`
	Lines        []OrderLine     `json:"items"`
	Status       OrderStatus     `json:"status"`
	Notes        string          `json:"notes"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	IsNew        bool            `json:"is_new"`
}

type OrderLine struct {
	MenuItemID int             `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Notes      string          `json:"notes"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal sums price times quantity over the lines.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

type OrderFilter struct {
	RestaurantID int
	Status       OrderStatus
	TableID      int
	Since        *time.Time
}

// Caller is the authenticated identity behind an owner-facing request.
type Caller struct {
	UserID       int
	RestaurantID int
}

func (c Caller) Owns(restaurantID int) bool {
	return c.RestaurantID > 0 && c.RestaurantID == restaurantID
}

type ScanResult struct {
	Table Table `json:"table"`
	Menu  *Menu `json:"menu"`
}
