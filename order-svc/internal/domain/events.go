package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
	EventSessionClosed      = "session_closed"
)

type OrderEvent struct {
	Type           string          `json:"type"`
	RestaurantID   int             `json:"restaurant_id"`
	TableID        int             `json:"table_id"`
	SessionID      int             `json:"session_id"`
	OrderID        int             `json:"order_id,omitempty"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	Total          decimal.Decimal `json:"total"`
	PlacedAt       time.Time       `json:"placed_at"`
	Timestamp      time.Time       `json:"timestamp"`
}
