package service

import (
	"context"

	"tableorder/agg-svc/internal/domain"
	"tableorder/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type StoreInterface interface {
	InvalidateStatistics(ctx context.Context, restaurantID int) error
	AddLiveOrder(ctx context.Context, restaurantID int, date string, total decimal.Decimal) error
	RetractLiveOrder(ctx context.Context, restaurantID int, date string, total decimal.Decimal) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
