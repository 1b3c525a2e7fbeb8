package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tableorder/agg-svc/internal/domain"
	"tableorder/agg-svc/internal/mocks"
	"tableorder/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)

func event(eventType, status, previous string) domain.OrderEvent {
	return domain.OrderEvent{
		Type:           eventType,
		RestaurantID:   10,
		TableID:        3,
		SessionID:      7,
		OrderID:        42,
		Status:         status,
		PreviousStatus: previous,
		Total:          decimal.RequireFromString("25.50"),
		PlacedAt:       placedAt,
		Timestamp:      placedAt.Add(time.Hour),
	}
}

func amount(want string) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(decimal.RequireFromString(want)) })
}

func TestConsumer_ProcessEvent(t *testing.T) {
	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
	}{
		{
			name:  "order placed",
			event: event(domain.EventOrderPlaced, "pending", ""),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
				mockStore.On("AddLiveOrder", mock.Anything, 10, "2026-10-15", amount("25.5")).Return(nil).Once()
			},
		},
		{
			name:  "order cancelled",
			event: event(domain.EventOrderStatusChanged, "cancelled", "preparing"),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
				mockStore.On("RetractLiveOrder", mock.Anything, 10, "2026-10-15", amount("25.5")).Return(nil).Once()
			},
		},
		{
			name:  "repeated cancel only invalidates",
			event: event(domain.EventOrderStatusChanged, "cancelled", "cancelled"),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
			},
		},
		{
			name:  "status advance only invalidates",
			event: event(domain.EventOrderStatusChanged, "ready", "preparing"),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
			},
		},
		{
			name:  "session closed only invalidates",
			event: event(domain.EventSessionClosed, "paid", ""),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
			},
		},
		{
			name:  "invalidate error does not block counters",
			event: event(domain.EventOrderPlaced, "pending", ""),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(errors.New("redis error")).Once()
				mockStore.On("AddLiveOrder", mock.Anything, 10, "2026-10-15", mock.Anything).Return(errors.New("redis error")).Once()
			},
		},
		{
			name: "missing restaurant is skipped",
			event: domain.OrderEvent{
				Type:  domain.EventOrderPlaced,
				Total: decimal.RequireFromString("1"),
			},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, time.UTC)
			consumer.ProcessEvent(context.Background(), testCase.event)
		})
	}
}

func TestConsumer_ProcessEventUsesLocalPlacementDate(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
	mockStore.On("AddLiveOrder", mock.Anything, 10, "2026-10-16", mock.Anything).Return(nil).Once()

	consumer := service.NewConsumer(nil, mockStore, time.FixedZone("CET", 2*60*60))
	consumer.ProcessEvent(context.Background(), event(domain.EventOrderPlaced, "pending", ""))
}

// scriptedReader hands out fixed messages and then blocks until cancelled.
type scriptedReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func TestConsumer_StartDecodesUntilCancelled(t *testing.T) {
	placed, err := json.Marshal(event(domain.EventOrderPlaced, "pending", ""))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &scriptedReader{
		messages: []kafka.Message{
			{Value: []byte("not json")},
			{Key: []byte("10"), Value: placed},
		},
		cancel: cancel,
	}

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("InvalidateStatistics", mock.Anything, 10).Return(nil).Once()
	mockStore.On("AddLiveOrder", mock.Anything, 10, "2026-10-15", amount("25.50")).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore, time.UTC).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
