package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tableorder/agg-svc/internal/domain"
	"tableorder/config"
)

type Consumer struct {
	Reader   MessageReader
	Store    StoreInterface
	Location *time.Location
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location) *Consumer {
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Aggregation Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

// ProcessEvent drops the restaurant's cached statistics and keeps today's
// live counters in step with placements and cancellations.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if event.RestaurantID <= 0 {
		log.Printf("Skipping %s event without restaurant id", event.Type)
		return
	}
	log.Printf("Processing %s: RestaurantID=%d, OrderID=%d, Status=%s",
		event.Type, event.RestaurantID, event.OrderID, event.Status)

	if err := c.Store.InvalidateStatistics(ctx, event.RestaurantID); err != nil {
		log.Printf("Error invalidating statistics for restaurant %d: %v", event.RestaurantID, err)
	}

	switch {
	case event.Type == domain.EventOrderPlaced:
		if err := c.Store.AddLiveOrder(ctx, event.RestaurantID, c.day(event), event.Total); err != nil {
			log.Printf("Error updating live counters: %v", err)
		}
	case event.Cancellation():
		if err := c.Store.RetractLiveOrder(ctx, event.RestaurantID, c.day(event), event.Total); err != nil {
			log.Printf("Error updating live counters: %v", err)
		}
	}
}

// day is the local date the order was placed on.
func (c *Consumer) day(event domain.OrderEvent) string {
	at := event.PlacedAt
	if at.IsZero() {
		at = event.Timestamp
	}
	if at.IsZero() {
		at = time.Now()
	}
	if c.Location != nil {
		at = at.In(c.Location)
	}
	return at.Format(config.LiveDateLayout)
}
