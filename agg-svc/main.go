package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"tableorder/agg-svc/internal/service"
	"tableorder/agg-svc/internal/storage"
	"tableorder/config"
)

func main() {
	cfg := config.Load()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb, cfg.Stats.LiveTTL), cfg.Stats.Location())
	consumer.Start(ctx)
	log.Println("Aggregation Service shut down")
}
