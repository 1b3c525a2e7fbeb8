package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"tableorder/auth"
	"tableorder/config"
	httpapi "tableorder/order-svc/internal/api/http"
	"tableorder/order-svc/internal/service"
	"tableorder/order-svc/internal/storage"
)

func routeOptions(cfg config.Config) (httpapi.RouteOptions, error) {
	limiter, err := httpapi.NewRateLimiter(cfg.Orders.PlaceRateLimit, cfg.Orders.ClientIPHeader)
	if err != nil {
		return httpapi.RouteOptions{}, err
	}
	return httpapi.RouteOptions{
		Owner:        auth.Middleware([]byte(cfg.Auth.JWTSecret)),
		PlaceLimiter: limiter,
	}, nil
}

func main() {
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	catalogSvc := service.NewCatalogService(repo)
	tableSvc := service.NewTableService(repo, repo, service.DefaultQRGenerator{BaseURL: cfg.Orders.PublicBaseURL})
	orderSvc := service.NewOrderService(
		repo, repo, repo, repo,
		storage.NewRedisTableLocker(rdb, cfg.Orders.TableLockTTL),
		storage.NewRedisCache(rdb, cfg.Orders.AckTTL),
		storage.NewKafkaPublisher(writer),
		service.OrderServiceConfig{NewOrderWindow: cfg.Orders.NewOrderWindow},
	)

	opts, err := routeOptions(cfg)
	if err != nil {
		log.Fatal("Invalid ORDER_RATE_LIMIT:", err)
	}

	handler := httpapi.NewHandler(orderSvc, catalogSvc, tableSvc)
	router := httpapi.NewRouter(handler, opts)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	httpapi.StartServer(":"+port, http.TimeoutHandler(router, cfg.Orders.RequestTimeout, `{"error":"timeout"}`))
}
