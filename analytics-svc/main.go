package main

import (
	"log"
	"net/http"
	"os"

	httpapi "tableorder/analytics-svc/internal/api/http"
	"tableorder/analytics-svc/internal/service"
	"tableorder/analytics-svc/internal/storage"
	"tableorder/auth"
	"tableorder/config"
)

func newRouter(cfg config.Config, svc service.AnalyticsInterface) http.Handler {
	return httpapi.NewRouter(httpapi.NewHandler(svc), auth.Middleware([]byte(cfg.Auth.JWTSecret)))
}

func main() {
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	svc := service.NewAnalyticsService(
		storage.NewPostgresStore(db),
		storage.NewRedisCache(rdb, cfg.Stats.CacheTTL),
		cfg.Stats.Location(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}
	httpapi.StartServer(":"+port, newRouter(cfg, svc))
}
