package main

import (
	"log"
	"net/http"
	"os"

	"tableorder/api-gateway/internal/gateway"
	"tableorder/config"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	gw := gateway.NewGateway(gateway.Config{
		OrderSvcURL:     cfg.Gateway.OrderSvcURL,
		AnalyticsSvcURL: cfg.Gateway.AnalyticsSvcURL,
	}, &http.Client{Timeout: cfg.Orders.RequestTimeout})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API Gateway starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
