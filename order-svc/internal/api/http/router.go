package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func NewRouter(handler *Handler, opts RouteOptions) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r, opts)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

// NewRateLimiter limits per client IP using a formatted rate such as "30-M".
// When clientIPHeader is set and present on a request, its address is the key.
func NewRateLimiter(formatted, clientIPHeader string) (Middleware, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	var options []limiter.Option
	if clientIPHeader != "" {
		options = append(options, limiter.WithClientIPHeader(clientIPHeader))
	}
	instance := limiter.New(memory.NewStore(), rate, options...)
	return stdlib.NewMiddleware(instance).Handler, nil
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Order Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
