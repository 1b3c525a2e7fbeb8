package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tableorder/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteOptions(t *testing.T) {
	cfg := config.Config{
		Auth:   config.AuthConfig{JWTSecret: "secret"},
		Orders: config.OrdersConfig{PlaceRateLimit: "2-M", RequestTimeout: time.Second},
	}

	opts, err := routeOptions(cfg)
	require.NoError(t, err)
	require.NotNil(t, opts.Owner)
	require.NotNil(t, opts.PlaceLimiter)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	rr := httptest.NewRecorder()
	opts.Owner(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	limited := opts.PlaceLimiter(ok)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		limited.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouteOptions_LimitsEachCustomerBehindGateway(t *testing.T) {
	cfg := config.Config{
		Auth:   config.AuthConfig{JWTSecret: "secret"},
		Orders: config.OrdersConfig{PlaceRateLimit: "1-M", ClientIPHeader: "X-Real-IP"},
	}
	opts, err := routeOptions(cfg)
	require.NoError(t, err)

	limited := opts.PlaceLimiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	place := func(customer string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.5:41000"
		req.Header.Set("X-Real-IP", customer)
		limited.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusCreated, place("203.0.113.1"))
	assert.Equal(t, http.StatusCreated, place("198.51.100.7"))
	assert.Equal(t, http.StatusTooManyRequests, place("203.0.113.1"))
}

func TestRouteOptions_BadRate(t *testing.T) {
	_, err := routeOptions(config.Config{Orders: config.OrdersConfig{PlaceRateLimit: "lots"}})
	assert.Error(t, err)
}
