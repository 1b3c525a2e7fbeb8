package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tableorder/analytics-svc/internal/service"
	"tableorder/auth"

	"github.com/gorilla/mux"
)

const defaultTimeRange = "day"

type Middleware func(http.Handler) http.Handler

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

// RegisterRoutes mounts the statistics routes behind owner, which must put
// auth claims on the request context.
func (h *Handler) RegisterRoutes(r *mux.Router, owner Middleware) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "analytics-svc"})
	}).Methods("GET")

	r.Handle("/api/statistics", owner(http.HandlerFunc(h.getStatistics))).Methods("GET")
	r.Handle("/api/statistics/live", owner(http.HandlerFunc(h.getLiveCounters))).Methods("GET")
}

func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("timeRange")
	if timeRange == "" {
		timeRange = defaultTimeRange
	}

	bundle, err := h.Analytics.Statistics(r.Context(), restaurantFrom(r), timeRange)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *Handler) getLiveCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := h.Analytics.LiveCounters(r.Context(), restaurantFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counters)
}

func restaurantFrom(r *http.Request) int {
	if claims, ok := auth.FromContext(r.Context()); ok {
		return claims.RestaurantID
	}
	return 0
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := service.Kind(err)
	switch {
	case errors.Is(kind, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(kind, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(kind, service.ErrUpstream):
		status = http.StatusBadGateway
	}

	resp := errorResponse{Error: "internal", Message: err.Error()}
	if kind != nil {
		resp.Error = kind.Error()
	}
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %v", err)
		resp.Message = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
