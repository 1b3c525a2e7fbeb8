package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tableorder/auth"
	"tableorder/order-svc/internal/domain"
	"tableorder/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders  service.OrderServiceInterface
	Catalog service.CatalogServiceInterface
	Tables  service.TableServiceInterface
}

func NewHandler(orderSvc service.OrderServiceInterface, catalogSvc service.CatalogServiceInterface, tableSvc service.TableServiceInterface) *Handler {
	return &Handler{
		Orders:  orderSvc,
		Catalog: catalogSvc,
		Tables:  tableSvc,
	}
}

type Middleware func(http.Handler) http.Handler

// RouteOptions carries the middlewares for owner routes and order placement.
// A nil middleware lets requests through untouched.
type RouteOptions struct {
	Owner        Middleware
	PlaceLimiter Middleware
}

func (h *Handler) RegisterRoutes(r *mux.Router, opts RouteOptions) {
	owner := wrap(opts.Owner)
	limited := wrap(opts.PlaceLimiter)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/t/{qr}", h.scanTable).Methods("GET")

	r.Handle("/api/orders", limited(http.HandlerFunc(h.placeOrder))).Methods("POST")
	r.Handle("/api/orders", owner(http.HandlerFunc(h.getOrders))).Methods("GET")
	r.Handle("/api/orders/table/{tableId:[0-9]+}", owner(http.HandlerFunc(h.getTableSessions))).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", owner(http.HandlerFunc(h.getOrder))).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", owner(http.HandlerFunc(h.updateOrderStatus))).Methods("PATCH")
	r.Handle("/api/orders/{id:[0-9]+}/ack", owner(http.HandlerFunc(h.acknowledgeOrder))).Methods("POST")

	r.Handle("/api/sessions/{id:[0-9]+}", owner(http.HandlerFunc(h.getSession))).Methods("GET")
	r.Handle("/api/sessions/{id:[0-9]+}", owner(http.HandlerFunc(h.updateSessionStatus))).Methods("PATCH")

	r.Handle("/api/tables", owner(http.HandlerFunc(h.createTable))).Methods("POST")
	r.Handle("/api/tables", owner(http.HandlerFunc(h.getTables))).Methods("GET")
	r.Handle("/api/tables/{id:[0-9]+}", owner(http.HandlerFunc(h.getTable))).Methods("GET")
	r.Handle("/api/tables/{id:[0-9]+}/qrcode", owner(http.HandlerFunc(h.getTableQRCode))).Methods("GET")

	r.Handle("/api/menu-items", owner(http.HandlerFunc(h.createMenuItem))).Methods("POST")
	r.Handle("/api/menu-items", owner(http.HandlerFunc(h.getMenuItems))).Methods("GET")
	r.Handle("/api/menu-items/{id:[0-9]+}", owner(http.HandlerFunc(h.getMenuItem))).Methods("GET")
	r.Handle("/api/menu-items/{id:[0-9]+}", owner(http.HandlerFunc(h.updateMenuItem))).Methods("PUT")
	r.Handle("/api/menu-items/{id:[0-9]+}/availability", owner(http.HandlerFunc(h.setAvailability))).Methods("PATCH")

	r.Handle("/api/menus", owner(http.HandlerFunc(h.createMenu))).Methods("POST")
	r.Handle("/api/menus", owner(http.HandlerFunc(h.getMenus))).Methods("GET")
	r.Handle("/api/menus/{id:[0-9]+}/activate", owner(http.HandlerFunc(h.activateMenu))).Methods("POST")
}

func wrap(mw Middleware) Middleware {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) scanTable(w http.ResponseWriter, r *http.Request) {
	result, err := h.Tables.ResolveQRCode(r.Context(), mux.Vars(r)["qr"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var in service.PlaceOrderInput
	if !decode(w, r, &in) {
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.OrderFilter{Status: domain.OrderStatus(strings.ToLower(query.Get("status")))}

	if raw := query.Get("table_id"); raw != "" {
		tableID, err := strconv.Atoi(raw)
		if err != nil || tableID <= 0 {
			writeError(w, badRequest("table_id must be a positive integer"))
			return
		}
		filter.TableID = tableID
	}
	if raw := query.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, badRequest("since must be an RFC3339 timestamp"))
			return
		}
		filter.Since = &since
	}

	orders, err := h.Orders.ListOrdersForRestaurant(r.Context(), callerFrom(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(r.Context(), callerFrom(r), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in service.StatusInput
	if !decode(w, r, &in) {
		return
	}

	order, err := h.Orders.SetOrderStatus(r.Context(), callerFrom(r), pathID(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) acknowledgeOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.AcknowledgeOrder(r.Context(), callerFrom(r), pathID(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTableSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Orders.ListSessionsForTable(r.Context(), callerFrom(r), pathID(r, "tableId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.Orders.GetSession(r.Context(), callerFrom(r), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) updateSessionStatus(w http.ResponseWriter, r *http.Request) {
	var in service.StatusInput
	if !decode(w, r, &in) {
		return
	}

	session, err := h.Orders.SetSessionStatus(r.Context(), callerFrom(r), pathID(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var in service.TableInput
	if !decode(w, r, &in) {
		return
	}

	table, err := h.Tables.CreateTable(r.Context(), callerFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) getTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.ListTables(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.Tables.GetTable(r.Context(), callerFrom(r), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Tables.TableQRImage(r.Context(), callerFrom(r), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var in service.MenuItemInput
	if !decode(w, r, &in) {
		return
	}

	item, err := h.Catalog.CreateMenuItem(r.Context(), callerFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListMenuItems(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.GetMenuItem(r.Context(), callerFrom(r), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var in service.MenuItemInput
	if !decode(w, r, &in) {
		return
	}

	item, err := h.Catalog.UpdateMenuItem(r.Context(), callerFrom(r), pathID(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	var in service.AvailabilityInput
	if !decode(w, r, &in) {
		return
	}

	item, err := h.Catalog.SetAvailability(r.Context(), callerFrom(r), pathID(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	var in service.MenuInput
	if !decode(w, r, &in) {
		return
	}

	menu, err := h.Catalog.CreateMenu(r.Context(), callerFrom(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, menu)
}

func (h *Handler) getMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.Catalog.ListMenus(r.Context(), callerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menus)
}

func (h *Handler) activateMenu(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.ActivateMenu(r.Context(), callerFrom(r), pathID(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// callerFrom returns the zero Caller when no token was verified, which every
// owner operation rejects as forbidden.
func callerFrom(r *http.Request) domain.Caller {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		return domain.Caller{}
	}
	return domain.Caller{UserID: claims.UserID, RestaurantID: claims.RestaurantID}
}

// pathID relies on the route patterns restricting ids to digits.
func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, badRequest("Invalid JSON format: "+err.Error()))
		return false
	}
	return true
}

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Unwrap() error { return service.ErrInvalidInput }

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := service.Kind(err)
	switch {
	case errors.Is(kind, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(kind, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(kind, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(kind, service.ErrConflict):
		status = http.StatusConflict
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
