package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tableorder/order-svc/internal/domain"
)

const (
	maxSessionAttempts = 3
	maxNotesLength     = 500
)

var ErrOrderChanged = kindError(ErrConflict, "order status changed concurrently")

type PlaceOrderInput struct {
	TableID int              `json:"table_id"`
	Lines   []OrderLineInput `json:"lines"`
	Notes   string           `json:"notes"`
}

type OrderLineInput struct {
	MenuItemID int    `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

type StatusInput struct {
	Status string `json:"status"`
}

// Validate rejects on the first failing field.
func (in PlaceOrderInput) Validate() error {
	if in.TableID <= 0 {
		return invalid("table_id is required")
	}
	if len(in.Lines) == 0 {
		return ErrEmptyCart
	}
	if len(in.Notes) > maxNotesLength {
		return invalid("notes must be at most %d characters", maxNotesLength)
	}
	for i, line := range in.Lines {
		if line.MenuItemID <= 0 {
			return invalid("lines[%d].menu_item_id is required", i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: lines[%d]", ErrInvalidQuantity, i)
		}
		if len(line.Notes) > maxNotesLength {
			return invalid("lines[%d].notes must be at most %d characters", i, maxNotesLength)
		}
	}
	return nil
}

type OrderServiceConfig struct {
	NewOrderWindow time.Duration
}

type OrderService struct {
	catalog   CatalogRepository
	tables    TableRepository
	sessions  SessionRepository
	orders    OrderRepository
	locker    TableLocker
	acks      OrderAckCache
	publisher OrderPublisher
	cfg       OrderServiceConfig
	now       func() time.Time
}

func NewOrderService(
	catalog CatalogRepository,
	tables TableRepository,
	sessions SessionRepository,
	orders OrderRepository,
	locker TableLocker,
	acks OrderAckCache,
	publisher OrderPublisher,
	cfg OrderServiceConfig,
) *OrderService {
	if locker == nil {
		locker = noopLocker{}
	}
	return &OrderService{
		catalog:   catalog,
		tables:    tables,
		sessions:  sessions,
		orders:    orders,
		locker:    locker,
		acks:      acks,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	table, err := s.tables.GetTable(ctx, in.TableID)
	if err != nil {
		return nil, lookupErr(err, ErrTableNotFound, "get table")
	}
	if !table.IsActive {
		return nil, ErrTableNotFound
	}

	lines, err := s.snapshotLines(ctx, table.RestaurantID, in.Lines)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		RestaurantID: table.RestaurantID,
		TableID:      table.ID,
		Lines:        lines,
		Status:       domain.OrderPending,
		Notes:        strings.TrimSpace(in.Notes),
		Total:        domain.LinesTotal(lines),
	}

	unlock, err := s.lockTable(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 0; attempt < maxSessionAttempts; attempt++ {
		session, err := s.ensureActiveSessionLocked(ctx, table)
		if err != nil {
			return nil, err
		}

		now := s.now()
		order.SessionID = session.ID
		order.CreatedAt = now
		order.UpdatedAt = now

		err = s.orders.CreateOrder(ctx, order)
		if errors.Is(err, domain.ErrSessionClosed) {
			log.Printf("Session %d closed while placing order on table %d, retrying", session.ID, table.ID)
			continue
		}
		if err != nil {
			return nil, upstream("create order", err)
		}

		order.IsNew = true
		s.publish(ctx, domain.OrderEvent{
			Type:         domain.EventOrderPlaced,
			RestaurantID: order.RestaurantID,
			TableID:      order.TableID,
			SessionID:    order.SessionID,
			OrderID:      order.ID,
			Status:       string(order.Status),
			Total:        order.Total,
			PlacedAt:     order.CreatedAt,
			Timestamp:    now,
		})
		return order, nil
	}

	return nil, ErrSessionConflict
}

// snapshotLines freezes the current catalog price into every line.
func (s *OrderService) snapshotLines(ctx context.Context, restaurantID int, in []OrderLineInput) ([]domain.OrderLine, error) {
	items := make(map[int]*domain.MenuItem, len(in))
	lines := make([]domain.OrderLine, 0, len(in))

	for _, line := range in {
		item, ok := items[line.MenuItemID]
		if !ok {
			found, err := s.catalog.GetMenuItem(ctx, line.MenuItemID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, upstream("get menu item", err)
			}
			if err != nil || found.RestaurantID != restaurantID || !found.IsAvailable {
				return nil, fmt.Errorf("%w: %d", ErrMenuItemNotFound, line.MenuItemID)
			}
			item = found
			items[line.MenuItemID] = item
		}

		lines = append(lines, domain.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			Price:      item.Price,
			Notes:      strings.TrimSpace(line.Notes),
		})
	}
	return lines, nil
}

// EnsureActiveSession returns the table's active session, opening one if none exists.
// Calls for the same table are serialized by the table lock.
func (s *OrderService) EnsureActiveSession(ctx context.Context, table *domain.Table) (*domain.Session, error) {
	unlock, err := s.lockTable(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.ensureActiveSessionLocked(ctx, table)
}

func (s *OrderService) ensureActiveSessionLocked(ctx context.Context, table *domain.Table) (*domain.Session, error) {
	session, err := s.sessions.FindActiveSession(ctx, table.ID)
	if err != nil {
		return nil, upstream("find active session", err)
	}
	if session != nil {
		return session, nil
	}

	session, created, err := s.sessions.CreateSession(ctx, table.ID, table.RestaurantID, s.now())
	if err != nil {
		return nil, upstream("create session", err)
	}
	if created {
		log.Printf("Opened session %d for table %d", session.ID, table.ID)
	}
	return session, nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller domain.Caller, orderID int) (*domain.Order, error) {
	order, err := s.ownedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	s.markNew(ctx, []*domain.Order{order})
	return order, nil
}

func (s *OrderService) SetOrderStatus(ctx context.Context, caller domain.Caller, orderID int, in StatusInput) (*domain.Order, error) {
	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.ownedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	now := s.now()
	updated, err := s.orders.UpdateOrderStatus(ctx, order.ID, order.Status, status, now)
	if err != nil {
		return nil, upstream("update order status", err)
	}
	if !updated {
		return nil, ErrOrderChanged
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = now

	s.publish(ctx, domain.OrderEvent{
		Type:           domain.EventOrderStatusChanged,
		RestaurantID:   order.RestaurantID,
		TableID:        order.TableID,
		SessionID:      order.SessionID,
		OrderID:        order.ID,
		Status:         string(status),
		PreviousStatus: string(previous),
		Total:          order.Total,
		PlacedAt:       order.CreatedAt,
		Timestamp:      now,
	})
	return order, nil
}

func (s *OrderService) AcknowledgeOrder(ctx context.Context, caller domain.Caller, orderID int) error {
	order, err := s.ownedOrder(ctx, caller, orderID)
	if err != nil {
		return err
	}
	if s.acks == nil {
		return nil
	}
	if err := s.acks.SetMarker(ctx, s.acks.AckMarkerKey(order.ID)); err != nil {
		return upstream("acknowledge order", err)
	}
	return nil
}

func (s *OrderService) ListOrdersForRestaurant(ctx context.Context, caller domain.Caller, filter domain.OrderFilter) ([]domain.Order, error) {
	if caller.RestaurantID <= 0 {
		return nil, ErrForbidden
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	filter.RestaurantID = caller.RestaurantID

	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, upstream("list orders", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	s.markNew(ctx, refs)
	return orders, nil
}

func (s *OrderService) GetSession(ctx context.Context, caller domain.Caller, sessionID int) (*domain.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, lookupErr(err, ErrSessionNotFound, "get session")
	}
	if !caller.Owns(session.RestaurantID) {
		return nil, ErrForbidden
	}
	return session, nil
}

func (s *OrderService) SetSessionStatus(ctx context.Context, caller domain.Caller, sessionID int, in StatusInput) (*domain.Session, error) {
	status := domain.SessionStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !status.Closing() {
		return nil, ErrInvalidStatus
	}

	session, err := s.GetSession(ctx, caller, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionActive {
		return nil, ErrAlreadyClosed
	}

	now := s.now()
	closed, err := s.sessions.CloseSession(ctx, session.ID, status, now)
	if err != nil {
		return nil, upstream("close session", err)
	}
	if !closed {
		return nil, ErrAlreadyClosed
	}

	receipt, err := s.sessions.GetSession(ctx, session.ID)
	if err != nil {
		return nil, lookupErr(err, ErrSessionNotFound, "get session")
	}

	s.publish(ctx, domain.OrderEvent{
		Type:         domain.EventSessionClosed,
		RestaurantID: receipt.RestaurantID,
		TableID:      receipt.TableID,
		SessionID:    receipt.ID,
		Status:       string(status),
		Total:        receipt.TotalAmount,
		Timestamp:    now,
	})
	return receipt, nil
}

func (s *OrderService) ListSessionsForTable(ctx context.Context, caller domain.Caller, tableID int) ([]domain.Session, error) {
	table, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, lookupErr(err, ErrTableNotFound, "get table")
	}
	if !caller.Owns(table.RestaurantID) {
		return nil, ErrForbidden
	}

	sessions, err := s.sessions.ListSessionsForTable(ctx, tableID)
	if err != nil {
		return nil, upstream("list sessions", err)
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}

func (s *OrderService) ownedOrder(ctx context.Context, caller domain.Caller, orderID int) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, lookupErr(err, ErrOrderNotFound, "get order")
	}
	if !caller.Owns(order.RestaurantID) {
		return nil, ErrForbidden
	}
	return order, nil
}

// markNew flags orders created inside the window that nobody acknowledged yet.
func (s *OrderService) markNew(ctx context.Context, orders []*domain.Order) {
	if s.cfg.NewOrderWindow <= 0 {
		return
	}
	cutoff := s.now().Add(-s.cfg.NewOrderWindow)
	for _, order := range orders {
		order.IsNew = false
		if order.CreatedAt.Before(cutoff) || order.Status == domain.OrderCancelled {
			continue
		}
		order.IsNew = true
		if s.acks == nil {
			continue
		}
		acked, err := s.acks.Exists(ctx, s.acks.AckMarkerKey(order.ID))
		if err != nil {
			log.Printf("ERROR: ack lookup for order %d: %v", order.ID, err)
			continue
		}
		order.IsNew = !acked
	}
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("ERROR: publish %s for restaurant %d: %v", event.Type, event.RestaurantID, err)
	}
}

func lookupErr(err, notFound error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return upstream(op, err)
}

func (s *OrderService) lockTable(ctx context.Context, tableID int) (func(), error) {
	unlock, err := s.locker.Lock(ctx, tableID)
	if errors.Is(err, domain.ErrTableLocked) {
		return nil, ErrTableBusy
	}
	if err != nil {
		return nil, upstream("lock table", err)
	}
	return unlock, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, int) (func(), error) { return func() {}, nil }
