package service

import (
	"context"
	"time"

	"tableorder/order-svc/internal/domain"
)

// Repositories return sql.ErrNoRows for missing records.

type CatalogRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	CreateMenu(ctx context.Context, menu *domain.Menu) error
	GetMenu(ctx context.Context, id int) (*domain.Menu, error)
	ListMenus(ctx context.Context, restaurantID int) ([]domain.Menu, error)
	GetActiveMenu(ctx context.Context, restaurantID int) (*domain.Menu, error)
	ActivateMenu(ctx context.Context, restaurantID, menuID int) error
}

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	GetTable(ctx context.Context, id int) (*domain.Table, error)
	GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error)
	ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error)
}

type SessionRepository interface {
	// FindActiveSession returns nil, nil when the table has no active session.
	FindActiveSession(ctx context.Context, tableID int) (*domain.Session, error)
	// CreateSession opens an active session or returns the one that won the race.
	// The bool reports whether this call created it.
	CreateSession(ctx context.Context, tableID, restaurantID int, startTime time.Time) (*domain.Session, bool, error)
	GetSession(ctx context.Context, id int) (*domain.Session, error)
	// CloseSession moves an active session to status; false when it was no longer active.
	CloseSession(ctx context.Context, id int, status domain.SessionStatus, endTime time.Time) (bool, error)
	ListSessionsForTable(ctx context.Context, tableID int) ([]domain.Session, error)
}

type OrderRepository interface {
	// CreateOrder stores the order and its lines and adds its total to the session
	// in one transaction. ErrSessionClosed when the session left active meanwhile.
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	// UpdateOrderStatus applies from -> to only if the order still has status from.
	UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus, at time.Time) (bool, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type TableLocker interface {
	Lock(ctx context.Context, tableID int) (unlock func(), err error)
}

type OrderAckCache interface {
	AckMarkerKey(orderID int) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(qrCode string) ([]byte, error)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
	EnsureActiveSession(ctx context.Context, table *domain.Table) (*domain.Session, error)
	GetOrder(ctx context.Context, caller domain.Caller, orderID int) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, caller domain.Caller, orderID int, in StatusInput) (*domain.Order, error)
	AcknowledgeOrder(ctx context.Context, caller domain.Caller, orderID int) error
	ListOrdersForRestaurant(ctx context.Context, caller domain.Caller, filter domain.OrderFilter) ([]domain.Order, error)
	GetSession(ctx context.Context, caller domain.Caller, sessionID int) (*domain.Session, error)
	SetSessionStatus(ctx context.Context, caller domain.Caller, sessionID int, in StatusInput) (*domain.Session, error)
	ListSessionsForTable(ctx context.Context, caller domain.Caller, tableID int) ([]domain.Session, error)
}

type CatalogServiceInterface interface {
	CreateMenuItem(ctx context.Context, caller domain.Caller, in MenuItemInput) (*domain.MenuItem, error)
	GetMenuItem(ctx context.Context, caller domain.Caller, id int) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, caller domain.Caller) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, caller domain.Caller, id int, in MenuItemInput) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, caller domain.Caller, id int, in AvailabilityInput) (*domain.MenuItem, error)
	CreateMenu(ctx context.Context, caller domain.Caller, in MenuInput) (*domain.Menu, error)
	ListMenus(ctx context.Context, caller domain.Caller) ([]domain.Menu, error)
	ActivateMenu(ctx context.Context, caller domain.Caller, menuID int) error
	GetActiveMenu(ctx context.Context, restaurantID int) (*domain.Menu, error)
	ResolveCategoryName(ctx context.Context, menuID, categoryID int) string
}

type TableServiceInterface interface {
	CreateTable(ctx context.Context, caller domain.Caller, in TableInput) (*domain.Table, error)
	GetTable(ctx context.Context, caller domain.Caller, id int) (*domain.Table, error)
	ListTables(ctx context.Context, caller domain.Caller) ([]domain.Table, error)
	ResolveQRCode(ctx context.Context, qrCode string) (*domain.ScanResult, error)
	TableQRImage(ctx context.Context, caller domain.Caller, id int) ([]byte, error)
}

var (
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ TableServiceInterface   = (*TableService)(nil)
)
