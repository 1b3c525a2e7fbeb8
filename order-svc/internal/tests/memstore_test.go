package tests

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"tableorder/order-svc/internal/domain"
)

// memStore keeps catalog, tables, sessions and orders in memory with the same
// contracts as the Postgres repository.
type memStore struct {
	mu       sync.Mutex
	items    map[int]domain.MenuItem
	menus    map[int]domain.Menu
	tables   map[int]domain.Table
	sessions map[int]domain.Session
	orders   map[int]domain.Order
	nextID   int
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[int]domain.MenuItem{},
		menus:    map[int]domain.Menu{},
		tables:   map[int]domain.Table{},
		sessions: map[int]domain.Session{},
		orders:   map[int]domain.Order{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.items[item.ID] = *item
	return nil
}

func (m *memStore) GetMenuItem(_ context.Context, id int) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (m *memStore) ListMenuItems(_ context.Context, restaurantID int) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []domain.MenuItem
	for _, item := range m.items {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memStore) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[item.ID] = *item
	return nil
}

func (m *memStore) CreateMenu(_ context.Context, menu *domain.Menu) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu.ID = m.id()
	for i := range menu.Categories {
		menu.Categories[i].ID = m.id()
	}
	m.menus[menu.ID] = *menu
	m.linkItemsLocked(*menu)
	return nil
}

func (m *memStore) linkItemsLocked(menu domain.Menu) {
	for _, category := range menu.Categories {
		for _, itemID := range category.ItemIDs {
			if item, ok := m.items[itemID]; ok && item.RestaurantID == menu.RestaurantID {
				item.CategoryID = category.ID
				m.items[itemID] = item
			}
		}
	}
}

func (m *memStore) GetMenu(_ context.Context, id int) (*domain.Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &menu, nil
}

func (m *memStore) ListMenus(_ context.Context, restaurantID int) ([]domain.Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var menus []domain.Menu
	for _, menu := range m.menus {
		if menu.RestaurantID == restaurantID {
			menus = append(menus, menu)
		}
	}
	return menus, nil
}

func (m *memStore) GetActiveMenu(_ context.Context, restaurantID int) (*domain.Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, menu := range m.menus {
		if menu.RestaurantID == restaurantID && menu.IsActive {
			return &menu, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) ActivateMenu(_ context.Context, restaurantID, menuID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, menu := range m.menus {
		if menu.RestaurantID == restaurantID {
			menu.IsActive = id == menuID
			m.menus[id] = menu
		}
	}
	if menu, ok := m.menus[menuID]; ok && menu.RestaurantID == restaurantID {
		m.linkItemsLocked(menu)
	}
	return nil
}

func (m *memStore) CreateTable(_ context.Context, table *domain.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	table.ID = m.id()
	m.tables[table.ID] = *table
	return nil
}

func (m *memStore) GetTable(_ context.Context, id int) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table, ok := m.tables[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &table, nil
}

func (m *memStore) GetTableByQRCode(_ context.Context, qrCode string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, table := range m.tables {
		if table.QRCode == qrCode {
			return &table, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) ListTables(_ context.Context, restaurantID int) ([]domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tables []domain.Table
	for _, table := range m.tables {
		if table.RestaurantID == restaurantID {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func (m *memStore) activeSessionLocked(tableID int) *domain.Session {
	for _, session := range m.sessions {
		if session.TableID == tableID && session.Status == domain.SessionActive {
			return &session
		}
	}
	return nil
}

func (m *memStore) FindActiveSession(_ context.Context, tableID int) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeSessionLocked(tableID), nil
}

func (m *memStore) CreateSession(_ context.Context, tableID, restaurantID int, startTime time.Time) (*domain.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.activeSessionLocked(tableID); existing != nil {
		return existing, false, nil
	}
	session := domain.Session{
		ID:           m.id(),
		TableID:      tableID,
		RestaurantID: restaurantID,
		Status:       domain.SessionActive,
		StartTime:    startTime,
		OrderIDs:     []int{},
	}
	m.sessions[session.ID] = session

	table := m.tables[tableID]
	table.Status = domain.TableOccupied
	table.CurrentSessionID = &session.ID
	m.tables[tableID] = table
	return &session, true, nil
}

func (m *memStore) GetSession(_ context.Context, id int) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	session.OrderIDs = []int{}
	session.Orders = []domain.Order{}
	for _, order := range m.sortedOrdersLocked() {
		if order.SessionID == id {
			session.OrderIDs = append(session.OrderIDs, order.ID)
			session.Orders = append(session.Orders, order)
		}
	}
	return &session, nil
}

func (m *memStore) CloseSession(_ context.Context, id int, status domain.SessionStatus, endTime time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || session.Status != domain.SessionActive {
		return false, nil
	}
	session.Status = status
	session.EndTime = &endTime
	m.sessions[id] = session

	table := m.tables[session.TableID]
	if table.CurrentSessionID != nil && *table.CurrentSessionID == id {
		table.Status = domain.TableAvailable
		table.CurrentSessionID = nil
		m.tables[table.ID] = table
	}
	return true, nil
}

func (m *memStore) ListSessionsForTable(_ context.Context, tableID int) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sessions []domain.Session
	for _, session := range m.sessions {
		if session.TableID == tableID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID > sessions[j].ID })
	return sessions, nil
}

func (m *memStore) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[order.SessionID]
	if !ok || session.Status != domain.SessionActive {
		return domain.ErrSessionClosed
	}
	session.TotalAmount = session.TotalAmount.Add(order.Total)
	m.sessions[session.ID] = session

	order.ID = m.id()
	stored := *order
	stored.Lines = append([]domain.OrderLine(nil), order.Lines...)
	m.orders[order.ID] = stored
	return nil
}

func (m *memStore) GetOrder(_ context.Context, id int) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &order, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, id int, from, to domain.OrderStatus, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = at
	m.orders[id] = order

	if to == domain.OrderCancelled {
		session := m.sessions[order.SessionID]
		session.TotalAmount = session.TotalAmount.Sub(order.Total)
		m.sessions[session.ID] = session
	}
	return true, nil
}

func (m *memStore) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []domain.Order
	for _, order := range m.sortedOrdersLocked() {
		if order.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.TableID > 0 && order.TableID != filter.TableID {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *memStore) sortedOrdersLocked() []domain.Order {
	orders := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

// sessionCount counts sessions for a table in the given status.
func (m *memStore) sessionCount(tableID int, status domain.SessionStatus) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, session := range m.sessions {
		if session.TableID == tableID && session.Status == status {
			n++
		}
	}
	return n
}
