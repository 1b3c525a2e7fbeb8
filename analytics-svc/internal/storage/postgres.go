package storage

import (
	"context"
	"database/sql"
	"time"

	"tableorder/analytics-svc/internal/domain"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Snapshot reads the window inside one read-only repeatable-read transaction
// so orders, lines and sessions agree with each other.
func (s *PostgresStore) Snapshot(ctx context.Context, restaurantID int, from, to time.Time) (*domain.Snapshot, error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snapshot := &domain.Snapshot{
		Orders:     []domain.OrderRecord{},
		Sessions:   []domain.SessionRecord{},
		Categories: map[int]string{},
	}

	byID, err := loadOrders(ctx, tx, snapshot, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	if err := loadLines(ctx, tx, snapshot, byID, restaurantID, from, to); err != nil {
		return nil, err
	}
	if err := loadSessions(ctx, tx, snapshot, restaurantID, from, to); err != nil {
		return nil, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dining_tables WHERE restaurant_id = $1 AND is_active", restaurantID,
	).Scan(&snapshot.TableCount); err != nil {
		return nil, err
	}
	if err := loadCategories(ctx, tx, snapshot, restaurantID); err != nil {
		return nil, err
	}

	return snapshot, tx.Commit()
}

func loadOrders(ctx context.Context, tx *sql.Tx, snapshot *domain.Snapshot, restaurantID int, from, to time.Time) (map[int]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, table_id, session_id, status, created_at
		FROM orders
		WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, id`, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]int)
	for rows.Next() {
		var order domain.OrderRecord
		if err := rows.Scan(&order.ID, &order.TableID, &order.SessionID, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Lines = []domain.LineRecord{}
		byID[order.ID] = len(snapshot.Orders)
		snapshot.Orders = append(snapshot.Orders, order)
	}
	return byID, rows.Err()
}

// loadLines keeps lines whose menu item was deleted; they come back with an
// empty name and category 0.
func loadLines(ctx context.Context, tx *sql.Tx, snapshot *domain.Snapshot, byID map[int]int, restaurantID int, from, to time.Time) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := tx.QueryContext(ctx, `
		SELECT oi.order_id, oi.menu_item_id, COALESCE(mi.name, ''), COALESCE(mi.category_id, 0), oi.quantity, oi.price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE o.restaurant_id = $1 AND o.created_at >= $2 AND o.created_at < $3
		ORDER BY oi.order_id, oi.position`, restaurantID, from, to)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var line domain.LineRecord
		if err := rows.Scan(&orderID, &line.MenuItemID, &line.Name, &line.CategoryID, &line.Quantity, &line.Price); err != nil {
			return err
		}
		if i, ok := byID[orderID]; ok {
			snapshot.Orders[i].Lines = append(snapshot.Orders[i].Lines, line)
		}
	}
	return rows.Err()
}

func loadSessions(ctx context.Context, tx *sql.Tx, snapshot *domain.Snapshot, restaurantID int, from, to time.Time) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT s.id, s.table_id, s.status, s.start_time, s.end_time, COALESCE(t.capacity, 0)
		FROM table_sessions s
		LEFT JOIN dining_tables t ON t.id = s.table_id
		WHERE s.restaurant_id = $1 AND s.start_time >= $2 AND s.start_time < $3
		ORDER BY s.start_time, s.id`, restaurantID, from, to)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var session domain.SessionRecord
		var end sql.NullTime
		if err := rows.Scan(&session.ID, &session.TableID, &session.Status, &session.StartTime, &end, &session.TableCapacity); err != nil {
			return err
		}
		if end.Valid {
			t := end.Time
			session.EndTime = &t
		}
		snapshot.Sessions = append(snapshot.Sessions, session)
	}
	return rows.Err()
}

func loadCategories(ctx context.Context, tx *sql.Tx, snapshot *domain.Snapshot, restaurantID int) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.id, c.name
		FROM menu_categories c
		JOIN menus m ON m.id = c.menu_id
		WHERE m.restaurant_id = $1`, restaurantID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		snapshot.Categories[id] = name
	}
	return rows.Err()
}
