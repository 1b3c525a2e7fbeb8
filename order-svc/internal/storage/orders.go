package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableorder/order-svc/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	createSessionAttempts = 3
	listOrdersLimit       = 500
)

const sessionColumns = "id, table_id, restaurant_id, status, start_time, end_time, total_amount"

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	var endTime sql.NullTime
	if err := row.Scan(&session.ID, &session.TableID, &session.RestaurantID, &session.Status,
		&session.StartTime, &endTime, &session.TotalAmount); err != nil {
		return nil, err
	}
	if endTime.Valid {
		end := endTime.Time
		session.EndTime = &end
	}
	session.OrderIDs = []int{}
	return &session, nil
}

func (r *PostgresRepository) FindActiveSession(ctx context.Context, tableID int) (*domain.Session, error) {
	session, err := scanSession(r.DB.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM table_sessions
		WHERE table_id = $1 AND status = 'active'`, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return session, err
}

// CreateSession inserts an active session unless one already exists for the table,
// in which case the existing one is returned. The partial unique index arbitrates races.
func (r *PostgresRepository) CreateSession(ctx context.Context, tableID, restaurantID int, startTime time.Time) (*domain.Session, bool, error) {
	for attempt := 0; attempt < createSessionAttempts; attempt++ {
		session, err := r.insertSession(ctx, tableID, restaurantID, startTime)
		if err == nil {
			return session, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, err
		}

		existing, err := r.FindActiveSession(ctx, tableID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	return nil, false, fmt.Errorf("open session for table %d: gave up after %d attempts", tableID, createSessionAttempts)
}

func (r *PostgresRepository) insertSession(ctx context.Context, tableID, restaurantID int, startTime time.Time) (*domain.Session, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	session, err := scanSession(tx.QueryRowContext(ctx, `
		INSERT INTO table_sessions (table_id, restaurant_id, status, start_time, total_amount)
		VALUES ($1, $2, 'active', $3, 0)
		ON CONFLICT (table_id) WHERE status = 'active' DO NOTHING
		RETURNING `+sessionColumns, tableID, restaurantID, startTime))
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE dining_tables SET status = 'occupied', current_session_id = $1
		WHERE id = $2`, session.ID, tableID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *PostgresRepository) GetSession(ctx context.Context, id int) (*domain.Session, error) {
	session, err := scanSession(r.DB.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM table_sessions WHERE id = $1", id))
	if err != nil {
		return nil, err
	}

	table, err := r.GetTable(ctx, session.TableID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	session.Table = table

	if err := r.attachOrders(ctx, []*domain.Session{session}); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *PostgresRepository) CloseSession(ctx context.Context, id int, status domain.SessionStatus, endTime time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var tableID int
	err = tx.QueryRowContext(ctx, `
		UPDATE table_sessions SET status = $1, end_time = $2
		WHERE id = $3 AND status = 'active'
		RETURNING table_id`, status, endTime, id).Scan(&tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE dining_tables SET status = 'available', current_session_id = NULL
		WHERE id = $1 AND current_session_id = $2`, tableID, id); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) ListSessionsForTable(ctx context.Context, tableID int) ([]domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+sessionColumns+` FROM table_sessions
		WHERE table_id = $1
		ORDER BY start_time DESC, id DESC`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachOrders(ctx, sessions); err != nil {
		return nil, err
	}

	result := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, *session)
	}
	return result, nil
}

// CreateOrder adds the order total to the session before inserting, so the session row
// lock orders concurrent placements and a closed session aborts the whole write.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sessionID int
	err = tx.QueryRowContext(ctx, `
		UPDATE table_sessions SET total_amount = total_amount + $1
		WHERE id = $2 AND status = 'active'
		RETURNING id`, order.Total, order.SessionID).Scan(&sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrSessionClosed
	}
	if err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (restaurant_id, table_id, session_id, status, notes, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		order.RestaurantID, order.TableID, order.SessionID, order.Status, order.Notes, order.Total,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID); err != nil {
		return err
	}

	for i, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, line.MenuItemID, line.Quantity, line.Price, line.Notes, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = "id, restaurant_id, table_id, session_id, status, notes, total, created_at, updated_at"

func scanOrder(row scanner) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.SessionID, &order.Status,
		&order.Notes, &order.Total, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.Lines = []domain.OrderLine{}
	return &order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus is a compare-and-set on status. Cancelling takes the order
// total back out of its session in the same transaction.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, from, to domain.OrderStatus, at time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var sessionID int
	var total decimal.Decimal
	err = tx.QueryRowContext(ctx, `
		UPDATE orders SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING session_id, total`, to, at, id, from).Scan(&sessionID, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if to == domain.OrderCancelled && from != domain.OrderCancelled {
		if _, err := tx.ExecContext(ctx, `
			UPDATE table_sessions SET total_amount = total_amount - $1
			WHERE id = $2`, total, sessionID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	conditions := []string{"restaurant_id = $1"}
	args := []interface{}{filter.RestaurantID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TableID > 0 {
		args = append(args, filter.TableID)
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := "SELECT " + orderColumns + " FROM orders WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %d", listOrdersLimit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *PostgresRepository) attachOrders(ctx context.Context, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	byID := make(map[int]*domain.Session, len(sessions))
	ids := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		session.Orders = []domain.Order{}
		byID[session.ID] = session
		ids = append(ids, int64(session.ID))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE session_id = ANY($1)
		ORDER BY created_at, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return err
	}

	for _, order := range orders {
		if session, ok := byID[order.SessionID]; ok {
			session.Orders = append(session.Orders, *order)
			session.OrderIDs = append(session.OrderIDs, order.ID)
		}
	}
	return nil
}

// attachLines loads line items; a line whose menu item was deleted keeps its
// snapshot price and reports an unknown name instead of failing the read.
func (r *PostgresRepository) attachLines(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, int64(order.ID))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.order_id, oi.menu_item_id, mi.name, oi.quantity, oi.price, oi.notes
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var name sql.NullString
		var line domain.OrderLine
		if err := rows.Scan(&orderID, &line.MenuItemID, &name, &line.Quantity, &line.Price, &line.Notes); err != nil {
			return err
		}
		line.Name = domain.UnknownItemName
		if name.Valid {
			line.Name = name.String
		}
		if order, ok := byID[orderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	return rows.Err()
}
