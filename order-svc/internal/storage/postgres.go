package storage

import (
	"context"
	"database/sql"

	"tableorder/order-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

const menuItemColumns = `id, restaurant_id, category_id, name, description, price, is_available,
	preparation_time, is_spicy, is_vegetarian, is_vegan, allergens, nutrition, created_at, updated_at`

func scanMenuItem(row scanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := row.Scan(&item.ID, &item.RestaurantID, &item.CategoryID, &item.Name, &item.Description,
		&item.Price, &item.IsAvailable, &item.PreparationTime, &item.IsSpicy, &item.IsVegetarian,
		&item.IsVegan, jsonb(&item.Allergens), jsonb(&item.Nutrition), &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if item.Allergens == nil {
		item.Allergens = []string{}
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, category_id, name, description, price, is_available,
			preparation_time, is_spicy, is_vegetarian, is_vegan, allergens, nutrition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		item.RestaurantID, item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable,
		item.PreparationTime, item.IsSpicy, item.IsVegetarian, item.IsVegan,
		jsonb(item.Allergens), jsonb(item.Nutrition),
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return scanMenuItem(r.DB.QueryRowContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1", id))
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE restaurant_id = $1 ORDER BY name", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET category_id=$1, name=$2, description=$3, price=$4, is_available=$5, preparation_time=$6,
			is_spicy=$7, is_vegetarian=$8, is_vegan=$9, allergens=$10, nutrition=$11, updated_at=NOW()
		WHERE id=$12 AND restaurant_id=$13
		RETURNING updated_at`,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, item.PreparationTime,
		item.IsSpicy, item.IsVegetarian, item.IsVegan, jsonb(item.Allergens), jsonb(item.Nutrition),
		item.ID, item.RestaurantID,
	).Scan(&item.UpdatedAt)
}

func (r *PostgresRepository) CreateMenu(ctx context.Context, menu *domain.Menu) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO menus (restaurant_id, name, type, is_active, availability)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id, created_at`,
		menu.RestaurantID, menu.Name, menu.Type, jsonb(menu.Availability),
	).Scan(&menu.ID, &menu.CreatedAt); err != nil {
		return err
	}

	for i := range menu.Categories {
		category := &menu.Categories[i]
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO menu_categories (menu_id, name, description, position, item_ids)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			menu.ID, category.Name, category.Description, category.Position, jsonb(category.ItemIDs),
		).Scan(&category.ID); err != nil {
			return err
		}
		if len(category.ItemIDs) == 0 {
			continue
		}
		ids := make([]int64, 0, len(category.ItemIDs))
		for _, id := range category.ItemIDs {
			ids = append(ids, int64(id))
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE menu_items SET category_id = $1, updated_at = NOW()
			WHERE restaurant_id = $2 AND id = ANY($3)`,
			category.ID, menu.RestaurantID, pq.Array(ids)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const menuColumns = "id, restaurant_id, name, type, is_active, availability, created_at"

func scanMenu(row scanner) (*domain.Menu, error) {
	var menu domain.Menu
	if err := row.Scan(&menu.ID, &menu.RestaurantID, &menu.Name, &menu.Type, &menu.IsActive,
		jsonb(&menu.Availability), &menu.CreatedAt); err != nil {
		return nil, err
	}
	menu.Categories = []domain.Category{}
	return &menu, nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, id int) (*domain.Menu, error) {
	menu, err := scanMenu(r.DB.QueryRowContext(ctx, "SELECT "+menuColumns+" FROM menus WHERE id = $1", id))
	if err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, []*domain.Menu{menu}); err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *PostgresRepository) GetActiveMenu(ctx context.Context, restaurantID int) (*domain.Menu, error) {
	menu, err := scanMenu(r.DB.QueryRowContext(ctx, `
		SELECT `+menuColumns+` FROM menus
		WHERE restaurant_id = $1 AND is_active
		ORDER BY id DESC
		LIMIT 1`, restaurantID))
	if err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, []*domain.Menu{menu}); err != nil {
		return nil, err
	}
	return menu, nil
}

func (r *PostgresRepository) ListMenus(ctx context.Context, restaurantID int) ([]domain.Menu, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+menuColumns+" FROM menus WHERE restaurant_id = $1 ORDER BY created_at DESC", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, menus); err != nil {
		return nil, err
	}

	result := make([]domain.Menu, 0, len(menus))
	for _, menu := range menus {
		result = append(result, *menu)
	}
	return result, nil
}

func (r *PostgresRepository) attachCategories(ctx context.Context, menus []*domain.Menu) error {
	if len(menus) == 0 {
		return nil
	}
	byID := make(map[int]*domain.Menu, len(menus))
	ids := make([]int64, 0, len(menus))
	for _, menu := range menus {
		byID[menu.ID] = menu
		ids = append(ids, int64(menu.ID))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, menu_id, name, description, position, item_ids
		FROM menu_categories
		WHERE menu_id = ANY($1)
		ORDER BY menu_id, position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var category domain.Category
		var menuID int
		if err := rows.Scan(&category.ID, &menuID, &category.Name, &category.Description,
			&category.Position, jsonb(&category.ItemIDs)); err != nil {
			return err
		}
		if category.ItemIDs == nil {
			category.ItemIDs = []int{}
		}
		if menu, ok := byID[menuID]; ok {
			menu.Categories = append(menu.Categories, category)
		}
	}
	return rows.Err()
}

// ActivateMenu leaves exactly the given menu active for the restaurant and
// points every item it lists at the category that lists it.
func (r *PostgresRepository) ActivateMenu(ctx context.Context, restaurantID, menuID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE menus SET is_active = (id = $2) WHERE restaurant_id = $1", restaurantID, menuID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE menu_items mi SET category_id = c.id, updated_at = NOW()
		FROM menu_categories c
		WHERE c.menu_id = $2 AND mi.restaurant_id = $1 AND c.item_ids @> to_jsonb(mi.id)`,
		restaurantID, menuID); err != nil {
		return err
	}
	return tx.Commit()
}

const tableColumns = "id, restaurant_id, number, capacity, status, qr_code, is_active, current_session_id, created_at"

func scanTable(row scanner) (*domain.Table, error) {
	var table domain.Table
	var currentSession sql.NullInt64
	if err := row.Scan(&table.ID, &table.RestaurantID, &table.Number, &table.Capacity, &table.Status,
		&table.QRCode, &table.IsActive, &currentSession, &table.CreatedAt); err != nil {
		return nil, err
	}
	if currentSession.Valid {
		id := int(currentSession.Int64)
		table.CurrentSessionID = &id
	}
	return &table, nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO dining_tables (restaurant_id, number, capacity, status, qr_code, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		table.RestaurantID, table.Number, table.Capacity, table.Status, table.QRCode, table.IsActive,
	).Scan(&table.ID, &table.CreatedAt)
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	return scanTable(r.DB.QueryRowContext(ctx, "SELECT "+tableColumns+" FROM dining_tables WHERE id = $1", id))
}

func (r *PostgresRepository) GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	return scanTable(r.DB.QueryRowContext(ctx, "SELECT "+tableColumns+" FROM dining_tables WHERE qr_code = $1", qrCode))
}

func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID int) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tableColumns+" FROM dining_tables WHERE restaurant_id = $1 ORDER BY number", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.Table{}
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}
