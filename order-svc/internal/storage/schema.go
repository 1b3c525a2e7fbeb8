package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL,
		category_id INT NOT NULL DEFAULT 0,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price > 0),
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		preparation_time INT NOT NULL DEFAULT 0,
		is_spicy BOOLEAN NOT NULL DEFAULT FALSE,
		is_vegetarian BOOLEAN NOT NULL DEFAULT FALSE,
		is_vegan BOOLEAN NOT NULL DEFAULT FALSE,
		allergens JSONB NOT NULL DEFAULT '[]',
		nutrition JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (restaurant_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS menus (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'default',
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		availability JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (restaurant_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS menu_categories (
		id SERIAL PRIMARY KEY,
		menu_id INT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0,
		item_ids JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS dining_tables (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL,
		number INT NOT NULL,
		capacity INT NOT NULL CHECK (capacity >= 1),
		status TEXT NOT NULL DEFAULT 'available',
		qr_code UUID NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		current_session_id INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (restaurant_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS table_sessions (
		id SERIAL PRIMARY KEY,
		table_id INT NOT NULL REFERENCES dining_tables(id),
		restaurant_id INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		start_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		end_time TIMESTAMPTZ,
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	// At most one active session per table; CreateSession relies on it for ON CONFLICT.
	`CREATE UNIQUE INDEX IF NOT EXISTS table_sessions_one_active
		ON table_sessions (table_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS table_sessions_restaurant_start
		ON table_sessions (restaurant_id, start_time DESC)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL,
		table_id INT NOT NULL REFERENCES dining_tables(id),
		session_id INT NOT NULL REFERENCES table_sessions(id),
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		total NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_restaurant_created
		ON orders (restaurant_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS orders_session ON orders (session_id)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_item_id INT NOT NULL,
		quantity INT NOT NULL CHECK (quantity >= 1),
		price NUMERIC(10,2) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order ON order_items (order_id)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
