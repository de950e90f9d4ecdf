package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		premium_expiry_date TIMESTAMPTZ,
		image_user TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		token_hash BYTEA PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL DEFAULT 0,
		category_id TEXT REFERENCES categories(id),
		quantity INTEGER NOT NULL DEFAULT 1,
		posted_date DATE NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS item_images (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		image_url TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL REFERENCES users(id),
		receiver_id TEXT NOT NULL REFERENCES users(id),
		body TEXT NOT NULL,
		sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		payment_method TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS premium_packages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		duration_days INTEGER NOT NULL,
		price NUMERIC NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_premium_packages (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		package_id TEXT NOT NULL REFERENCES premium_packages(id),
		purchase_date TIMESTAMPTZ NOT NULL,
		expiry_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		buyer_id TEXT NOT NULL REFERENCES users(id),
		seller_id TEXT NOT NULL REFERENCES users(id),
		buyer_item_id TEXT NOT NULL REFERENCES items(id),
		seller_item_id TEXT NOT NULL REFERENCES items(id),
		transaction_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		total_amount NUMERIC
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_seller ON items(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_buyer ON transactions(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_seller ON transactions(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens(user_id)`,
}

// Migrate applies the schema. Statements are idempotent so startup can run
// this unconditionally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
