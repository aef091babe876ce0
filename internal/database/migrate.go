package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS site_content (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		section VARCHAR(64) NOT NULL,
		content_key VARCHAR(128) NOT NULL,
		value TEXT NULL,
		json_value JSON NULL,
		image_url VARCHAR(1024) NULL,
		published TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_site_content_section_key (section, content_key)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL DEFAULT '',
		service VARCHAR(255) NOT NULL DEFAULT '',
		booking_date VARCHAR(10) NOT NULL,
		booking_time VARCHAR(5) NOT NULL DEFAULT '',
		guests INT UNSIGNED NOT NULL DEFAULT 1,
		message TEXT NULL,
		status ENUM('pending','confirmed','cancelled','completed') NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_created (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		status ENUM('unread','read','replied') NOT NULL DEFAULT 'unread',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_contact_messages_created (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		description TEXT NULL,
		long_description TEXT NULL,
		price_cents BIGINT NOT NULL,
		compare_at_price_cents BIGINT NULL,
		category VARCHAR(64) NOT NULL DEFAULT 'workshop',
		stock_quantity INT NOT NULL DEFAULT 0,
		track_inventory TINYINT(1) NOT NULL DEFAULT 0,
		metadata JSON NULL,
		published TINYINT(1) NOT NULL DEFAULT 0,
		featured TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_products_slug (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NULL,
		duration_minutes INT NULL,
		price_cents BIGINT NULL,
		max_guests INT NOT NULL DEFAULT 1,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(64) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(64) NOT NULL DEFAULT '',
		status ENUM('pending','processing','completed','cancelled') NOT NULL DEFAULT 'pending',
		subtotal_cents BIGINT NOT NULL,
		tax_cents BIGINT NOT NULL,
		total_cents BIGINT NOT NULL,
		payment_status ENUM('unpaid','paid','refunded') NOT NULL DEFAULT 'unpaid',
		metadata JSON NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_orders_number (order_number)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT UNSIGNED NOT NULL,
		product_id BIGINT UNSIGNED NULL,
		product_name VARCHAR(255) NOT NULL,
		product_slug VARCHAR(255) NULL,
		quantity INT NOT NULL,
		unit_price_cents BIGINT NOT NULL,
		total_price_cents BIGINT NOT NULL,
		CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_newsletter_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'ADMIN',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_admin_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES admin_users(id) ON DELETE CASCADE
	)`,
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
