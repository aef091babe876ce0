package model

import "time"

// RoleAdmin is the only back-office role.
const RoleAdmin = "ADMIN"

// AdminUser represents a row in the admin_users table.
type AdminUser struct {
	ID           uint64    // admin_users.id
	Email        string    // admin_users.email
	PasswordHash string    // admin_users.password_hash
	Role         string    // admin_users.role
	IsActive     bool      // admin_users.is_active
	CreatedAt    time.Time // admin_users.created_at
	UpdatedAt    time.Time // admin_users.updated_at
}
