package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/utils"
)

// UserRepo reads and writes back-office accounts.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, email, password_hash, role, is_active, created_at, updated_at`

// Create hashes password and inserts an account, returning its id.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO admin_users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, "SELECT "+userCols+" FROM admin_users WHERE "+where+" LIMIT 1", arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches an account by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	return r.get(ctx, "email=?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	return r.get(ctx, "id=?", id)
}

// EnsureAdmin creates an active ADMIN account for email unless one exists.
// An existing account keeps its password.  created reports whether a row
// was inserted.
func (r *UserRepo) EnsureAdmin(ctx context.Context, email, password string, cost int) (created bool, err error) {
	_, err = r.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if _, err := r.Create(ctx, email, password, model.RoleAdmin, cost); err != nil {
		if errors.Is(err, ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
