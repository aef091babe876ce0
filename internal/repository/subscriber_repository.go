package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SubscriberRepo stores newsletter sign-ups.
type SubscriberRepo struct {
	db *sql.DB
}

func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Subscribe adds email to the list.  Subscribing twice is not an error;
// created reports whether a new row was written.
func (r *SubscriberRepo) Subscribe(ctx context.Context, email string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx, `INSERT IGNORE INTO newsletter_subscribers (email) VALUES (?)`, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of subscribers.
func (r *SubscriberRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	return n, err
}
