package repository

import (
	"context"
	"database/sql"

	"github.com/healthycorner/site-api/internal/listing"
	"github.com/healthycorner/site-api/internal/model"
)

// BookingRepo persists booking requests.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b with status pending and sets b.ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (name, email, phone, service, booking_date, booking_time, guests, message, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	res, err := r.db.ExecContext(ctx, q, b.Name, b.Email, b.Phone, b.Service, b.Date, b.Time, b.Guests, b.Message, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Count returns the number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

// CountByStatus returns the number of bookings in status.
func (r *BookingRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE status=?`, status).Scan(&n)
	return n, err
}

// ListPage returns one page of bookings ordered by created_at.
func (r *BookingRepo) ListPage(ctx context.Context, p listing.Params) ([]model.Booking, error) {
	dir := p.OrderBy()
	q := `SELECT id, name, email, phone, service, booking_date, booking_time, guests, message, status, created_at
FROM bookings ORDER BY created_at ` + dir + `, id ` + dir + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, listing.PageSize, listing.Offset(p.Page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var (
			b   model.Booking
			msg sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Service, &b.Date, &b.Time, &b.Guests, &msg, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Message = nullString(msg)
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if !model.ValidStatus(status, model.BookingStatuses) {
		return ErrInvalidStatus
	}
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Delete removes a booking.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "bookings", id)
}
