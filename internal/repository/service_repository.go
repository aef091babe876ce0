package repository

import (
	"context"
	"database/sql"

	"github.com/healthycorner/site-api/internal/model"
)

// ServiceRepo stores the bookable services listed in the booking form.
type ServiceRepo struct {
	db *sql.DB
}

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceCols = `id, name, description, duration_minutes, price_cents, max_guests, active, created_at`

var servicePatch = columns{
	"name":             "name",
	"description":      "description",
	"duration_minutes": "duration_minutes",
	"price_cents":      "price_cents",
	"max_guests":       "max_guests",
	"active":           "active",
}

func (r *ServiceRepo) query(ctx context.Context, q string, args ...any) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Service{}
	for rows.Next() {
		var (
			s     model.Service
			desc  sql.NullString
			dur   sql.NullInt64
			price sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &desc, &dur, &price, &s.MaxGuests, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Description = nullString(desc)
		if dur.Valid {
			d := int(dur.Int64)
			s.DurationMinutes = &d
		}
		if price.Valid {
			p := price.Int64
			s.PriceCents = &p
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListActive returns the services offered on the public site.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]model.Service, error) {
	return r.query(ctx, `SELECT `+serviceCols+` FROM services WHERE active=1 ORDER BY name`)
}

// List returns every service, newest first.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	return r.query(ctx, `SELECT `+serviceCols+` FROM services ORDER BY created_at DESC`)
}

// Create inserts s and sets s.ID.  MaxGuests defaults to 1.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	if s.MaxGuests <= 0 {
		s.MaxGuests = 1
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO services (name, description, duration_minutes, price_cents, max_guests, active) VALUES (?, ?, ?, ?, ?, ?)`,
		s.Name, s.Description, s.DurationMinutes, s.PriceCents, s.MaxGuests, s.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// Patch applies a partial update.  A blank max_guests (null) resets the
// column to its default of 1.
func (r *ServiceRepo) Patch(ctx context.Context, id uint64, fields map[string]any) error {
	if v, ok := fields["max_guests"]; ok && v == nil {
		patched := make(map[string]any, len(fields))
		for k, v := range fields {
			patched[k] = v
		}
		patched["max_guests"] = 1
		fields = patched
	}
	return patchRow(ctx, r.db, "services", servicePatch, id, fields)
}

func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "services", id)
}
