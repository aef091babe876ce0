package repository

import (
	"context"
	"database/sql"

	"github.com/healthycorner/site-api/internal/listing"
	"github.com/healthycorner/site-api/internal/model"
)

// MessageRepo persists contact-form messages.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	if m.Status == "" {
		m.Status = model.MessageUnread
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, status) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Message, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

func (r *MessageRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n)
	return n, err
}

func (r *MessageRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE status=?`, status).Scan(&n)
	return n, err
}

func (r *MessageRepo) ListPage(ctx context.Context, p listing.Params) ([]model.ContactMessage, error) {
	dir := p.OrderBy()
	q := `SELECT id, name, email, subject, message, status, created_at
FROM contact_messages ORDER BY created_at ` + dir + `, id ` + dir + ` LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, listing.PageSize, listing.Offset(p.Page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MessageRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if !model.ValidStatus(status, model.MessageStatuses) {
		return ErrInvalidStatus
	}
	res, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "contact_messages", id)
}
