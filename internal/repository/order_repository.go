package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/healthycorner/site-api/internal/listing"
	"github.com/healthycorner/site-api/internal/model"
)

// OrderRepo persists shop orders and their line items.
type OrderRepo struct {
	db       *sql.DB
	products *ProductRepo
}

// NewOrderRepo returns an OrderRepo.  Prices are read through products at
// checkout time so the client never supplies them.
func NewOrderRepo(db *sql.DB, products *ProductRepo) *OrderRepo {
	return &OrderRepo{db: db, products: products}
}

// CartLine is one requested product and quantity.
type CartLine struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Tax returns round(subtotal * percent / 100) in cents.
func Tax(subtotalCents int64, percent int) int64 {
	return (subtotalCents*int64(percent) + 50) / 100
}

const insertOrder = `INSERT INTO orders (order_number, customer_email, customer_name, customer_phone, status,
subtotal_cents, tax_cents, total_cents, payment_status, metadata)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateWithItems prices cart, then writes the order header and all of its
// line items in one transaction.  Any failure rolls the header back.  o is
// filled with the computed totals and id; the written items are returned.
func (r *OrderRepo) CreateWithItems(ctx context.Context, o *model.Order, cart []CartLine, taxPercent int) ([]model.OrderItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ids := make([]uint64, 0, len(cart))
	for _, l := range cart {
		ids = append(ids, l.ProductID)
	}
	prices, err := r.products.PricesByIDsTx(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(cart))
	var subtotal int64
	for _, l := range cart {
		p, ok := prices[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, l.ProductID)
		}
		pid, slug := p.ID, p.Slug
		line := model.OrderItem{
			ProductID:       &pid,
			ProductName:     p.Name,
			ProductSlug:     &slug,
			Quantity:        l.Quantity,
			UnitPriceCents:  p.PriceCents,
			TotalPriceCents: p.PriceCents * int64(l.Quantity),
		}
		subtotal += line.TotalPriceCents
		items = append(items, line)
	}

	o.SubtotalCents = subtotal
	o.TaxCents = Tax(subtotal, taxPercent)
	o.TotalCents = subtotal + o.TaxCents
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentUnpaid
	}

	res, err := tx.ExecContext(ctx, insertOrder,
		o.OrderNumber, o.CustomerEmail, o.CustomerName, o.CustomerPhone, o.Status,
		o.SubtotalCents, o.TaxCents, o.TotalCents, o.PaymentStatus, jsonArg(o.Metadata))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	o.ID = uint64(id)

	query := `INSERT INTO order_items (order_id, product_id, product_name, product_slug, quantity, unit_price_cents, total_price_cents) VALUES `
	args := make([]any, 0, len(items)*7)
	for i := range items {
		items[i].OrderID = o.ID
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		it := items[i]
		args = append(args, it.OrderID, it.ProductID, it.ProductName, it.ProductSlug, it.Quantity, it.UnitPriceCents, it.TotalPriceCents)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return items, nil
}

const orderCols = `id, order_number, customer_email, customer_name, customer_phone, status,
subtotal_cents, tax_cents, total_cents, payment_status, metadata, created_at`

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status=?`, status).Scan(&n)
	return n, err
}

// ListPage returns one page of order headers ordered by created_at.
func (r *OrderRepo) ListPage(ctx context.Context, p listing.Params) ([]model.Order, error) {
	dir := p.OrderBy()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderCols+` FROM orders ORDER BY created_at `+dir+`, id `+dir+` LIMIT ? OFFSET ?`,
		listing.PageSize, listing.Offset(p.Page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Order{}
	for rows.Next() {
		var (
			o    model.Order
			meta []byte
		)
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerEmail, &o.CustomerName, &o.CustomerPhone, &o.Status,
			&o.SubtotalCents, &o.TaxCents, &o.TotalCents, &o.PaymentStatus, &meta, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Metadata = rawJSON(meta)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Items returns the line items of an order.
func (r *OrderRepo) Items(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, product_slug, quantity, unit_price_cents, total_price_cents
FROM order_items WHERE order_id=? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.OrderItem{}
	for rows.Next() {
		var (
			it   model.OrderItem
			pid  sql.NullInt64
			slug sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &pid, &it.ProductName, &slug, &it.Quantity, &it.UnitPriceCents, &it.TotalPriceCents); err != nil {
			return nil, err
		}
		if pid.Valid {
			v := uint64(pid.Int64)
			it.ProductID = &v
		}
		it.ProductSlug = nullString(slug)
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus changes the fulfilment and/or payment status.  A nil
// argument leaves that column untouched.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status, payment *string) error {
	fields := map[string]any{}
	if status != nil {
		if !model.ValidStatus(*status, model.OrderStatuses) {
			return ErrInvalidStatus
		}
		fields["status"] = *status
	}
	if payment != nil {
		if !model.ValidStatus(*payment, model.PaymentStatuses) {
			return ErrInvalidStatus
		}
		fields["payment_status"] = *payment
	}
	return patchRow(ctx, r.db, "orders", columns{"status": "status", "payment_status": "payment_status"}, id, fields)
}

// Delete removes an order and its items in one transaction.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=?`, id); err != nil {
		return err
	}
	if err := deleteRow(ctx, tx, "orders", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

