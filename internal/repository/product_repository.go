package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthycorner/site-api/internal/model"
)

// ProductRepo provides CRUD operations for shop products.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, slug, description, long_description, price_cents, compare_at_price_cents,
category, stock_quantity, track_inventory, metadata, published, featured, created_at, updated_at`

var productPatch = columns{
	"name":                   "name",
	"description":            "description",
	"long_description":       "long_description",
	"price_cents":            "price_cents",
	"compare_at_price_cents": "compare_at_price_cents",
	"published":              "published",
	"featured":               "featured",
	"metadata":               "metadata",
}

func scanProduct(s rowScanner) (model.Product, error) {
	var (
		p         model.Product
		desc      sql.NullString
		longDesc  sql.NullString
		compareAt sql.NullInt64
		meta      []byte
	)
	err := s.Scan(&p.ID, &p.Name, &p.Slug, &desc, &longDesc, &p.PriceCents, &compareAt,
		&p.Category, &p.StockQuantity, &p.TrackInventory, &meta, &p.Published, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Description = nullString(desc)
	p.LongDescription = nullString(longDesc)
	if compareAt.Valid {
		v := compareAt.Int64
		p.CompareAtPriceCents = &v
	}
	p.Metadata = rawJSON(meta)
	return p, nil
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPublished returns the storefront products, featured first.
func (r *ProductRepo) ListPublished(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productCols+` FROM products WHERE published=1 ORDER BY featured DESC, created_at DESC`)
}

// List returns all products for the admin view.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productCols+` FROM products ORDER BY featured DESC, created_at DESC`)
}

func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productCols+` FROM products WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

const insertProduct = `INSERT INTO products (name, slug, description, long_description, price_cents, compare_at_price_cents,
category, stock_quantity, track_inventory, metadata, published, featured)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// maxSlugAttempts bounds the "-2", "-3", ... suffixes tried on collision.
const maxSlugAttempts = 5

// Create inserts p with a slug derived from its name.  A taken slug gets a
// numeric suffix.  p.ID and p.Slug are set on success.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	if p.Category == "" {
		p.Category = "workshop"
	}
	if len(p.Metadata) == 0 {
		p.Metadata = []byte(`{}`)
	}
	base := Slugify(p.Name)
	if base == "" {
		base = "product"
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		slug := base
		if i > 1 {
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		res, err := r.db.ExecContext(ctx, insertProduct,
			p.Name, slug, p.Description, p.LongDescription, p.PriceCents, p.CompareAtPriceCents,
			p.Category, p.StockQuantity, p.TrackInventory, jsonArg(p.Metadata), p.Published, p.Featured)
		if err != nil {
			if isDuplicate(err) {
				continue
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		p.ID = uint64(id)
		p.Slug = slug
		return nil
	}
	return ErrConflict
}

func (r *ProductRepo) Patch(ctx context.Context, id uint64, fields map[string]any) error {
	return patchRow(ctx, r.db, "products", productPatch, id, fields)
}

func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "products", id)
}

// PricedProduct is the subset of a product needed to price a cart line.
type PricedProduct struct {
	ID         uint64
	Name       string
	Slug       string
	PriceCents int64
}

// PricesByIDsTx loads the current price of every published product in
// ids within tx.  Missing ids are simply absent from the result.
func (r *ProductRepo) PricesByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) (map[uint64]PricedProduct, error) {
	out := make(map[uint64]PricedProduct, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, slug, price_cents FROM products WHERE published=1 AND id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PricedProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.PriceCents); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}
