package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/healthycorner/site-api/internal/model"
)

// ContentRepo stores the editable site content (section, key) items.
type ContentRepo struct {
	db *sql.DB
}

// NewContentRepo returns a ContentRepo bound to db.
func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

const contentCols = `id, section, content_key, value, json_value, image_url, published, created_at, updated_at`

// contentPatch is the column allow-list for admin PATCH requests.
var contentPatch = columns{
	"value":     "value",
	"json":      "json_value",
	"image_url": "image_url",
	"published": "published",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (model.ContentItem, error) {
	var (
		it       model.ContentItem
		value    sql.NullString
		raw      []byte
		imageURL sql.NullString
	)
	if err := s.Scan(&it.ID, &it.Section, &it.Key, &value, &raw, &imageURL, &it.Published, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return it, err
	}
	it.Value = nullString(value)
	it.JSON = rawJSON(raw)
	it.ImageURL = nullString(imageURL)
	return it, nil
}

func (r *ContentRepo) query(ctx context.Context, q string, args ...any) ([]model.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContentItem{}
	for rows.Next() {
		it, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListPublished returns the published items of a section ordered by key.
// An empty section returns every published item.
func (r *ContentRepo) ListPublished(ctx context.Context, section string) ([]model.ContentItem, error) {
	if section == "" {
		return r.query(ctx, `SELECT `+contentCols+` FROM site_content WHERE published=1 ORDER BY section, content_key`)
	}
	return r.query(ctx, `SELECT `+contentCols+` FROM site_content WHERE published=1 AND section=? ORDER BY content_key`, section)
}

// List returns every item, optionally filtered by section, most recently
// edited first.
func (r *ContentRepo) List(ctx context.Context, section string) ([]model.ContentItem, error) {
	if section == "" {
		return r.query(ctx, `SELECT `+contentCols+` FROM site_content ORDER BY updated_at DESC`)
	}
	return r.query(ctx, `SELECT `+contentCols+` FROM site_content WHERE section=? ORDER BY updated_at DESC`, section)
}

// GetByID fetches a single item.
func (r *ContentRepo) GetByID(ctx context.Context, id uint64) (model.ContentItem, error) {
	it, err := scanContent(r.db.QueryRowContext(ctx, `SELECT `+contentCols+` FROM site_content WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrNotFound
	}
	return it, err
}

// GetBySectionKey fetches the item stored under (section, key).
func (r *ContentRepo) GetBySectionKey(ctx context.Context, section, key string) (model.ContentItem, error) {
	it, err := scanContent(r.db.QueryRowContext(ctx,
		`SELECT `+contentCols+` FROM site_content WHERE section=? AND content_key=?`, section, key))
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrNotFound
	}
	return it, err
}

const upsertContent = `INSERT INTO site_content (section, content_key, value, json_value, image_url, published)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id), value=VALUES(value), json_value=VALUES(json_value),
image_url=VALUES(image_url), published=VALUES(published)`

// Upsert inserts the item or replaces the payload of the existing
// (section, key) row.  it.ID is set to the affected row's id.
func (r *ContentRepo) Upsert(ctx context.Context, it *model.ContentItem) error {
	return upsertItem(ctx, r.db, it)
}

// UpsertTx is Upsert within the caller's transaction.
func (r *ContentRepo) UpsertTx(ctx context.Context, tx *sql.Tx, it *model.ContentItem) error {
	return upsertItem(ctx, tx, it)
}

func upsertItem(ctx context.Context, db execer, it *model.ContentItem) error {
	res, err := db.ExecContext(ctx, upsertContent,
		it.Section, it.Key, it.Value, jsonArg(it.JSON), it.ImageURL, it.Published)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// Patch updates the allowed columns named in fields.
func (r *ContentRepo) Patch(ctx context.Context, id uint64, fields map[string]any) error {
	return patchRow(ctx, r.db, "site_content", contentPatch, id, fields)
}

// Delete removes an item.
func (r *ContentRepo) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.db, "site_content", id)
}

// BeginTx starts a transaction for multi-item writes.
func (r *ContentRepo) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}
