package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthycorner/site-api/internal/listing"
	"github.com/healthycorner/site-api/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var contentColumns = []string{"id", "section", "content_key", "value", "json_value", "image_url", "published", "created_at", "updated_at"}

func TestContentUpsertSetsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContentRepo(db)

	mock.ExpectExec(`INSERT INTO site_content .* ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID\(id\)`).
		WithArgs("schedule", "classes", nil, `[{"day":"Monday"}]`, nil, true).
		WillReturnResult(sqlmock.NewResult(17, 2))

	it := &model.ContentItem{Section: "schedule", Key: "classes", JSON: json.RawMessage(`[{"day":"Monday"}]`), Published: true}
	require.NoError(t, repo.Upsert(context.Background(), it))
	assert.Equal(t, uint64(17), it.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentListPublishedScansNullables(t *testing.T) {
	db, mock := newMock(t)
	repo := NewContentRepo(db)
	now := time.Now()

	mock.ExpectQuery(`FROM site_content WHERE published=1 AND section=\? ORDER BY content_key`).
		WithArgs("hero").
		WillReturnRows(sqlmock.NewRows(contentColumns).
			AddRow(1, "hero", "background_image", nil, nil, "/images/hero-bg.jpg", true, now, now).
			AddRow(2, "hero", "title", "healthy corner", nil, nil, true, now, now))

	items, err := repo.ListPublished(context.Background(), "hero")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Value)
	assert.Equal(t, "/images/hero-bg.jpg", *items[0].ImageURL)
	assert.Nil(t, items[0].JSON)
	assert.Equal(t, "healthy corner", *items[1].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentGetBySectionKeyNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM site_content WHERE section=\? AND content_key=\?`).
		WillReturnRows(sqlmock.NewRows(contentColumns))

	_, err := NewContentRepo(db).GetBySectionKey(context.Background(), "schedule", "events")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentPatchMapsJSONColumn(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE site_content SET json_value=\?, published=\? WHERE id=\?`).
		WithArgs(`{"k":"v"}`, false, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewContentRepo(db).Patch(context.Background(), 3, map[string]any{
		"json":      map[string]any{"k": "v"},
		"published": false,
		"section":   "ignored",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateRetriesSlug(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'yoga-mat' for key 'slug'"}
	mock.ExpectExec(`INSERT INTO products`).
		WithArgs("Yoga Mat", "yoga-mat", nil, nil, int64(2500), nil, "workshop", 0, false, "{}", true, false).
		WillReturnError(dup)
	mock.ExpectExec(`INSERT INTO products`).
		WithArgs("Yoga Mat", "yoga-mat-2", nil, nil, int64(2500), nil, "workshop", 0, false, "{}", true, false).
		WillReturnResult(sqlmock.NewResult(8, 1))

	p := &model.Product{Name: "Yoga Mat", PriceCents: 2500, Published: true}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, uint64(8), p.ID)
	assert.Equal(t, "yoga-mat-2", p.Slug)
	assert.Equal(t, "workshop", p.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateGivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newMock(t)
	dup := &mysql.MySQLError{Number: 1062}
	for i := 0; i < maxSlugAttempts; i++ {
		mock.ExpectExec(`INSERT INTO products`).WillReturnError(dup)
	}
	err := NewProductRepo(db).Create(context.Background(), &model.Product{Name: "Tea"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenValidate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTokenRepo(db)
	cols := []string{"user_id", "expires_at", "revoked_at"}
	future := time.Now().UTC().Add(time.Hour)

	mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash=\?`).WithArgs("live").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, future, nil))
	id, err := repo.Validate(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)

	mock.ExpectQuery(`FROM refresh_tokens`).WithArgs("revoked").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, future, time.Now()))
	_, err = repo.Validate(context.Background(), "revoked")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(`FROM refresh_tokens`).WithArgs("expired").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, time.Now().UTC().Add(-time.Minute), nil))
	_, err = repo.Validate(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(`FROM refresh_tokens`).WithArgs("unknown").WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.Validate(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRevokeOnlyOnce(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTokenRepo(db)

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP\(\) WHERE token_hash=\? AND revoked_at IS NULL`).
		WithArgs("h").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).WithArgs("h").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Revoke(context.Background(), "h"))
	assert.ErrorIs(t, repo.Revoke(context.Background(), "h"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdmin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	cols := []string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}

	mock.ExpectQuery(`FROM admin_users WHERE email=\?`).WithArgs("owner@example.com").
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectExec(`INSERT INTO admin_users`).
		WithArgs("owner@example.com", sqlmock.AnyArg(), model.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.EnsureAdmin(context.Background(), " Owner@Example.com ", "s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, created)

	now := time.Now()
	mock.ExpectQuery(`FROM admin_users WHERE email=\?`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "owner@example.com", "hash", model.RoleAdmin, true, now, now))
	created, err = repo.EnsureAdmin(context.Background(), "owner@example.com", "other", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO admin_users`).WillReturnError(&mysql.MySQLError{Number: 1062})
	_, err := NewUserRepo(db).Create(context.Background(), "a@b.c", "pw", model.RoleAdmin, bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubscribeIsIdempotent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectExec(`INSERT IGNORE INTO newsletter_subscribers`).WithArgs("ana@example.com").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT IGNORE INTO newsletter_subscribers`).WithArgs("ana@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Subscribe(context.Background(), "Ana@Example.com")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Subscribe(context.Background(), "ana@example.com ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 1, "maybe"), ErrInvalidStatus)

	mock.ExpectExec(`UPDATE bookings SET status=\? WHERE id=\?`).WithArgs(model.BookingConfirmed, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), 2, model.BookingConfirmed))

	mock.ExpectExec(`UPDATE bookings SET status=\? WHERE id=\?`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 404, model.BookingConfirmed), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingListPageUsesOffsetAndDirection(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM bookings ORDER BY created_at ASC, id ASC LIMIT \? OFFSET \?`).
		WithArgs(listing.PageSize, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "service", "booking_date", "booking_time", "guests", "message", "status", "created_at"}).
			AddRow(21, "Ana", "ana@example.com", "", "yoga", "2026-05-01", "08:00", 2, nil, "pending", time.Now()))

	out, err := NewBookingRepo(db).ListPage(context.Background(), listing.Params{Page: 3, Sort: listing.SortAsc})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var serviceColumns = []string{"id", "name", "description", "duration_minutes", "price_cents", "max_guests", "active", "created_at"}

func TestServiceCreateDefaultsMaxGuests(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO services`).
		WithArgs("Sauna", nil, nil, nil, 1, true).
		WillReturnResult(sqlmock.NewResult(4, 1))

	s := &model.Service{Name: "Sauna", Active: true}
	require.NoError(t, NewServiceRepo(db).Create(context.Background(), s))
	assert.Equal(t, uint64(4), s.ID)
	assert.Equal(t, 1, s.MaxGuests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceListActiveScansNullables(t *testing.T) {
	db, mock := newMock(t)
	repo := NewServiceRepo(db)
	now := time.Now()

	mock.ExpectQuery(`FROM services WHERE active=1 ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(serviceColumns).
			AddRow(1, "Ice bath", nil, nil, nil, 1, true, now).
			AddRow(2, "Yoga", "Morning flow", 60, 1500, 8, true, now))
	items, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].DurationMinutes)
	assert.Nil(t, items[0].PriceCents)
	assert.Equal(t, 60, *items[1].DurationMinutes)
	assert.Equal(t, int64(1500), *items[1].PriceCents)
	assert.Equal(t, "Morning flow", *items[1].Description)

	mock.ExpectQuery(`FROM services ORDER BY created_at DESC`).WillReturnRows(sqlmock.NewRows(serviceColumns))
	items, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServicePatchNullMaxGuests(t *testing.T) {
	db, mock := newMock(t)
	repo := NewServiceRepo(db)

	mock.ExpectExec(`UPDATE services SET duration_minutes=\?, max_guests=\? WHERE id=\?`).
		WithArgs(nil, 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	fields := map[string]any{"duration_minutes": nil, "max_guests": nil}
	require.NoError(t, repo.Patch(context.Background(), 3, fields))
	assert.Nil(t, fields["max_guests"])

	mock.ExpectExec(`DELETE FROM services WHERE id=\?`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
