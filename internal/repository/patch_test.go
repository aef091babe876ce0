package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPatch(t *testing.T) {
	allowed := columns{"name": "name", "json": "json_value", "published": "published"}

	set, args, err := buildPatch(allowed, map[string]any{
		"published": true,
		"name":      "Yoga",
		"id":        7,
		"role":      "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "name=?, published=?", set)
	assert.Equal(t, []any{"Yoga", true}, args)

	set, args, err = buildPatch(allowed, map[string]any{"json": map[string]any{"a": 1.0}})
	require.NoError(t, err)
	assert.Equal(t, "json_value=?", set)
	assert.Equal(t, []any{`{"a":1}`}, args)

	_, _, err = buildPatch(allowed, map[string]any{"id": 1})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestColumnValue(t *testing.T) {
	v, err := columnValue([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = columnValue(json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = columnValue(12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
}

func TestPatchRowNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE services SET name=\? WHERE id=\?`).
		WithArgs("Sauna", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = patchRow(context.Background(), db, "services", columns{"name": "name"}, 9, map[string]any{"name": "Sauna"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM bookings WHERE id=\?`).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, deleteRow(context.Background(), db, "bookings", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Yoga Mat":                  "yoga-mat",
		"  Ice  bath -- workshop ":  "ice-bath-workshop",
		"Zdravilišče Čaj":           "zdravilisce-caj",
		"100% Organic!":             "100-organic",
		"!!!":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
