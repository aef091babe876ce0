// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to map database
// outcomes to HTTP status codes without inspecting driver errors.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the addressed row does not exist.
// Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with a unique key, such
// as an admin e-mail that is already registered.  Handlers translate it
// into a 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidStatus is returned when a status value is outside the set
// accepted for the entity.
var ErrInvalidStatus = errors.New("invalid status")

// ErrEmptyPatch is returned when a partial update names no allowed column.
var ErrEmptyPatch = errors.New("no updatable fields")

// ErrUnknownProduct is returned when a cart line references a product that
// does not exist or is not published.
var ErrUnknownProduct = errors.New("unknown product")

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "1062")
}
