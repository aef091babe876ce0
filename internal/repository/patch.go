package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// columns maps request keys to table columns for partial updates.  Keys
// that are not present are silently dropped.
type columns map[string]string

// buildPatch returns "col1=?, col2=?" and the matching args for every
// allowed key in fields, in key order.
func buildPatch(allowed columns, fields map[string]any) (string, []any, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := allowed[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", nil, ErrEmptyPatch
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		v, err := columnValue(fields[k])
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, allowed[k]+"=?")
		args = append(args, v)
	}
	return strings.Join(sets, ", "), args, nil
}

// patchRow runs UPDATE table SET ... WHERE id=? and reports ErrNotFound when
// no row matched.
func patchRow(ctx context.Context, db execer, table string, allowed columns, id uint64, fields map[string]any) error {
	set, args, err := buildPatch(allowed, fields)
	if err != nil {
		return err
	}
	args = append(args, id)
	res, err := db.ExecContext(ctx, "UPDATE "+table+" SET "+set+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// deleteRow removes a row by id.
func deleteRow(ctx context.Context, db execer, table string, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id=?", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// columnValue converts a decoded JSON value into a driver argument.
// Objects and arrays are stored as JSON text.
func columnValue(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case json.RawMessage:
		return jsonArg(t), nil
	default:
		return v, nil
	}
}

// jsonArg passes raw JSON as text; MySQL rejects JSON built from binary
// strings.
func jsonArg(raw json.RawMessage) any {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	return s
}

// nullString converts a nullable column into *string.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}

// placeholders returns "?,?,?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
