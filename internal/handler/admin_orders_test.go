package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{"id", "order_number", "customer_email", "customer_name", "customer_phone", "status",
	"subtotal_cents", "tax_cents", "total_cents", "payment_status", "metadata", "created_at"}

func TestListOrders(t *testing.T) {
	h, mock, _ := newAdmin(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`FROM orders ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(42, "HC-1-7", "ana@example.com", "Ana", "", "pending", 9000, 1980, 10980, "unpaid",
				`{"city":"Ljubljana"}`, time.Now()))

	rec := serve(t, h.ListOrders, http.MethodGet, "/v1/admin/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	order := items[0].(map[string]any)
	assert.Equal(t, "HC-1-7", order["order_number"])
	assert.Equal(t, float64(10980), order["total_cents"])
	assert.Equal(t, "Ljubljana", order["metadata"].(map[string]any)["city"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItems(t *testing.T) {
	h, mock, _ := newAdmin(t)
	cols := []string{"id", "order_id", "product_id", "product_name", "product_slug", "quantity", "unit_price_cents", "total_price_cents"}
	mock.ExpectQuery(`FROM order_items WHERE order_id=\? ORDER BY id`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 42, 5, "Yoga mat", "yoga-mat", 2, 2500, 5000).
			AddRow(2, 42, nil, "Retired tea", nil, 1, 4000, 4000))

	rec := serve(t, h.OrderItems, http.MethodGet, "/", "", "id", "42")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, float64(5), items[0].(map[string]any)["product_id"])
	assert.Nil(t, items[1].(map[string]any)["product_id"])

	rec = serve(t, h.OrderItems, http.MethodGet, "/", "", "id", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder(t *testing.T) {
	h, mock, _ := newAdmin(t)

	rec := serve(t, h.UpdateOrder, http.MethodPatch, "/", `{}`, "id", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, h.UpdateOrder, http.MethodPatch, "/", `{"payment_status":"lost"}`, "id", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, h.UpdateOrder, http.MethodPatch, "/", `{"status":"shipped","payment_status":"paid"}`, "id", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mock.ExpectExec(`UPDATE orders SET payment_status=\?, status=\? WHERE id=\?`).
		WithArgs("paid", "completed", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec = serve(t, h.UpdateOrder, http.MethodPatch, "/", `{"status":"completed","payment_status":"paid"}`, "id", "42")
	assert.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectExec(`UPDATE orders SET status=\? WHERE id=\?`).WithArgs("cancelled", 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rec = serve(t, h.UpdateOrder, http.MethodPatch, "/", `{"status":"cancelled"}`, "id", "7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder(t *testing.T) {
	h, mock, _ := newAdmin(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM order_items WHERE order_id=\?`).WithArgs(42).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM orders WHERE id=\?`).WithArgs(42).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	rec := serve(t, h.DeleteOrder, http.MethodDelete, "/", "", "id", "42")
	assert.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM order_items WHERE order_id=\?`).WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM orders WHERE id=\?`).WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()
	rec = serve(t, h.DeleteOrder, http.MethodDelete, "/", "", "id", "8")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
