package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /v1/admin/orders?page=&sort=.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	return listPage(c, h.Orders.Count, h.Orders.ListPage)
}

// OrderItems handles GET /v1/admin/orders/:id/items.
func (h *AdminHandler) OrderItems(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Orders.Items(ctx, id)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateOrder handles PATCH /v1/admin/orders/:id with {status?, payment_status?}.
func (h *AdminHandler) UpdateOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req struct {
		Status        *string `json:"status"`
		PaymentStatus *string `json:"payment_status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == nil && req.PaymentStatus == nil {
		return badRequest(c, "status or payment_status is required")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Orders.UpdateStatus(ctx, id, req.Status, req.PaymentStatus); err != nil {
		return dbError(c, err)
	}
	return success(c)
}

// DeleteOrder handles DELETE /v1/admin/orders/:id.
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Orders.Delete(ctx, id); err != nil {
		return dbError(c, err)
	}
	return success(c)
}
