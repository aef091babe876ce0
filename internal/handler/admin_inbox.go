package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
)

type statusReq struct {
	Status string `json:"status"`
}

// ListBookings handles GET /v1/admin/bookings?page=&sort=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	return listPage(c, h.Bookings.Count, h.Bookings.ListPage)
}

// UpdateBookingStatus handles PATCH /v1/admin/bookings/:id.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || blank(req.Status) {
		return badRequest(c, "status is required")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Bookings.UpdateStatus(ctx, id, req.Status); err != nil {
		return dbError(c, err)
	}
	return success(c)
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Bookings.Delete(ctx, id); err != nil {
		return dbError(c, err)
	}
	return success(c)
}

// ListMessages handles GET /v1/admin/messages?page=&sort=.
func (h *AdminHandler) ListMessages(c echo.Context) error {
	return listPage(c, h.Messages.Count, h.Messages.ListPage)
}

// UpdateMessageStatus handles PATCH /v1/admin/messages/:id.
func (h *AdminHandler) UpdateMessageStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || blank(req.Status) {
		return badRequest(c, "status is required")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Messages.UpdateStatus(ctx, id, req.Status); err != nil {
		return dbError(c, err)
	}
	return success(c)
}

// DeleteMessage handles DELETE /v1/admin/messages/:id.
func (h *AdminHandler) DeleteMessage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Messages.Delete(ctx, id); err != nil {
		return dbError(c, err)
	}
	return success(c)
}

// Stats handles GET /v1/admin/stats: the dashboard counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	pending, err := h.Bookings.CountByStatus(ctx, model.BookingPending)
	if err != nil {
		return dbError(c, err)
	}
	unread, err := h.Messages.CountByStatus(ctx, model.MessageUnread)
	if err != nil {
		return dbError(c, err)
	}
	orders, err := h.Orders.Count(ctx)
	if err != nil {
		return dbError(c, err)
	}
	subscribers, err := h.Subs.Count(ctx)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"pending_bookings": pending,
		"unread_messages":  unread,
		"orders":           orders,
		"subscribers":      subscribers,
	})
}
