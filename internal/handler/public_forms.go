package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/queue"
	"github.com/healthycorner/site-api/internal/service"
)

type bookingReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  int    `json:"guests"`
	Message string `json:"message"`
}

// CreateBooking handles POST /v1/bookings.
func (h *PublicHandler) CreateBooking(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Name) || blank(req.Email) || blank(req.Date) {
		return badRequest(c, "name, email and date are required")
	}
	b := &model.Booking{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Service: strings.TrimSpace(req.Service),
		Date:    strings.TrimSpace(req.Date),
		Time:    strings.TrimSpace(req.Time),
		Guests:  req.Guests,
	}
	if b.Guests <= 0 {
		b.Guests = 1
	}
	if msg := strings.TrimSpace(req.Message); msg != "" {
		b.Message = &msg
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Bookings.Create(ctx, b); err != nil {
		return dbError(c, err)
	}

	service.Emit(ctx, h.Events, queue.EventBookingCreated, traceID(c), strconv.FormatUint(b.ID, 10), queue.BookingCreated{
		BookingID: b.ID, Name: b.Name, Email: b.Email, Service: b.Service, Date: b.Date, Time: b.Time, Guests: b.Guests,
	})
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": b.ID})
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateContact handles POST /v1/contact.
func (h *PublicHandler) CreateContact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Name) || blank(req.Email) || blank(req.Message) {
		return badRequest(c, "name, email and message are required")
	}
	m := &model.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Messages.Create(ctx, m); err != nil {
		return dbError(c, err)
	}

	service.Emit(ctx, h.Events, queue.EventContactReceived, traceID(c), strconv.FormatUint(m.ID, 10), queue.ContactReceived{
		MessageID: m.ID, Name: m.Name, Email: m.Email, Subject: m.Subject, Message: m.Message,
	})
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": m.ID})
}

// Subscribe handles POST /v1/newsletter.  A repeat sign-up answers 200.
func (h *PublicHandler) Subscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Email) || !strings.Contains(req.Email, "@") {
		return badRequest(c, "a valid email is required")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	created, err := h.Subscribers.Subscribe(ctx, req.Email)
	if err != nil {
		return dbError(c, err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"success": true})
}
