package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/repository"
	"github.com/healthycorner/site-api/internal/schedule"
	"github.com/healthycorner/site-api/internal/service"
)

// PublicHandler serves the unauthenticated site API: content, schedule,
// catalog and the booking, contact, newsletter and checkout forms.
type PublicHandler struct {
	Content     *repository.ContentRepo
	Bookings    *repository.BookingRepo
	Messages    *repository.MessageRepo
	Subscribers *repository.SubscriberRepo
	Products    *repository.ProductRepo
	Services    *repository.ServiceRepo
	Orders      *repository.OrderRepo
	Events      service.Publisher
	TaxPercent  int

	now func() time.Time
}

func NewPublicHandler(db repository.Set, events service.Publisher, taxPercent int) *PublicHandler {
	return &PublicHandler{
		Content:     db.Content,
		Bookings:    db.Bookings,
		Messages:    db.Messages,
		Subscribers: db.Subscribers,
		Products:    db.Products,
		Services:    db.Services,
		Orders:      db.Orders,
		Events:      events,
		TaxPercent:  taxPercent,
		now:         time.Now,
	}
}

// GetContent handles GET /v1/content?section=.
func (h *PublicHandler) GetContent(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Content.ListPublished(ctx, c.QueryParam("section"))
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"content": items})
}

// GetSchedule handles GET /v1/schedule.  ?upcoming=true drops past events.
func (h *PublicHandler) GetSchedule(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	week, events, err := loadSchedule(ctx, h.Content, true)
	if err != nil {
		return dbError(c, err)
	}
	if c.QueryParam("upcoming") == "true" {
		events = schedule.Upcoming(events, h.now())
	}
	return c.JSON(http.StatusOK, echo.Map{"days": week.Days, "events": events})
}

// loadSchedule reads and reconciles both schedule items.  A missing item
// (or an unpublished one, when publishedOnly) yields the defaults.
func loadSchedule(ctx context.Context, content *repository.ContentRepo, publishedOnly bool) (schedule.Weekly, []schedule.Event, error) {
	classes, err := scheduleItem(ctx, content, schedule.ClassesKey, publishedOnly)
	if err != nil {
		return schedule.Weekly{}, nil, err
	}
	evs, err := scheduleItem(ctx, content, schedule.EventsKey, publishedOnly)
	if err != nil {
		return schedule.Weekly{}, nil, err
	}
	events := schedule.DecodeEvents(evs.JSON)
	schedule.SortEvents(events)
	return schedule.DecodeClasses(classes.JSON), events, nil
}

func scheduleItem(ctx context.Context, content *repository.ContentRepo, key string, publishedOnly bool) (model.ContentItem, error) {
	it, err := content.GetBySectionKey(ctx, schedule.Section, key)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && publishedOnly && !it.Published) {
		return model.ContentItem{}, nil
	}
	return it, err
}

// ListProducts handles GET /v1/products.
func (h *PublicHandler) ListProducts(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Products.ListPublished(ctx)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"products": items})
}

// ListServices handles GET /v1/services.
func (h *PublicHandler) ListServices(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Services.ListActive(ctx)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": items})
}
