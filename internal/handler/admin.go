package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/listing"
	"github.com/healthycorner/site-api/internal/repository"
)

// AdminHandler serves the back-office API.  Every write to content,
// products, services or the schedule purges the public response cache.
type AdminHandler struct {
	Content  *repository.ContentRepo
	Bookings *repository.BookingRepo
	Messages *repository.MessageRepo
	Products *repository.ProductRepo
	Services *repository.ServiceRepo
	Orders   *repository.OrderRepo
	Subs     *repository.SubscriberRepo
	Cache    CachePurger
}

func NewAdminHandler(db repository.Set, cache CachePurger) *AdminHandler {
	return &AdminHandler{
		Content:  db.Content,
		Bookings: db.Bookings,
		Messages: db.Messages,
		Products: db.Products,
		Services: db.Services,
		Orders:   db.Orders,
		Subs:     db.Subscribers,
		Cache:    cache,
	}
}

// listPage answers a paginated, created_at-sorted admin list.
func listPage[T any](c echo.Context,
	count func(context.Context) (int, error),
	page func(context.Context, listing.Params) ([]T, error),
) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	total, err := count(ctx)
	if err != nil {
		return dbError(c, err)
	}
	p, totalPages := listing.Parse(c.QueryParam("page"), c.QueryParam("sort")).Resolve(total)
	items, err := page(ctx, p)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, listing.NewPage(items, p, total, totalPages))
}

// bindFields decodes a JSON object for a partial update.
func bindFields(c echo.Context) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
