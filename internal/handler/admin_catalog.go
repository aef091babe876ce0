package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
)

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Products.List(ctx)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"products": items})
}

type productReq struct {
	Name                string          `json:"name"`
	Description         *string         `json:"description"`
	LongDescription     *string         `json:"long_description"`
	PriceCents          *int64          `json:"price_cents"`
	CompareAtPriceCents *int64          `json:"compare_at_price_cents"`
	Category            string          `json:"category"`
	Metadata            json.RawMessage `json:"metadata"`
	Published           bool            `json:"published"`
	Featured            bool            `json:"featured"`
}

// CreateProduct handles POST /v1/admin/products.  name and price_cents are
// required; the slug is derived from the name.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Name) || req.PriceCents == nil || *req.PriceCents < 0 {
		return badRequest(c, "name and price_cents are required")
	}
	if len(req.Metadata) > 0 && !json.Valid(req.Metadata) {
		return badRequest(c, "metadata must be valid JSON")
	}
	p := &model.Product{
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		LongDescription:     req.LongDescription,
		PriceCents:          *req.PriceCents,
		CompareAtPriceCents: req.CompareAtPriceCents,
		Category:            strings.TrimSpace(req.Category),
		Metadata:            req.Metadata,
		Published:           req.Published,
		Featured:            req.Featured,
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Products.Create(ctx, p); err != nil {
		return dbError(c, err)
	}
	saved, err := h.Products.GetByID(ctx, p.ID)
	if err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return c.JSON(http.StatusCreated, echo.Map{"product": saved})
}

func (h *AdminHandler) PatchProduct(c echo.Context) error {
	return h.patch(c, h.Products.Patch)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	return h.remove(c, h.Products.Delete)
}

func (h *AdminHandler) ListServices(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Services.List(ctx)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": items})
}

type serviceReq struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
	MaxGuests       int     `json:"max_guests"`
	Active          *bool   `json:"active"`
}

// CreateService handles POST /v1/admin/services.  Services are active
// unless stated otherwise.
func (h *AdminHandler) CreateService(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Name) {
		return badRequest(c, "name is required")
	}
	s := &model.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		MaxGuests:       req.MaxGuests,
		Active:          req.Active == nil || *req.Active,
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Services.Create(ctx, s); err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return c.JSON(http.StatusCreated, echo.Map{"service": s})
}

func (h *AdminHandler) PatchService(c echo.Context) error {
	return h.patch(c, h.Services.Patch)
}

func (h *AdminHandler) DeleteService(c echo.Context) error {
	return h.remove(c, h.Services.Delete)
}

// patch runs an allow-listed partial update on the row named by :id.
func (h *AdminHandler) patch(c echo.Context, apply func(context.Context, uint64, map[string]any) error) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	fields, err := bindFields(c)
	if err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := apply(ctx, id, fields); err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return success(c)
}

func (h *AdminHandler) remove(c echo.Context, del func(context.Context, uint64) error) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := del(ctx, id); err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return success(c)
}
