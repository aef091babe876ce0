package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
)

// ListContent handles GET /v1/admin/content?section=.
func (h *AdminHandler) ListContent(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Content.List(ctx, c.QueryParam("section"))
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type galleryImage struct {
	ID       uint64 `json:"id"`
	ImageURL string `json:"image_url"`
	Title    string `json:"title,omitempty"`
}

// GalleryImages handles GET /v1/admin/gallery: the gallery items that carry
// an image, for the editor's image picker.
func (h *AdminHandler) GalleryImages(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, err := h.Content.List(ctx, "gallery")
	if err != nil {
		return dbError(c, err)
	}
	out := []galleryImage{}
	for _, it := range items {
		if it.ImageURL == nil || blank(*it.ImageURL) {
			continue
		}
		img := galleryImage{ID: it.ID, ImageURL: *it.ImageURL, Title: it.Key}
		if it.Value != nil && !blank(*it.Value) {
			img.Title = *it.Value
		}
		out = append(out, img)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type contentReq struct {
	Section   string          `json:"section"`
	Key       string          `json:"key"`
	Value     *string         `json:"value"`
	JSON      json.RawMessage `json:"json"`
	ImageURL  *string         `json:"image_url"`
	Published *bool           `json:"published"`
}

// UpsertContent handles POST /v1/admin/content.  An existing (section, key)
// item is overwritten.
func (h *AdminHandler) UpsertContent(c echo.Context) error {
	var req contentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if blank(req.Section) || blank(req.Key) {
		return badRequest(c, "section and key are required")
	}
	if len(req.JSON) > 0 && !json.Valid(req.JSON) {
		return badRequest(c, "json must be valid JSON")
	}
	it := &model.ContentItem{
		Section:   strings.TrimSpace(req.Section),
		Key:       strings.TrimSpace(req.Key),
		Value:     req.Value,
		JSON:      req.JSON,
		ImageURL:  req.ImageURL,
		Published: req.Published == nil || *req.Published,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Content.Upsert(ctx, it); err != nil {
		return dbError(c, err)
	}
	saved, err := h.Content.GetByID(ctx, it.ID)
	if err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return c.JSON(http.StatusCreated, echo.Map{"item": saved})
}

// PatchContent handles PATCH /v1/admin/content; the id travels in the body.
func (h *AdminHandler) PatchContent(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return badRequest(c, "invalid request body")
	}
	id, ok := bodyID(fields["id"])
	if !ok {
		return badRequest(c, "id is required")
	}
	delete(fields, "id")

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Content.Patch(ctx, id, fields); err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return success(c)
}

// DeleteContent handles DELETE /v1/admin/content/:id.
func (h *AdminHandler) DeleteContent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Content.Delete(ctx, id); err != nil {
		return dbError(c, err)
	}
	purge(c, h.Cache)
	return success(c)
}

// bodyID accepts a JSON number or numeric string.
func bodyID(v any) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		if t <= 0 || t != float64(uint64(t)) {
			return 0, false
		}
		return uint64(t), true
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		return n, err == nil && n > 0
	}
	return 0, false
}
