package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/model"
	"github.com/healthycorner/site-api/internal/schedule"
)

// GetSchedule handles GET /v1/admin/schedule.  Missing schedule items are
// created with their defaults so the editor always has rows to update.
func (h *AdminHandler) GetSchedule(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	defaults := map[string]any{
		schedule.ClassesKey: schedule.Default(),
		schedule.EventsKey:  []schedule.Event{},
	}
	for _, key := range []string{schedule.ClassesKey, schedule.EventsKey} {
		it, err := scheduleItem(ctx, h.Content, key, false)
		if err != nil {
			return dbError(c, err)
		}
		if it.ID != 0 {
			continue
		}
		raw, err := json.Marshal(defaults[key])
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := h.Content.Upsert(ctx, &model.ContentItem{Section: schedule.Section, Key: key, JSON: raw, Published: true}); err != nil {
			return dbError(c, err)
		}
	}

	week, events, err := loadSchedule(ctx, h.Content, false)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": week.Days, "events": events})
}

type scheduleReq struct {
	Days   []schedule.Day   `json:"days"`
	Events []schedule.Event `json:"events"`
}

// PutSchedule handles PUT /v1/admin/schedule.  Both items are written in
// one transaction.
func (h *AdminHandler) PutSchedule(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Events == nil {
		req.Events = []schedule.Event{}
	}
	if err := schedule.Validate(schedule.Weekly{Days: req.Days}, req.Events); err != nil {
		return badRequest(c, err.Error())
	}
	week := schedule.Merge(req.Days)
	schedule.SortEvents(req.Events)

	classesRaw, err := json.Marshal(week)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	eventsRaw, err := json.Marshal(req.Events)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	tx, err := h.Content.BeginTx(ctx)
	if err != nil {
		return dbError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	items := []*model.ContentItem{
		{Section: schedule.Section, Key: schedule.ClassesKey, JSON: classesRaw, Published: true},
		{Section: schedule.Section, Key: schedule.EventsKey, JSON: eventsRaw, Published: true},
	}
	for _, it := range items {
		if err := h.Content.UpsertTx(ctx, tx, it); err != nil {
			return dbError(c, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return dbError(c, err)
	}
	committed = true

	purge(c, h.Cache)
	return c.JSON(http.StatusOK, echo.Map{"days": week.Days, "events": req.Events})
}
