package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/repository"
)

// dbTimeout bounds every repository call made by a handler.
const dbTimeout = 5 * time.Second

// CachePurger drops cached public responses after an admin write.
type CachePurger interface {
	Purge(ctx context.Context) error
}

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// traceID is the request id assigned by the RequestID middleware.
func traceID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// dbError maps repository errors to a status code.  Anything unrecognised
// is a 500 carrying the database message.
func dbError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidStatus),
		errors.Is(err, repository.ErrEmptyPatch),
		errors.Is(err, repository.ErrUnknownProduct):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func success(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// purge clears the public cache, logging rather than failing the request.
func purge(c echo.Context, p CachePurger) {
	if p == nil {
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := p.Purge(ctx); err != nil {
		c.Logger().Warnf("cache purge failed: %v", err)
	}
}
